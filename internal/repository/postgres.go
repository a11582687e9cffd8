package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// querier is the subset of pgxpool.Pool used by the Postgres repositories.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// NewPostgresRepositories builds all repositories over one pool.
func NewPostgresRepositories(pool querier) Repositories {
	return Repositories{
		Clients:   NewClientRepository(pool),
		Proposals: NewProposalRepository(pool),
		Services:  NewServiceRepository(pool),
	}
}
