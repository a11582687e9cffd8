package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/clientdesk/internal/domain"
)

const proposalColumns = `id, client_id, title, description, status, total_amount, currency,
	created_at, updated_at, valid_until, services`

// proposalRepository implements ProposalRepository interface
type proposalRepository struct {
	db querier
}

// NewProposalRepository creates a new Postgres proposal repository
func NewProposalRepository(db querier) ProposalRepository {
	return &proposalRepository{db: db}
}

// List retrieves all proposals
func (r *proposalRepository) List(ctx context.Context) ([]domain.Proposal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+proposalColumns+` FROM proposals ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals: %w", err)
	}
	return collectProposals(rows)
}

// GetByID retrieves a proposal by ID
func (r *proposalRepository) GetByID(ctx context.Context, id string) (domain.Proposal, error) {
	row := r.db.QueryRow(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE id = $1`, id)
	p, err := scanProposal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Proposal{}, fmt.Errorf("failed to get proposal %s: %w", id, ErrNotFound)
		}
		return domain.Proposal{}, fmt.Errorf("failed to get proposal: %w", err)
	}
	return p, nil
}

// ListByClient retrieves the proposals addressed to one client
func (r *proposalRepository) ListByClient(ctx context.Context, clientID string) ([]domain.Proposal, error) {
	rows, err := r.db.Query(ctx, `SELECT `+proposalColumns+` FROM proposals WHERE client_id = $1 ORDER BY position, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposals for client: %w", err)
	}
	return collectProposals(rows)
}

func scanProposal(row pgx.Row) (domain.Proposal, error) {
	var p domain.Proposal
	var status string
	err := row.Scan(
		&p.ID, &p.ClientID, &p.Title, &p.Description, &status, &p.TotalAmount, &p.Currency,
		&p.CreatedAt, &p.UpdatedAt, &p.ValidUntil, &p.Services,
	)
	if err != nil {
		return domain.Proposal{}, err
	}
	p.Status = domain.ProposalStatus(status)
	if p.Services == nil {
		p.Services = []string{}
	}
	return p, nil
}

func collectProposals(rows pgx.Rows) ([]domain.Proposal, error) {
	defer rows.Close()
	proposals := make([]domain.Proposal, 0)
	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan proposal: %w", err)
		}
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate proposals: %w", err)
	}
	return proposals, nil
}
