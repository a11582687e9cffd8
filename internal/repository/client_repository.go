package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/clientdesk/internal/domain"
)

const clientColumns = `id, name, email, phone, company, status, total_value, created_at, updated_at,
	street, city, state, zip_code, country`

// filterClientsSQL mirrors domain.ClientFilter.Matches so server-side filtering
// returns exactly what the in-process predicate would.
const filterClientsSQL = `SELECT ` + clientColumns + ` FROM clients
	WHERE ($1 = 'all' OR status = $1)
	  AND ($2 = '' OR strpos(lower(name), lower($2)) > 0)
	  AND ($3::double precision IS NULL OR total_value >= $3)
	ORDER BY position, id`

// clientRepository implements ClientRepository interface
type clientRepository struct {
	db querier
}

// NewClientRepository creates a new Postgres client repository
func NewClientRepository(db querier) ClientRepository {
	return &clientRepository{db: db}
}

// List retrieves all clients in display order
func (r *clientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return collectClients(rows)
}

// GetByID retrieves a client by ID
func (r *clientRepository) GetByID(ctx context.Context, id string) (domain.Client, error) {
	row := r.db.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, fmt.Errorf("failed to get client %s: %w", id, ErrNotFound)
		}
		return domain.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

// GetByIDs retrieves multiple clients by their IDs.
func (r *clientRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Client, error) {
	if len(ids) == 0 {
		return []domain.Client{}, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ANY($1) ORDER BY position, id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get clients by IDs: %w", err)
	}
	return collectClients(rows)
}

// Filter retrieves the clients matching the filter
func (r *clientRepository) Filter(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	rows, err := r.db.Query(ctx, filterClientsSQL, filterArgs(filter)...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter clients: %w", err)
	}
	return collectClients(rows)
}

// filterArgs resolves the minimum value in Go so that unparseable input is
// dropped exactly as the predicate drops it.
func filterArgs(filter domain.ClientFilter) []any {
	filter = filter.Normalize()
	var min *float64
	if v, ok := filter.MinValue(); ok {
		min = &v
	}
	return []any{filter.Status, filter.SearchTerm, min}
}

func scanClient(row pgx.Row) (domain.Client, error) {
	var c domain.Client
	var status string
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &status, &c.TotalValue, &c.CreatedAt, &c.UpdatedAt,
		&c.Address.Street, &c.Address.City, &c.Address.State, &c.Address.ZipCode, &c.Address.Country,
	)
	if err != nil {
		return domain.Client{}, err
	}
	c.Status = domain.ClientStatus(status)
	return c, nil
}

func collectClients(rows pgx.Rows) ([]domain.Client, error) {
	defer rows.Close()
	clients := make([]domain.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}
