package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rpattn/clientdesk/internal/domain"
)

const serviceColumns = `id, name, description, category, base_price, currency, duration, is_active`

// serviceRepository implements ServiceRepository interface
type serviceRepository struct {
	db querier
}

// NewServiceRepository creates a new Postgres service repository
func NewServiceRepository(db querier) ServiceRepository {
	return &serviceRepository{db: db}
}

// List retrieves the service catalogue
func (r *serviceRepository) List(ctx context.Context) ([]domain.Service, error) {
	rows, err := r.db.Query(ctx, `SELECT `+serviceColumns+` FROM services ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan service: %w", err)
		}
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate services: %w", err)
	}
	return services, nil
}

// GetByID retrieves a service by ID
func (r *serviceRepository) GetByID(ctx context.Context, id string) (domain.Service, error) {
	svc, err := scanService(r.db.QueryRow(ctx, `SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Service{}, fmt.Errorf("failed to get service %s: %w", id, ErrNotFound)
		}
		return domain.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func scanService(row pgx.Row) (domain.Service, error) {
	var s domain.Service
	var category string
	if err := row.Scan(&s.ID, &s.Name, &s.Description, &category, &s.BasePrice, &s.Currency, &s.Duration, &s.IsActive); err != nil {
		return domain.Service{}, err
	}
	s.Category = domain.ServiceCategory(category)
	return s, nil
}
