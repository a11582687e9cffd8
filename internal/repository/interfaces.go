package repository

import (
	"context"
	"errors"

	"github.com/rpattn/clientdesk/internal/domain"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("record not found")

// ClientRepository defines the interface for client operations
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	GetByID(ctx context.Context, id string) (domain.Client, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Client, error)
	// Filter returns the clients matching filter, in List order.
	Filter(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error)
}

// ProposalRepository defines the interface for proposal operations
type ProposalRepository interface {
	List(ctx context.Context) ([]domain.Proposal, error)
	GetByID(ctx context.Context, id string) (domain.Proposal, error)
	ListByClient(ctx context.Context, clientID string) ([]domain.Proposal, error)
}

// ServiceRepository defines the interface for service catalogue operations
type ServiceRepository interface {
	List(ctx context.Context) ([]domain.Service, error)
	GetByID(ctx context.Context, id string) (domain.Service, error)
}

// Repositories bundles the stores the API needs.
type Repositories struct {
	Clients   ClientRepository
	Proposals ProposalRepository
	Services  ServiceRepository
}
