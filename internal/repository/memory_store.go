package repository

import (
	"context"
	"fmt"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/fixtures"
)

// MemoryStore serves a fixed dataset from memory. Records are never mutated,
// so no locking is needed.
type MemoryStore struct {
	data fixtures.Dataset
}

// NewMemoryStore creates an in-memory store over the given dataset
func NewMemoryStore(data fixtures.Dataset) *MemoryStore {
	return &MemoryStore{data: data}
}

// Repositories exposes the store through the repository interfaces.
func (s *MemoryStore) Repositories() Repositories {
	return Repositories{
		Clients:   memoryClients{s},
		Proposals: memoryProposals{s},
		Services:  memoryServices{s},
	}
}

type memoryClients struct{ s *MemoryStore }

func (m memoryClients) List(_ context.Context) ([]domain.Client, error) {
	return append([]domain.Client(nil), m.s.data.Clients...), nil
}

func (m memoryClients) GetByID(_ context.Context, id string) (domain.Client, error) {
	for _, c := range m.s.data.Clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Client{}, fmt.Errorf("failed to get client %s: %w", id, ErrNotFound)
}

func (m memoryClients) GetByIDs(_ context.Context, ids []string) ([]domain.Client, error) {
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	result := make([]domain.Client, 0, len(ids))
	for _, c := range m.s.data.Clients {
		if _, ok := wanted[c.ID]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m memoryClients) Filter(_ context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	return domain.FilterClients(m.s.data.Clients, filter), nil
}

type memoryProposals struct{ s *MemoryStore }

func (m memoryProposals) List(_ context.Context) ([]domain.Proposal, error) {
	return append([]domain.Proposal(nil), m.s.data.Proposals...), nil
}

func (m memoryProposals) GetByID(_ context.Context, id string) (domain.Proposal, error) {
	for _, p := range m.s.data.Proposals {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Proposal{}, fmt.Errorf("failed to get proposal %s: %w", id, ErrNotFound)
}

func (m memoryProposals) ListByClient(_ context.Context, clientID string) ([]domain.Proposal, error) {
	return domain.ProposalsForClient(m.s.data.Proposals, clientID), nil
}

type memoryServices struct{ s *MemoryStore }

func (m memoryServices) List(_ context.Context) ([]domain.Service, error) {
	return append([]domain.Service(nil), m.s.data.Services...), nil
}

func (m memoryServices) GetByID(_ context.Context, id string) (domain.Service, error) {
	for _, svc := range m.s.data.Services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return domain.Service{}, fmt.Errorf("failed to get service %s: %w", id, ErrNotFound)
}
