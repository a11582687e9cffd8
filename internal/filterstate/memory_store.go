package filterstate

import (
	"context"
	"sync"

	"github.com/rpattn/clientdesk/internal/domain"
)

// MemoryStore keeps the snapshot in process memory. It stores the encoded
// form so that it behaves like the durable stores.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(_ context.Context) (domain.ClientFilter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return domain.ClientFilter{}, ErrNoSnapshot
	}
	return Decode(s.payload)
}

func (s *MemoryStore) Save(_ context.Context, filter domain.ClientFilter) error {
	payload, err := Encode(filter)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.payload = payload
	s.mu.Unlock()
	return nil
}
