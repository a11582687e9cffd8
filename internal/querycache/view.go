package querycache

import (
	"context"
	"sync"

	"github.com/rpattn/clientdesk/internal/domain"
)

// State is what a client list should currently display.
type State struct {
	Filter  domain.ClientFilter
	Clients []domain.Client
	Loading bool
	// Err is set when the latest fetch failed; Clients is then empty.
	Err error
}

// View applies filters through a Cache so that only the newest filter's
// result is ever installed, whatever order responses arrive in.
type View struct {
	cache *Cache

	mu         sync.Mutex
	generation uint64
	state      State
}

// NewView starts with the default filter and nothing loaded.
func NewView(cache *Cache) *View {
	return &View{cache: cache, state: State{Filter: domain.DefaultClientFilter()}}
}

// Apply fetches filter and installs the result if no newer Apply or Retry
// started meanwhile. A stale result is discarded and ErrSuperseded returned.
func (v *View) Apply(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	return v.run(ctx, filter.Normalize(), v.cache.Fetch)
}

// Retry refetches the current filter, bypassing the cached result.
func (v *View) Retry(ctx context.Context) ([]domain.Client, error) {
	v.mu.Lock()
	filter := v.state.Filter
	v.mu.Unlock()
	return v.run(ctx, filter, v.cache.Retry)
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := v.state
	s.Clients = append([]domain.Client(nil), v.state.Clients...)
	return s
}

type fetchFunc func(context.Context, domain.ClientFilter) ([]domain.Client, error)

func (v *View) run(ctx context.Context, filter domain.ClientFilter, fetch fetchFunc) ([]domain.Client, error) {
	v.mu.Lock()
	v.generation++
	mine := v.generation
	v.state = State{Filter: filter, Loading: true}
	v.mu.Unlock()

	clients, err := fetch(ctx, filter)

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.generation != mine {
		return nil, ErrSuperseded
	}
	if err != nil {
		v.state = State{Filter: filter, Err: err}
		return nil, err
	}
	v.state = State{Filter: filter, Clients: clients}
	return clients, nil
}
