package querycache

import (
	"context"

	"github.com/rpattn/clientdesk/internal/domain"
)

// Source produces the clients matching a filter.
type Source interface {
	FetchClients(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error)

func (f SourceFunc) FetchClients(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	return f(ctx, filter)
}

// ClientLister returns the full client collection.
type ClientLister interface {
	List(ctx context.Context) ([]domain.Client, error)
}

// ClientFilterer filters clients on the data source's side.
type ClientFilterer interface {
	Filter(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error)
}

// ClientSideSource loads every client and applies domain.ClientFilter.Matches
// locally. This is the canonical mode.
func ClientSideSource(lister ClientLister) Source {
	return SourceFunc(func(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
		clients, err := lister.List(ctx)
		if err != nil {
			return nil, err
		}
		return domain.FilterClients(clients, filter), nil
	})
}

// ServerSideSource hands the filter to the data source, which mirrors the
// same predicate.
func ServerSideSource(filterer ClientFilterer) Source {
	return SourceFunc(func(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
		return filterer.Filter(ctx, filter)
	})
}
