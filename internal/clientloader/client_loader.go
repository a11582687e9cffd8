// Package clientloader batches client lookups by ID within one request.
package clientloader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/repository"

	"github.com/graph-gophers/dataloader"
)

type ClientLoader struct {
	Loader *dataloader.Loader
}

// NewClientLoader builds a loader over repo. opts are applied after the defaults.
func NewClientLoader(repo repository.ClientRepository, opts ...dataloader.Option) *ClientLoader {
	batchFn := func(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
		ids := keys.Keys()

		// Fetch clients in batch
		clients, err := repo.GetByIDs(ctx, ids)
		if err != nil {
			results := make([]*dataloader.Result, len(keys))
			for i := range results {
				results[i] = &dataloader.Result{Error: fmt.Errorf("failed to load clients: %w", err)}
			}
			return results
		}

		clientMap := make(map[string]domain.Client, len(clients))
		for _, c := range clients {
			clientMap[c.ID] = c
		}

		// Build results in the same order as keys
		results := make([]*dataloader.Result, len(keys))
		for i, id := range ids {
			if c, ok := clientMap[id]; ok {
				results[i] = &dataloader.Result{Data: c}
			} else {
				results[i] = &dataloader.Result{Error: repository.ErrNotFound}
			}
		}
		return results
	}

	opts = append([]dataloader.Option{dataloader.WithWait(2 * time.Millisecond)}, opts...)
	loader := dataloader.NewBatchedLoader(batchFn, opts...)
	return &ClientLoader{Loader: loader}
}

// Load returns the client with the given ID, batching with concurrent loads.
func (l *ClientLoader) Load(ctx context.Context, id string) (domain.Client, error) {
	value, err := l.Loader.Load(ctx, dataloader.StringKey(id))()
	if err != nil {
		return domain.Client{}, err
	}
	client, ok := value.(domain.Client)
	if !ok {
		return domain.Client{}, fmt.Errorf("unexpected loader value %T", value)
	}
	return client, nil
}

// Names resolves display names for ids in one batch. Missing clients map to
// fallback; any other failure is returned.
func (l *ClientLoader) Names(ctx context.Context, ids []string, fallback string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	thunk := l.Loader.LoadMany(ctx, dataloader.NewKeysFromStrings(ids))
	values, errs := thunk()
	for i, id := range ids {
		var err error
		if errs != nil {
			err = errs[i]
		}
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				names[id] = fallback
				continue
			}
			return nil, err
		}
		if c, ok := values[i].(domain.Client); ok {
			names[id] = c.Name
		} else {
			names[id] = fallback
		}
	}
	return names, nil
}
