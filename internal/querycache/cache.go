// Package querycache memoises client filter results. Identical filters share
// one cached result and concurrent identical requests share one in-flight
// fetch.
package querycache

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/graph-gophers/dataloader"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/filterstate"
	"github.com/rpattn/clientdesk/internal/metrics"
)

// filterKey identifies a cache entry by exact field equality.
type filterKey domain.ClientFilter

func (k filterKey) String() string {
	return k.Status + "\x1f" + k.SearchTerm + "\x1f" + k.MinTotalValue
}

func (k filterKey) Raw() interface{} { return domain.ClientFilter(k) }

// Cache is the query cache adapter in front of a Source.
type Cache struct {
	source  Source
	loader  *dataloader.Loader
	state   filterstate.Store
	metrics *metrics.Recorder
}

// Option configures a Cache.
type Option func(*Cache)

// WithStateStore persists each requested filter to store.
func WithStateStore(store filterstate.Store) Option {
	return func(c *Cache) { c.state = store }
}

// WithMetrics records lookups and fetches on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Cache) { c.metrics = r }
}

// New creates a cache over source. Results are kept until Retry or Reset.
func New(source Source, opts ...Option) *Cache {
	c := &Cache{source: source}
	for _, opt := range opts {
		opt(c)
	}
	// A batch capacity of one dispatches every filter on its own, so a slow
	// filter never delays a different one.
	c.loader = dataloader.NewBatchedLoader(c.batch, dataloader.WithBatchCapacity(1))
	return c
}

// batch fetches each distinct filter once. The shared fetch is detached from
// the first caller's cancellation; every caller still stops waiting on its own
// context. A failed key is evicted here, while the cache still holds this
// attempt's thunk, so the next lookup starts a fresh fetch.
func (c *Cache) batch(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
	ctx = context.WithoutCancel(ctx)
	results := make([]*dataloader.Result, len(keys))
	for i, key := range keys {
		filter, ok := key.Raw().(domain.ClientFilter)
		if !ok {
			c.loader.Clear(ctx, key)
			results[i] = &dataloader.Result{Error: fmt.Errorf("unexpected cache key %T", key.Raw())}
			continue
		}
		clients, err := c.fetch(ctx, filter)
		c.metrics.CacheFetch(err)
		if err != nil {
			log.Printf("[CACHE] fetch for %+v failed: %v", filter, err)
			c.loader.Clear(ctx, key)
			results[i] = &dataloader.Result{Error: &FetchError{Filter: filter, Err: err}}
			continue
		}
		results[i] = &dataloader.Result{Data: clients}
	}
	return results
}

func (c *Cache) fetch(ctx context.Context, filter domain.ClientFilter) (clients []domain.Client, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("source panicked: %v", r)
		}
	}()
	return c.source.FetchClients(ctx, filter)
}

// Fetch returns the clients matching filter, fetching only when no result or
// in-flight request exists for an equal filter. The filter is remembered as
// the last one used.
func (c *Cache) Fetch(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	filter = filter.Normalize()
	c.metrics.CacheRequest()
	filterstate.Remember(ctx, c.state, filter)

	key := filterKey(filter)
	thunk := c.loader.Load(ctx, key)

	type outcome struct {
		data interface{}
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		data, err := thunk()
		done <- outcome{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case o := <-done:
		if o.err != nil {
			var fetchErr *FetchError
			if errors.As(o.err, &fetchErr) {
				return nil, o.err
			}
			return nil, &FetchError{Filter: filter, Err: o.err}
		}
		clients, _ := o.data.([]domain.Client)
		out := make([]domain.Client, len(clients))
		copy(out, clients)
		return out, nil
	}
}

// Retry drops any cached result for filter and fetches it again.
func (c *Cache) Retry(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, error) {
	c.loader.Clear(ctx, filterKey(filter.Normalize()))
	return c.Fetch(ctx, filter)
}

// Reset drops every cached result.
func (c *Cache) Reset() {
	c.loader.ClearAll()
}
