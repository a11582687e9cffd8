// Package filterstate keeps the last client filter a user applied so the next
// session can start from it. Persistence is best-effort: callers use Restore
// and Remember, which never fail.
package filterstate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rpattn/clientdesk/internal/domain"
	"github.com/rpattn/clientdesk/internal/logging"
)

// LastFilterKey is the storage key of the last-used client filter.
const LastFilterKey = "clients.lastFilter"

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no saved filter")

// Store persists a single client filter snapshot.
type Store interface {
	Load(ctx context.Context) (domain.ClientFilter, error)
	Save(ctx context.Context, filter domain.ClientFilter) error
}

// Encode serialises a filter as a flat JSON object.
func Encode(filter domain.ClientFilter) ([]byte, error) {
	return json.Marshal(filter)
}

// Decode parses a snapshot written by Encode. Snapshots with an unknown
// status are treated as corrupt.
func Decode(payload []byte) (domain.ClientFilter, error) {
	var filter domain.ClientFilter
	if err := json.Unmarshal(payload, &filter); err != nil {
		return domain.ClientFilter{}, fmt.Errorf("failed to decode filter snapshot: %w", err)
	}
	if filter.Status == "" {
		filter.Status = domain.FilterStatusAll
	}
	if !domain.IsValidFilterStatus(filter.Status) {
		return domain.ClientFilter{}, fmt.Errorf("failed to decode filter snapshot: unknown status %q", filter.Status)
	}
	return filter, nil
}

// Restore loads the last filter, falling back to defaults when the snapshot is
// missing, corrupt or unreadable.
func Restore(ctx context.Context, store Store) domain.ClientFilter {
	if store == nil {
		return domain.DefaultClientFilter()
	}
	filter, err := store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoSnapshot) {
			logging.Debugf("[STATE] ignoring unreadable filter snapshot: %v", err)
		}
		return domain.DefaultClientFilter()
	}
	return filter
}

// Remember saves the filter and swallows any storage error.
func Remember(ctx context.Context, store Store, filter domain.ClientFilter) {
	if store == nil {
		return
	}
	if err := store.Save(ctx, filter); err != nil {
		logging.Debugf("[STATE] failed to save filter snapshot: %v", err)
	}
}
