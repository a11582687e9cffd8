package filterstate

import (
	"fmt"
	"strings"
)

// Driver identifiers accepted by Open.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// Open returns the store for driver along with a function releasing its resources.
func Open(driver, path string) (Store, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverMemory:
		return NewMemoryStore(), noop, nil
	case DriverFile:
		if path == "" {
			return nil, nil, fmt.Errorf("state path is required for the %s driver", DriverFile)
		}
		return NewFileStore(path), noop, nil
	case DriverSQLite:
		if path == "" {
			return nil, nil, fmt.Errorf("state path is required for the %s driver", DriverSQLite)
		}
		store, err := NewSQLiteStore(path)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown state driver %q", driver)
	}
}
