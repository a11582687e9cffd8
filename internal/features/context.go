// Package features carries per-request feature switches through the context.
package features

import (
	"context"
	"strconv"
)

type contextKey string

const betaFiltersKey contextKey = "betaFilters"

// BetaFiltersParam is the query parameter that switches the beta filter panel on for one request.
const BetaFiltersParam = "beta_filters"

// ContextWithBetaFilters returns a new context that records whether the beta filter panel is enabled.
func ContextWithBetaFilters(ctx context.Context, enabled bool) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, betaFiltersKey, enabled)
}

// BetaFiltersFromContext reports whether beta filters are enabled for the request.
// A context without the flag is treated as disabled.
func BetaFiltersFromContext(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	enabled, ok := ctx.Value(betaFiltersKey).(bool)
	return ok && enabled
}

// ParseBetaFilters interprets the beta_filters query value. Anything that is
// not a recognised boolean falls back to def.
func ParseBetaFilters(raw string, def bool) bool {
	if raw == "" {
		return def
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return enabled
}

// ClientsTitle is the heading of the client list for the given mode.
func ClientsTitle(beta bool) string {
	if beta {
		return "Clients - New Beta"
	}
	return "Clients"
}
