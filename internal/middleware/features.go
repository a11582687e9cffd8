package middleware

import (
	"net/http"

	"github.com/rpattn/clientdesk/internal/features"
)

// FeaturesMiddleware records the beta filter switch for the request. The
// beta_filters query parameter overrides the configured default.
func FeaturesMiddleware(betaDefault bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			beta := features.ParseBetaFilters(r.URL.Query().Get(features.BetaFiltersParam), betaDefault)
			ctx := features.ContextWithBetaFilters(r.Context(), beta)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
