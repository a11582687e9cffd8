package middleware

import (
	"context"
	"net/http"

	"github.com/rpattn/clientdesk/internal/clientloader"
	"github.com/rpattn/clientdesk/internal/repository"
)

type ctxKey string

const clientLoaderKey ctxKey = "clientLoader"

// DataLoaderMiddleware attaches a fresh client loader to every request context
func DataLoaderMiddleware(repo repository.ClientRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loader := clientloader.NewClientLoader(repo)
			ctx := context.WithValue(r.Context(), clientLoaderKey, loader)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClientLoaderFromContext retrieves the client loader from context
func ClientLoaderFromContext(ctx context.Context) *clientloader.ClientLoader {
	if l, ok := ctx.Value(clientLoaderKey).(*clientloader.ClientLoader); ok {
		return l
	}
	return nil
}
