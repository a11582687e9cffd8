package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rpattn/clientdesk/internal/api"
	"github.com/rpattn/clientdesk/internal/config"
	"github.com/rpattn/clientdesk/internal/db"
	"github.com/rpattn/clientdesk/internal/fixtures"
	"github.com/rpattn/clientdesk/internal/metrics"
	"github.com/rpattn/clientdesk/internal/middleware"
	"github.com/rpattn/clientdesk/internal/querycache"
	"github.com/rpattn/clientdesk/internal/repository"

	"github.com/rs/cors"
)

func main() {
	// Create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configPath := os.Getenv("CLIENTDESK_CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Create repositories
	var repos repository.Repositories
	switch strings.ToLower(cfg.Store.Driver) {
	case config.StorePostgres:
		if err := db.RunMigrations(cfg.Database); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		conn, err := db.NewConnection(ctx, cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer conn.Close()
		repos = repository.NewPostgresRepositories(conn.Pool)
		log.Printf("Using postgres store at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	default:
		repos = repository.NewMemoryStore(fixtures.Default()).Repositories()
		log.Println("Using in-memory fixture store")
	}

	recorder := metrics.NewRecorder()
	handlerOpts := []api.Option{api.WithBetaFilters(cfg.Features.BetaFilters)}
	if cfg.Server.QueryCacheTTL > 0 {
		cache := querycache.New(querycache.ServerSideSource(repos.Clients), querycache.WithMetrics(recorder))
		go expireQueryCache(ctx, cache, cfg.Server.QueryCacheTTL)
		handlerOpts = append(handlerOpts, api.WithQueryCache(cache))
	}
	handler := api.NewHandler(repos, handlerOpts...)

	// Setup CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader, "Content-Disposition"},
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", recorder.Handler())
	mux.Handle("/", handler.Router())

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      corsHandler.Handler(middleware.LoggingMiddleware(recorder)(mux)),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting clientdesk server on %s", cfg.Server.Addr)
		log.Printf("API available at http://localhost%s/api", cfg.Server.Addr)
		log.Printf("Health check at http://localhost%s/health", cfg.Server.Addr)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// expireQueryCache drops every cached client list once per ttl until ctx ends.
func expireQueryCache(ctx context.Context, cache *querycache.Cache, ttl time.Duration) {
	ticker := time.NewTicker(ttl)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cache.Reset()
		}
	}
}
