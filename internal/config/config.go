package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rpattn/clientdesk/internal/db"
	"github.com/rpattn/clientdesk/internal/filterstate"
)

// Store drivers for business records.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database db.Config      `mapstructure:"database"`
	State    StateConfig    `mapstructure:"state"`
	Features FeaturesConfig `mapstructure:"features"`
	Client   ClientConfig   `mapstructure:"client"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	// QueryCacheTTL is how long filtered client lists are reused; zero disables the cache.
	QueryCacheTTL   time.Duration `mapstructure:"query_cache_ttl"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

// StateConfig selects where the last-used client filter is kept.
type StateConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

type FeaturesConfig struct {
	BetaFilters bool `mapstructure:"beta_filters"`
}

// ClientConfig is used by the clientq CLI.
type ClientConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3001",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			AllowedOrigins:  []string{"http://localhost:3000"},
			QueryCacheTTL:   30 * time.Second,
		},
		Store:    StoreConfig{Driver: StoreMemory},
		Database: db.DefaultConfig(),
		State:    StateConfig{Driver: filterstate.DriverFile, Path: "clientdesk-state.json"},
		Client: ClientConfig{
			BaseURL: "http://localhost:3001/api",
			Timeout: 10 * time.Second,
		},
	}
}

// Validate checks the values that would otherwise fail late.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store.Driver) {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	switch strings.ToLower(c.State.Driver) {
	case filterstate.DriverMemory:
	case filterstate.DriverFile, filterstate.DriverSQLite:
		if strings.TrimSpace(c.State.Path) == "" {
			return fmt.Errorf("state.path is required for the %s state driver", c.State.Driver)
		}
	default:
		return fmt.Errorf("unknown state driver %q", c.State.Driver)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	return nil
}
