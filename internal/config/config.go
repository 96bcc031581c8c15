package config

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// BackendRequestTimeout is the per-attempt timeout for dashboard/CLI calls to
// the advance API.
const BackendRequestTimeout = 5 * time.Second

// ServerEnvironment holds the advance-server configuration.
// All values come from environment variables, with defaults suitable for
// local development.
type ServerEnvironment struct {

	// http server settings
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8000"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`
	RateLimitRPS          int32         `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst        int32         `env:"RATE_LIMIT_BURST,default=200"`
	MaxRequestBodyBytes   int64         `env:"MAX_REQUEST_BODY_BYTES,default=1048576"`

	// loan store settings. STORE=memory keeps loans in process memory;
	// STORE=postgres persists them and requires DATABASE_URL.
	Store               string        `env:"STORE,default=memory"`
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConnections    int32         `env:"DB_MAX_CONNECTIONS,default=4"`
	DBMinConnections    int32         `env:"DB_MIN_CONNECTIONS,default=0"`
	DBMaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME,default=60m"`
	DBMaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME,default=30m"`
	DBConnectTimeout    time.Duration `env:"DB_CONNECT_TIMEOUT,default=5s"`
	DatabasePingTimeout time.Duration `env:"DATABASE_PING_TIMEOUT,default=10s"`
}

// DashboardEnvironment holds the advance-dashboard configuration.
type DashboardEnvironment struct {
	Environment           string        `env:"ENVIRONMENT,default=dev"`
	Host                  string        `env:"HOST,default=0.0.0.0"`
	Port                  int           `env:"PORT,default=8501"`
	LogLevel              string        `env:"LOG_LEVEL,default=debug"`
	ReadTimeout           time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout          time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout           time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT,default=10s"`

	// backend connection settings
	BackendURL           string        `env:"BACKEND_URL,default=http://localhost:8000"`
	BackendRetryAttempts uint          `env:"BACKEND_RETRY_ATTEMPTS,default=10"`
	BackendRetryDelay    time.Duration `env:"BACKEND_RETRY_DELAY,default=5s"`
}

// ClientEnvironment holds the advancectl CLI configuration.
type ClientEnvironment struct {
	Environment          string        `env:"ENVIRONMENT,default=dev"`
	LogLevel             string        `env:"LOG_LEVEL,default=info"`
	ServerURL            string        `env:"ADVANCE_SERVER_URL,default=http://localhost:8000"`
	BackendRetryAttempts uint          `env:"BACKEND_RETRY_ATTEMPTS,default=3"`
	BackendRetryDelay    time.Duration `env:"BACKEND_RETRY_DELAY,default=2s"`
}

var validEnvs = map[string]bool{
	"dev":     true,
	"test":    true,
	"prod":    true,
	"staging": true,
}

var validStores = map[string]bool{
	"memory":   true,
	"postgres": true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment
// struct that contains the values
func NewServerConfig() (*ServerEnvironment, error) {
	// load a local .env if present (developer convenience, no-op in containers)
	_ = godotenv.Load()

	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateServerConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDashboardConfig loads environment variables and returns a
// DashboardEnvironment struct that contains the values
func NewDashboardConfig() (*DashboardEnvironment, error) {
	_ = godotenv.Load()

	var cfg DashboardEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateDashboardConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewClientConfig loads environment variables and returns a ClientEnvironment
// struct that contains the values
func NewClientConfig() (*ClientEnvironment, error) {
	_ = godotenv.Load()

	var cfg ClientEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if !validEnvs[cfg.Environment] {
		return nil, fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("ADVANCE_SERVER_URL must not be empty")
	}
	return &cfg, nil
}

// validateServerConfig checks the loaded server env variables
func validateServerConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if !validStores[cfg.Store] {
		return fmt.Errorf("invalid STORE: %s (must be memory or postgres)", cfg.Store)
	}
	if cfg.Store == "postgres" && cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required when STORE=postgres")
	}
	if cfg.MaxRequestBodyBytes < 1 {
		return fmt.Errorf("MAX_REQUEST_BODY_BYTES must be at least 1")
	}

	// Validate database pool configuration
	if cfg.DBMaxConnections < 1 {
		return fmt.Errorf("DB_MAX_CONNECTIONS must be at least 1")
	}
	if cfg.DBMinConnections < 0 {
		return fmt.Errorf("DB_MIN_CONNECTIONS must be 0 or greater")
	}
	if cfg.DBMinConnections > cfg.DBMaxConnections {
		return fmt.Errorf("DB_MIN_CONNECTIONS (%d) cannot be greater than DB_MAX_CONNECTIONS (%d)",
			cfg.DBMinConnections, cfg.DBMaxConnections)
	}

	return nil
}

// validateDashboardConfig checks the loaded dashboard env variables
func validateDashboardConfig(cfg *DashboardEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}
	if cfg.BackendURL == "" {
		return fmt.Errorf("BACKEND_URL must not be empty")
	}
	if cfg.BackendRetryAttempts < 1 {
		return fmt.Errorf("BACKEND_RETRY_ATTEMPTS must be at least 1")
	}
	return nil
}
