package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/dig"

	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/observability"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
	StoreMySQL    = "mysql"
)

// Config represents the ledger service configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Pricing   PricingConfig
	Ledger    LedgerConfig
	Store     StoreConfig
	Events    EventsConfig
	Log       observability.LogConfig
	Telemetry observability.TelemetryConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int `env:"SERVER_PORT"             envDefault:"8080"`
	ReadTimeout     int `env:"SERVER_READ_TIMEOUT"     envDefault:"30"`
	WriteTimeout    int `env:"SERVER_WRITE_TIMEOUT"    envDefault:"30"`
	ShutdownTimeout int `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Authorization"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"true"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// PricingConfig controls how the catalog is loaded and rendered.
type PricingConfig struct {
	CatalogFile         string `env:"PRICING_CATALOG_FILE"`
	LegacyPercentFormat bool   `env:"PRICING_LEGACY_PERCENT_FORMAT" envDefault:"false"`
}

// DisplayOptions returns the catalog display options for this config.
func (c PricingConfig) DisplayOptions() []domain.DisplayOption {
	return []domain.DisplayOption{domain.WithLegacyPercentFormat(c.LegacyPercentFormat)}
}

// LedgerConfig contains balance policy settings.
type LedgerConfig struct {
	FreeBalance     map[string]int64 `env:"LEDGER_FREE_BALANCE"      envSeparator:"," envKeyValSeparator:":" envDefault:"guest:50,regular:100,demo:100"`
	DefaultHistory  int              `env:"LEDGER_DEFAULT_HISTORY"                                          envDefault:"20"`
	MaxHistory      int              `env:"LEDGER_MAX_HISTORY"                                              envDefault:"100"`
	BalanceCacheTTL time.Duration    `env:"LEDGER_BALANCE_CACHE_TTL"                                        envDefault:"5s"`
	BalanceCacheMax int              `env:"LEDGER_BALANCE_CACHE_SIZE"                                       envDefault:"10000"`
}

// DomainConfig converts the settings into the ledger service config.
func (c LedgerConfig) DomainConfig() domain.LedgerConfig {
	free := make(map[domain.UserType]decimal.Decimal, len(c.FreeBalance))
	for userType, credits := range c.FreeBalance {
		free[domain.UserType(userType)] = decimal.NewFromInt(credits)
	}

	return domain.LedgerConfig{
		FreeBalance:    free,
		DefaultHistory: c.DefaultHistory,
		MaxHistory:     c.MaxHistory,
		Clock:          time.Now,
	}
}

// StoreConfig selects and configures the balance store.
type StoreConfig struct {
	Driver          string `env:"STORE_DRIVER"            envDefault:"memory"`
	RedisURL        string `env:"STORE_REDIS_URL"         envDefault:"redis://localhost:6379/0"`
	RedisMaxRetries int    `env:"STORE_REDIS_MAX_RETRIES" envDefault:"50"`
	DatabaseDSN     string `env:"STORE_DATABASE_DSN"`
	MaxHistory      int    `env:"STORE_MAX_HISTORY"       envDefault:"1000"`
	AutoMigrate     bool   `env:"STORE_AUTO_MIGRATE"      envDefault:"true"`
}

// EventsConfig configures external event delivery.
type EventsConfig struct {
	SNSTopicARN string `env:"EVENTS_SNS_TOPIC_ARN"`
	AWSRegion   string `env:"EVENTS_AWS_REGION"    envDefault:"us-east-1"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*PricingConfig
	*LedgerConfig
	*StoreConfig
	*EventsConfig
	*observability.LogConfig
	*observability.TelemetryConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Pricing,
		&cfg.Ledger,
		&cfg.Store,
		&cfg.Events,
		&cfg.Log,
		&cfg.Telemetry,
	}
}
