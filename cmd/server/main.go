package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/davidbz/creditledger/internal/cache"
	"github.com/davidbz/creditledger/internal/catalog"
	"github.com/davidbz/creditledger/internal/config"
	"github.com/davidbz/creditledger/internal/domain"
	"github.com/davidbz/creditledger/internal/events"
	"github.com/davidbz/creditledger/internal/http"
	"github.com/davidbz/creditledger/internal/http/middleware"
	"github.com/davidbz/creditledger/internal/observability"
	"github.com/davidbz/creditledger/internal/store/memory"
	redisstore "github.com/davidbz/creditledger/internal/store/redis"
	"github.com/davidbz/creditledger/internal/store/sqlstore"
)

// ErrUnknownStoreDriver indicates a STORE_DRIVER value with no store behind it.
var ErrUnknownStoreDriver = errors.New("unknown store driver")

// closers collects resources released on shutdown, in reverse order.
type closers struct {
	fns []func(context.Context) error
}

func (c *closers) add(fn func(context.Context) error) {
	c.fns = append(c.fns, fn)
}

func (c *closers) closeAll(ctx context.Context) {
	for i := len(c.fns) - 1; i >= 0; i-- {
		if err := c.fns[i](ctx); err != nil {
			observability.FromContext(ctx).Warn("failed to release resource", observability.Error(err))
		}
	}
}

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server, cfg *config.ServerConfig, resources *closers) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		select {
		case err := <-errCh:
			if err != nil {
				log.Fatalf("Server failed to start: %v", err)
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			observability.FromContext(shutdownCtx).Error("graceful shutdown failed", observability.Error(err))
		}
		resources.closeAll(shutdownCtx)
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}
	if err := container.Provide(func() *closers { return &closers{} }); err != nil {
		log.Fatalf("Failed to provide closers: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}
	if err := container.Invoke(func(_ *zap.Logger, cfg *observability.TelemetryConfig, resources *closers) error {
		shutdown, err := observability.InitTracing(context.Background(), cfg)
		if err != nil {
			return err
		}
		resources.add(shutdown)
		return nil
	}); err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	// Pricing catalog
	if err := container.Provide(func(cfg *config.PricingConfig) (*domain.PricingCatalog, error) {
		return catalog.LoadFile(cfg.CatalogFile, nil, cfg.DisplayOptions()...)
	}); err != nil {
		log.Fatalf("Failed to provide pricing catalog: %v", err)
	}
	if err := container.Provide(func(c *domain.PricingCatalog) domain.CostCalculator {
		return c
	}); err != nil {
		log.Fatalf("Failed to provide cost calculator: %v", err)
	}

	// Balance store
	if err := container.Provide(provideStore); err != nil {
		log.Fatalf("Failed to provide balance store: %v", err)
	}
	if err := container.Provide(func(cfg *config.LedgerConfig) domain.BalanceCache {
		if cfg.BalanceCacheTTL <= 0 {
			return domain.NoopBalanceCache{}
		}
		return cache.New[string, domain.Account](cfg.BalanceCacheMax, cfg.BalanceCacheTTL, time.Now)
	}); err != nil {
		log.Fatalf("Failed to provide balance cache: %v", err)
	}

	// Events
	if err := container.Provide(observability.NewEventBus); err != nil {
		log.Fatalf("Failed to provide event bus: %v", err)
	}
	if err := container.Provide(provideEventPublisher); err != nil {
		log.Fatalf("Failed to provide event publisher: %v", err)
	}

	// Domain Services
	if err := container.Provide(func(cfg *config.LedgerConfig) domain.LedgerConfig {
		return cfg.DomainConfig()
	}); err != nil {
		log.Fatalf("Failed to provide ledger config: %v", err)
	}
	if err := container.Provide(domain.NewLedgerService); err != nil {
		log.Fatalf("Failed to provide ledger service: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewHandler); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

func provideStore(cfg *config.StoreConfig, resources *closers) (domain.BalanceStore, error) {
	ctx := context.Background()
	logger := observability.FromContext(ctx)

	switch cfg.Driver {
	case config.StoreMemory, "":
		logger.Info("using in-memory balance store")
		return memory.NewStore(cfg.MaxHistory), nil

	case config.StoreRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		resources.add(func(context.Context) error { return client.Close() })

		logger.Info("using redis balance store", observability.String("addr", opts.Addr))
		return redisstore.NewStore(client, cfg.MaxHistory, cfg.RedisMaxRetries), nil

	case config.StorePostgres, config.StoreMySQL:
		db, err := sqlstore.Open(ctx, cfg.Driver, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		resources.add(func(context.Context) error { return db.Close() })

		if cfg.AutoMigrate {
			if err := sqlstore.Migrate(ctx, db); err != nil {
				return nil, err
			}
		}

		logger.Info("using SQL balance store", observability.String("driver", cfg.Driver))
		return sqlstore.NewStore(db), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStoreDriver, cfg.Driver)
	}
}

func provideEventPublisher(bus *observability.EventBus, cfg *config.EventsConfig) (domain.EventPublisher, error) {
	if cfg.SNSTopicARN == "" {
		return bus, nil
	}

	publisher, err := events.NewSNSPublisher(context.Background(), cfg.AWSRegion, cfg.SNSTopicARN)
	if err != nil {
		return nil, fmt.Errorf("failed to create SNS publisher: %w", err)
	}

	return events.Fanout{bus, publisher}, nil
}
