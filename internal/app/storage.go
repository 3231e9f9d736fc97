package app

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/indigo-rentals/internal/domain/catalog"
	"github.com/xenking/indigo-rentals/internal/domain/pricing"
	"github.com/xenking/indigo-rentals/internal/domain/quote"
	"github.com/xenking/indigo-rentals/internal/storage/memory"
	"github.com/xenking/indigo-rentals/internal/storage/postgres"
	"github.com/xenking/indigo-rentals/internal/storage/seed"
	"github.com/xenking/indigo-rentals/pkg/health"
)

// stores holds the repositories for the configured storage driver.
type stores struct {
	catalog catalog.Repository
	quotes  quote.Repository
	close   func()
}

// openStorage connects the configured storage driver. PostgreSQL storage
// registers a readiness check on hs.
func openStorage(ctx context.Context, lg *zap.Logger, cfg *Config, hs *health.Health) (*stores, error) {
	switch cfg.Storage.Driver {
	case DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, errors.Wrap(err, "create db pool")
		}
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			return nil, errors.Wrap(err, "run migrations")
		}
		hs.AddReadinessCheck("postgres", 5*time.Second, health.PingCheck(pool))

		lg.Info("Using PostgreSQL storage")
		return &stores{
			catalog: postgres.NewCatalogRepository(pool),
			quotes:  postgres.NewQuoteRepository(pool),
			close:   pool.Close,
		}, nil
	case DriverMemory:
		c, err := seed.Default()
		if err != nil {
			return nil, errors.Wrap(err, "load seed catalog")
		}
		lg.Info("Using in-memory storage",
			zap.Int("items", len(c.Items)),
			zap.Int("collections", len(c.Collections)),
			zap.Int("lookbook", len(c.Lookbook)),
		)
		return &stores{
			catalog: memory.NewCatalogRepository(c),
			quotes:  memory.NewQuoteRepository(),
			close:   func() {},
		}, nil
	default:
		return nil, errors.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func newPricer(mode pricing.Mode, items catalog.Repository, calc *pricing.Calculator) quote.Pricer {
	if mode == pricing.ModeStub {
		return quote.StubPricer{}
	}
	return quote.NewCartPricer(items, calc)
}
