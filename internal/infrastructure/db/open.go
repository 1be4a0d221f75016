// Package db selects and opens the identity store backing the service.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/techchallenge/fastfood-identity/internal/core/ports"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db/memory"
	mongostore "github.com/techchallenge/fastfood-identity/internal/infrastructure/db/mongo"
	"github.com/techchallenge/fastfood-identity/internal/infrastructure/db/postgres"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Config names the driver and its connection descriptor.
type Config struct {
	Driver        string
	PostgresURL   string
	Migrate       bool
	MongoURI      string
	MongoDatabase string
}

// Handle is an opened store plus the hook that releases its resources.
type Handle struct {
	Store ports.UserStore
	Close func(ctx context.Context) error
}

func noopClose(context.Context) error { return nil }

// Open connects the configured driver. A missing connection descriptor is
// not an error: the returned store answers every call with
// domain.ErrStorageUnavailable.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*Handle, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverPostgres
	}

	switch driver {
	case DriverMemory:
		log.Warn().Msg("using in-memory identity store; data is lost on restart")
		return &Handle{Store: NewInstrumented(memory.NewUserStore()), Close: noopClose}, nil

	case DriverPostgres:
		if cfg.PostgresURL == "" {
			return unavailable(log, driver), nil
		}
		if cfg.Migrate {
			if err := postgres.RunMigrations(cfg.PostgresURL, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.PostgresURL})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("postgres identity store connected")
		return &Handle{
			Store: NewInstrumented(postgres.NewUserStore(pool)),
			Close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil

	case DriverMongo:
		if cfg.MongoURI == "" {
			return unavailable(log, driver), nil
		}
		client, database, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return nil, err
		}
		store := mongostore.NewUserStore(database)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("mongo identity store connected")
		return &Handle{Store: NewInstrumented(store), Close: client.Disconnect}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
}

func unavailable(log zerolog.Logger, driver string) *Handle {
	log.Warn().Str("driver", driver).Msg("no store connection descriptor configured; identity operations will fail as unavailable")
	return &Handle{Store: NewInstrumented(Unavailable{}), Close: noopClose}
}
