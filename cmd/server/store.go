package main

import (
	"context"
	"fmt"
	"log/slog"

	"applicant-records/internal/platform/config"
	"applicant-records/internal/platform/database"
	platformmongo "applicant-records/internal/platform/mongo"
	"applicant-records/internal/records/store"
	"applicant-records/migrations"
)

// openStore connects the backend selected by STORE_DRIVER. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (store.Records, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, err := platformmongo.Connect(ctx, platformmongo.DefaultConfig(cfg.MongoURI, cfg.MongoDatabase))
		if err != nil {
			return store.Records{}, nil, err
		}
		log.Info("connected to mongo", "database", cfg.MongoDatabase)
		closeFn := func() {
			if err := client.Close(context.Background()); err != nil {
				log.Warn("failed to disconnect mongo", "error", err)
			}
		}
		return store.NewMongoRecords(client.Database(), client.Health), closeFn, nil

	case config.DriverPostgres:
		pool, err := database.New(ctx, database.DefaultConfig(cfg.DatabaseURL))
		if err != nil {
			return store.Records{}, nil, err
		}
		if err := migrations.Up(ctx, pool.DB()); err != nil {
			_ = pool.Close()
			return store.Records{}, nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("connected to postgres")
		closeFn := func() {
			if err := pool.Close(); err != nil {
				log.Warn("failed to close postgres pool", "error", err)
			}
		}
		return store.NewPostgresRecords(pool.DB(), pool.Health), closeFn, nil

	case config.DriverMemory:
		log.Warn("using in-memory record store; data is lost on restart")
		return store.NewInMemory().Records(), func() {}, nil

	default:
		return store.Records{}, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
