package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	fileadapter "doodle/contexts/community-scheduling/doodle-poll/adapters/file"
	"doodle/contexts/community-scheduling/doodle-poll/adapters/memory"
	postgresadapter "doodle/contexts/community-scheduling/doodle-poll/adapters/postgres"
	redisadapter "doodle/contexts/community-scheduling/doodle-poll/adapters/redis"
	"doodle/contexts/community-scheduling/doodle-poll/ports"
	"doodle/internal/platform/cache"
	"doodle/internal/platform/config"
	"doodle/internal/platform/db"
)

// openBlobStore returns the configured vote set store and a func releasing
// whatever connection it holds.
func openBlobStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.BlobStore, func() error, error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		return memory.NewStore(nil), nil, nil

	case config.BackendFile:
		store, err := fileadapter.NewStore(cfg.Storage.FileDir, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil

	case config.BackendPostgres, config.BackendSQLite:
		var conn *db.Postgres
		var err error
		if cfg.Storage.Backend == config.BackendPostgres {
			conn, err = db.Connect(ctx, cfg.Storage.PostgresDSN)
		} else {
			conn, err = db.OpenSQLite(cfg.Storage.SQLitePath)
		}
		if err != nil {
			return nil, nil, err
		}
		repo := postgresadapter.NewRepository(conn.DB, logger)
		if err := repo.Migrate(ctx); err != nil {
			_ = conn.Close()
			return nil, nil, err
		}
		return repo, joinClosers(conn.Close), nil

	case config.BackendRedis:
		client, err := cache.Connect(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return redisadapter.NewStore(client, cfg.Redis.KeyPrefix, logger), joinClosers(client.Close), nil

	default:
		return nil, nil, fmt.Errorf("unknown blob backend %q", cfg.Storage.Backend)
	}
}
