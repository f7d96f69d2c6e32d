package app

import (
	"context"
	"fmt"
	"log/slog"

	"calcHistory/internal/infrastructure/mongo"
	"calcHistory/internal/infrastructure/pg"
	"calcHistory/internal/infrastructure/redis"
	"calcHistory/internal/infrastructure/sqlite"
	"calcHistory/internal/ports"
)

// store — открытое хранилище записей и функция его закрытия.
type store struct {
	repo  ports.ICalculationRepository
	close func() error
}

// Close освобождает соединения хранилища.
func (s *store) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// openStore подключается к хранилищу из конфига и готовит схему: миграции для SQL, индексы для Mongo.
func openStore(ctx context.Context, cfg Config, log *slog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case DriverSQLite, "":
		db, err := sqlite.New(&cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		if err := sqlite.Migrate(db, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite migrate: %w", err)
		}
		log.Info("store opened", "driver", DriverSQLite, "path", cfg.SQLite.Path)
		return &store{repo: sqlite.NewCalculationRepo(db, log), close: db.Close}, nil

	case DriverPostgres:
		db, err := pg.New(&cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("db: %w", err)
		}
		if err := pg.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Info("store opened", "driver", DriverPostgres, "host", cfg.DB.Host, "db", cfg.DB.Name)
		return &store{repo: pg.NewCalculationRepo(db, log), close: db.Close}, nil

	case DriverMongo:
		client, err := mongo.New(ctx, &cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("mongo: %w", err)
		}
		if err := client.EnsureIndexes(ctx); err != nil {
			_ = client.Close()
			return nil, err
		}
		log.Info("store opened", "driver", DriverMongo, "db", cfg.Mongo.Database)
		return &store{repo: mongo.NewCalculationRepo(client, log), close: client.Close}, nil

	case DriverRedis:
		client, err := redis.New(&cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis: %w", err)
		}
		log.Info("store opened", "driver", DriverRedis, "addr", cfg.Redis.Addr())
		return &store{repo: redis.NewCalculationRepo(client, cfg.Redis.Prefix, log), close: client.Close}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q (want sqlite, postgres, mongo or redis)", cfg.Store.Driver)
}
