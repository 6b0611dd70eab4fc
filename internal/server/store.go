package server

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/config"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo/docstore"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo/memory"
	"github.com/BuzzLyutic/tenant-task-api/migrations"
)

// Stores держит репозитории выбранного бэкенда и закрывает соединение с ним.
type Stores struct {
	Users repo.UserRepository
	Tasks repo.TaskRepository
	close func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores подключается к хранилищу из cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg, logger)
	case config.DriverMongo:
		return openMongo(ctx, cfg, logger)
	case config.DriverMemory:
		logger.Warn("using in-memory store, data will not survive a restart")
		return &Stores{Users: memory.NewUserStore(), Tasks: memory.NewTaskStore()}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openPostgres(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Stores, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			return nil, err
		}
		logger.Info("schema migrations applied")
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	logger.Info("Successfully connected to the Database!", zap.String("driver", cfg.StoreDriver))

	return &Stores{
		Users: repo.NewUserRepo(pool),
		Tasks: repo.NewTaskRepo(pool),
		close: pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Stores, error) {
	client, err := docstore.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.MongoDatabase)

	// Уникальный индекс по email нужен всегда: без него дубли пройдут гонкой.
	if err := docstore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	logger.Info("Successfully connected to the Database!",
		zap.String("driver", cfg.StoreDriver),
		zap.String("database", cfg.MongoDatabase),
	)

	return &Stores{
		Users: docstore.NewUserRepo(db),
		Tasks: docstore.NewTaskRepo(db),
		close: func() { _ = client.Disconnect(context.Background()) },
	}, nil
}
