package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/config"
	"github.com/BuzzLyutic/tenant-task-api/internal/repo/docstore"
	"github.com/BuzzLyutic/tenant-task-api/migrations"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(cmd.Context(), true)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigration(cmd.Context(), false)
			},
		},
	)
	return cmd
}

func runMigration(ctx context.Context, up bool) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		if up {
			err = migrations.Up(cfg.DatabaseURL)
		} else {
			err = migrations.Down(cfg.DatabaseURL)
		}
	case config.DriverMongo:
		// У MongoDB нет схемы, только индексы; откатывать нечего.
		if up {
			err = ensureMongoIndexes(ctx, cfg)
		}
	case config.DriverMemory:
		log.Info("in-memory store has no schema, nothing to migrate")
		return nil
	default:
		err = fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	if err != nil {
		log.Error("migration failed", zap.String("driver", cfg.StoreDriver), zap.Error(err))
		return err
	}

	log.Info("migration complete", zap.String("driver", cfg.StoreDriver), zap.Bool("up", up))
	return nil
}

func ensureMongoIndexes(ctx context.Context, cfg config.Config) error {
	client, err := docstore.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	return docstore.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase))
}
