package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tenant-task-api/internal/config"
	"github.com/BuzzLyutic/tenant-task-api/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "taskapi",
		Short:        "Multi-tenant task management API",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// setup читает конфиг и поднимает логгер; общий шаг для всех команд.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogLevel, cfg.Development, cfg.LogFile)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}
