package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/ignite/impact-dashboard/internal/config"
	"github.com/ignite/impact-dashboard/internal/pkg/logger"
	"github.com/ignite/impact-dashboard/internal/repository/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, dsn string

	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the dashboard database schema",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromEnv(configPath)
			if err != nil {
				return err
			}
			if dsn == "" {
				dsn = cfg.Database.URL
			}
			if dsn == "" {
				return errors.New("DATABASE_URL is required")
			}
			return logger.Init(cfg.Log.Level, "console", "migrate")
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "Config file")
	root.PersistentFlags().StringVar(&dsn, "database-url", "", "Postgres DSN (default: DATABASE_URL)")

	withMigrator := func(fn func(*postgres.Migrator) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			db, err := sql.Open("postgres", dsn)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := db.PingContext(cmd.Context()); err != nil {
				_ = db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			mg, err := postgres.NewMigrator(db)
			if err != nil {
				_ = db.Close()
				return err
			}
			defer mg.Close()
			return fn(mg)
		}
	}

	root.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: withMigrator(func(mg *postgres.Migrator) error {
			if err := mg.Up(); err != nil {
				return err
			}
			logger.Info("schema is up to date")
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back every migration (drops all dashboard tables)",
		RunE: withMigrator(func(mg *postgres.Migrator) error {
			if err := mg.Down(); err != nil {
				return err
			}
			logger.Info("schema rolled back")
			return nil
		}),
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		RunE: withMigrator(func(mg *postgres.Migrator) error {
			v, dirty, ok, err := mg.Version()
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println("no migrations applied")
				return nil
			}
			fmt.Printf("version %d (dirty=%t)\n", v, dirty)
			return nil
		}),
	})

	return root
}
