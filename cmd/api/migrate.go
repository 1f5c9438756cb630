package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-builder-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-builder-api/pkg/config"
	"github.com/jhoicas/invoice-builder-api/pkg/logger"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema (embebidas en el binario)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica las migraciones pendientes",
			RunE: func(*cobra.Command, []string) error {
				cfg, log, err := bootstrap()
				if err != nil {
					return err
				}
				return migrateUp(cfg, log)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revierte la última migración",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(m *postgres.Migrator) error { return m.Down() })
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Muestra la versión actual del esquema",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withMigrator(func(m *postgres.Migrator) error {
					v, dirty, err := m.Version()
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", v, dirty)
					return nil
				})
			},
		},
	)
	return cmd
}

func migrateUp(cfg *config.Config, log *logger.Logger) error {
	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up()
}

func withMigrator(fn func(*postgres.Migrator) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	m, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return fn(m)
}
