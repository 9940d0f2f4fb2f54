package main

import (
	"context"
	"fmt"
	"os"

	"resume-forge/internal/infrastructure/migration"
	infra "resume-forge/pkg/infrastructure"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var dsn string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the users and resume_documents tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dsn == "" {
				return errors.New("--database-url or DATABASE_URL is required")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			pool, err := infra.NewPool(ctx, dsn)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := migration.RunMigrations(ctx, pool); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migrations\n", len(migration.Migrations))
			return err
		},
	}
	cmd.Flags().StringVar(&dsn, "database-url", os.Getenv("DATABASE_URL"), "Postgres connection string")
	return cmd
}
