package main

import (
	"log/slog"
	"os"

	"resume-forge/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Operate on resume snapshots and backups",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return err
			}
			level := "warn"
			if verbose {
				level = "debug"
			}
			slog.SetDefault(config.NewLogger(config.LogConfig{Level: level, Format: "text"}, cmd.ErrOrStderr()))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	root.AddCommand(newRenderCmd(), newValidateCmd(), newMigrateCmd(), newBackupsCmd())
	return root
}

// envOr returns the environment value of key or def.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
