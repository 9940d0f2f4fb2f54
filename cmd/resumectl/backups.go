package main

import (
	"fmt"
	"io"

	"resume-forge/internal/storage"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

type backupsOptions struct {
	user      string
	dataDir   string
	rotate    bool
	snapshots bool
}

func newBackupsCmd() *cobra.Command {
	opts := backupsOptions{}
	cmd := &cobra.Command{
		Use:   "backups",
		Short: "List or rotate a user's backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackups(opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&opts.user, "user", "", "User id")
	cmd.Flags().StringVar(&opts.dataDir, "data-dir", envOr("DATA_DIR", "data"), "Data directory")
	cmd.Flags().BoolVar(&opts.rotate, "rotate", false, "Delete all but the newest backups first")
	cmd.Flags().BoolVar(&opts.snapshots, "snapshots", false, "List snapshots as well")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func runBackups(opts backupsOptions, w io.Writer) error {
	if opts.user == "" {
		return errors.New("--user is required")
	}
	store := storage.New(opts.dataDir, nil)
	if opts.rotate {
		if err := store.RotateBackups(opts.user); err != nil {
			return err
		}
	}
	names, err := store.ListBackups(opts.user)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "backups (%d):\n", len(names))
	for _, n := range names {
		fmt.Fprintf(w, "  %s\n", n)
	}
	if opts.snapshots {
		snaps, err := store.List(opts.user)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "snapshots (%d):\n", len(snaps))
		for _, n := range snaps {
			fmt.Fprintf(w, "  %s\n", n)
		}
	}
	return nil
}
