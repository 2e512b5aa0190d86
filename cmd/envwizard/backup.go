package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newBackupCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Inspect and prune env file backups",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List backups of the env file, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.targetFile("")
			items, err := a.backupManager().List(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintf(out, "No backups found for %s in %s\n", path, a.cfg.Backup.Dir)
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "FILE\tCREATED\tSIZE")
			for _, item := range items {
				created := "-"
				if !item.CreatedAt.IsZero() {
					created = item.CreatedAt.Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\n", item.File, created, item.SizeBytes)
			}
			return tw.Flush()
		},
	})

	var keep int
	prune := &cobra.Command{
		Use:   "prune",
		Short: "Delete all but the newest backups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			retention := a.cfg.Backup.Retention
			if cmd.Flags().Changed("keep") {
				retention = keep
			}
			if retention < 1 {
				return fmt.Errorf("--keep must be at least 1, got %d", retention)
			}

			path := a.targetFile("")
			if a.opts.dryRun {
				items, err := a.backupManager().List(path)
				if err != nil {
					return err
				}
				for i := retention; i < len(items); i++ {
					fmt.Fprintf(cmd.OutOrStdout(), "would delete %s\n", items[i].File)
				}
				return nil
			}

			deleted, err := a.backupManager().Prune(path, retention)
			if err != nil {
				return err
			}
			for _, item := range deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", item.File)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d backup(s) removed\n", len(deleted))
			return nil
		},
	}
	prune.Flags().IntVar(&keep, "keep", 0, "number of backups to keep (default from ENVWIZARD_BACKUP_RETENTION)")
	cmd.AddCommand(prune)

	return cmd
}
