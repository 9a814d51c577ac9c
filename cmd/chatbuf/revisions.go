package main

import (
	"context"
	"fmt"
	"time"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/format"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type revisionClient interface {
	Revisions(ctx context.Context) ([]sqlite.Revision, error)
	Prune(ctx context.Context, keep int, dryRun bool) (int, error)
}

type restoreClient interface {
	LoadRevision(ctx context.Context, id string) (domain.Model, sqlite.Revision, error)
	Save(ctx context.Context, m domain.Model) (sqlite.Revision, error)
}

// NewRevisionsCmd creates the revisions command with explicit dependencies.
func NewRevisionsCmd(client revisionClient) *cobra.Command {
	requireClient("NewRevisionsCmd", client)

	return &cobra.Command{
		Use:   "revisions",
		Short: "List saved snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			revs, err := client.Revisions(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(revs) == 0 {
				fmt.Fprintln(w, "No snapshots saved")
				return nil
			}
			for _, rev := range revs {
				fmt.Fprintf(w, "%-36s  %-20s  %s\n",
					rev.ID, rev.CreatedAt.Local().Format(time.DateTime), format.Selection(rev.Selection))
			}
			return nil
		},
	}
}

// NewPruneCmd creates the prune command with explicit dependencies.
func NewPruneCmd(client revisionClient, handler errors.Handler) *cobra.Command {
	requireClient("NewPruneCmd", client)

	var keep int
	var dryRun bool
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old snapshots",
		Long: `Delete all but the newest snapshots.

--keep defaults to the snapshot_keep config key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("keep") {
				keep = config.GetInt("snapshot_keep", 20)
			}
			n, err := client.Prune(cmd.Context(), keep, dryRun)
			if err != nil {
				return err
			}
			if dryRun {
				handler.Info(fmt.Sprintf("Would delete %d snapshots", n))
				return nil
			}
			handler.Success(fmt.Sprintf("Deleted %d snapshots", n))
			return nil
		},
	}
	pruneCmd.Flags().IntVar(&keep, "keep", 20, "number of snapshots to keep")
	pruneCmd.Flags().BoolVar(&dryRun, "dry-run", false, "only report what would be deleted")
	return pruneCmd
}

// NewRestoreCmd creates the restore command with explicit dependencies.
func NewRestoreCmd(client restoreClient, handler errors.Handler) *cobra.Command {
	requireClient("NewRestoreCmd", client)

	return &cobra.Command{
		Use:   "restore <revision>",
		Short: "Make an older snapshot the current one",
		Long: `Save a copy of an older snapshot as the newest revision.

The old revision is left in place; list revisions with 'chatbuf revisions'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, old, err := client.LoadRevision(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("loading revision %s: %w", args[0], err)
			}
			rev, err := client.Save(cmd.Context(), m)
			if err != nil {
				return err
			}
			handler.Success(fmt.Sprintf("Restored %s as revision %s", old.ID, rev.ID))
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewRevisionsCmd(defaultClient))
	cmd.RootCmd.AddCommand(NewPruneCmd(defaultClient, errors.NewDefaultCLIHandler()))
	cmd.RootCmd.AddCommand(NewRestoreCmd(defaultClient, errors.NewDefaultCLIHandler()))
}
