package main

import (
	"context"
	"fmt"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
	"github.com/spf13/cobra"
)

type saver interface {
	Save(ctx context.Context, m domain.Model) (sqlite.Revision, error)
}

// NewInitCmd creates the init command with explicit dependencies.
func NewInitCmd(client saver, handler errors.Handler) *cobra.Command {
	requireClient("NewInitCmd", client)

	var fromConfig bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Save a fresh initial snapshot",
		Long: `Save a fresh initial snapshot as the newest revision.

By default the sample snapshot is saved. With --from-config one server
buffer is created for each entry of the "servers" config key.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := config.GetBool("sample_data", true) && !fromConfig
			m := initialModel(sample)
			if len(m.ServerInfoMap) == 0 {
				handler.Warning("no servers configured; saving an empty snapshot")
			}
			rev, err := client.Save(cmd.Context(), m)
			if err != nil {
				return err
			}
			handler.Success(fmt.Sprintf("Saved revision %s with %d servers", rev.ID, len(m.ServerInfoMap)))
			return nil
		},
	}
	initCmd.Flags().BoolVar(&fromConfig, "from-config", false, "build the snapshot from the servers config key")
	return initCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewInitCmd(defaultClient, errors.NewDefaultCLIHandler()))
}
