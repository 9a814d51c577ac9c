package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/hooks"
	"github.com/cristianoliveira/chatbuf/internal/storage/sqlite"
	"github.com/cristianoliveira/chatbuf/internal/tui"
	"github.com/spf13/cobra"
)

type snapshotClient interface {
	modelLoader
	Save(ctx context.Context, m domain.Model) (sqlite.Revision, error)
}

// NewSayCmd creates the say command with explicit dependencies.
func NewSayCmd(client snapshotClient, hookRunner tui.HookRunner, handler errors.Handler) *cobra.Command {
	requireClient("NewSayCmd", client)
	requireClient("NewSayCmd", hookRunner)

	var nick string
	sayCmd := &cobra.Command{
		Use:   "say <server> <channel> <text>...",
		Short: "Append a line to a buffer",
		Long: `Append a line to a buffer and save the result.

Use "Server Buffer" as the channel to write to the server buffer. A channel
buffer that does not exist yet is created. The line is attributed to --nick,
or to your nick on that server.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			pair := domain.NewNamePair(args[0], args[1])
			author := nick
			if author == "" {
				author = m.GetNick(pair.Server)
			}
			line := domain.Line{Nick: author, Text: strings.Join(args[2:], " ")}

			next, err := m.AppendLineLimit(pair, line, config.GetInt("scrollback_limit", 0))
			if err != nil {
				return err
			}
			rev, err := client.Save(cmd.Context(), next)
			if err != nil {
				return err
			}
			handler.Success(fmt.Sprintf("%s appended to %s (revision %s)", line, pair.Channel, rev.ID))
			event := hooks.Event{Server: string(pair.Server), Channel: string(pair.Channel), Nick: line.Nick, Text: line.Text}
			return hookRunner.Run(cmd.Context(), hooks.PointLine, event)
		},
	}
	sayCmd.Flags().StringVar(&nick, "nick", "", "author of the line")
	return sayCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSayCmd(defaultClient, cliHooks{}, errors.NewDefaultCLIHandler()))
}
