package main

import (
	"context"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/spf13/cobra"
)

type modelLoader interface {
	LoadModel(ctx context.Context) (domain.Model, error)
}

const showCommandLong = `Print a buffer.

With no arguments the current buffer is printed. With a server the server
buffer is printed; with a server and a channel that channel's buffer.
A buffer that does not exist prints as the error buffer.

USAGE:
    chatbuf show [server] [channel] [OPTIONS]

OPTIONS:
    --tail <n>     Only print the last n lines
    -h, --help     Show this help`

// NewShowCmd creates the show command with explicit dependencies.
func NewShowCmd(client modelLoader) *cobra.Command {
	requireClient("NewShowCmd", client)

	var tail int
	showCmd := &cobra.Command{
		Use:   "show [server] [channel]",
		Short: "Print a buffer",
		Long:  showCommandLong,
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			pair := resolvePair(m, args)
			buf := m.GetBuffer(pair)
			if tail > 0 && len(buf.Lines) > tail {
				buf = domain.Buffer{Lines: buf.Lines[len(buf.Lines)-tail:], NewLine: buf.NewLine}
			}
			return outputFormatter().FormatBuffer(pair, buf, cmd.OutOrStdout())
		},
	}
	showCmd.Flags().IntVar(&tail, "tail", 0, "only print the last n lines")
	return showCmd
}

// resolvePair maps show arguments to a buffer: none selects the current
// buffer, a server alone selects its server buffer.
func resolvePair(m domain.Model, args []string) domain.NamePair {
	switch len(args) {
	case 0:
		return m.CurrentSelection()
	case 1:
		return domain.NamePair{Server: domain.ServerName(args[0]), Channel: domain.ServerBufferKey}
	default:
		return domain.NewNamePair(args[0], args[1])
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewShowCmd(defaultClient))
}
