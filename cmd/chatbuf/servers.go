package main

import (
	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/spf13/cobra"
)

// NewServersCmd creates the servers command with explicit dependencies.
func NewServersCmd(client modelLoader) *cobra.Command {
	requireClient("NewServersCmd", client)

	return &cobra.Command{
		Use:   "servers",
		Short: "List servers and their buffers",
		Long: `List every connected server with its server buffer and channels.
The current buffer is marked with ">", followed by each buffer's line count.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			return outputFormatter().FormatServers(m, cmd.OutOrStdout())
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewServersCmd(defaultClient))
}
