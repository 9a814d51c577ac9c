package main

import (
	"fmt"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
}

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	requireClient("NewVersionCmd", client)

	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of chatbuf.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "chatbuf version %s\n", client.Version())
			return nil
		},
	}
}

func init() {
	cmd.RootCmd.AddCommand(NewVersionCmd(defaultClient))
}
