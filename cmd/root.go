// Package cmd holds the chatbuf root command and its global flags.
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/chatbuf/internal/colors"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/format"
	"github.com/cristianoliveira/chatbuf/internal/logging"
	"github.com/cristianoliveira/chatbuf/internal/version"
	"github.com/spf13/cobra"
)

// commandOrder is the order commands appear in the help text.
var commandOrder = []string{
	"show",
	"servers",
	"say",
	"search",
	"status",
	"tui",
	"init",
	"revisions",
	"prune",
	"restore",
	"help",
	"version",
}

var (
	dbPathFlag string
	formatFlag string
)

// RootCmd is the base command; subcommands register themselves on it.
var RootCmd = &cobra.Command{
	Use:               "chatbuf",
	Short:             "Chat buffers for a multi-server IRC client.",
	Long:              `Inspect and edit the buffers of a multi-server IRC client.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	RootCmd.PersistentFlags().StringVar(&dbPathFlag, "db", "", "snapshot database path (default $XDG_STATE_HOME/chatbuf/chatbuf.db)")
	RootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "output format: plain, color, json")

	RootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		PrintHelp(cmd.Root(), cmd.OutOrStdout())
	})
	RootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show this help message",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			PrintHelp(cmd.Root(), cmd.OutOrStdout())
		},
	})
}

// setup loads configuration, applies the global flags on top of it and
// starts file logging.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if err := applyFlags(dbPathFlag, formatFlag); err != nil {
		return err
	}
	colors.SetDebug(config.GetBool("debug", false))
	colors.SetQuiet(config.GetBool("quiet", false))

	if err := logging.InitGlobal(); err != nil {
		colors.Warning(fmt.Sprintf("file logging disabled: %v", err))
	}
	logging.Info("command started", "command", cmd.CommandPath())
	return nil
}

func applyFlags(dbPath, outputFormat string) error {
	if dbPath != "" {
		config.Set("db_path", dbPath)
	}
	if outputFormat != "" {
		t, err := format.ParseFormatterType(outputFormat)
		if err != nil {
			return err
		}
		config.Set("output_format", string(t))
	}
	return nil
}

// PrintHelp writes the command overview of root to w.
func PrintHelp(root *cobra.Command, w io.Writer) {
	var lines []string
	for _, name := range commandOrder {
		for _, c := range root.Commands() {
			if c.Name() == name {
				lines = append(lines, fmt.Sprintf("    %-24s %s", c.Use, c.Short))
				break
			}
		}
	}

	fmt.Fprintf(w, `chatbuf %s

%s

USAGE:
    chatbuf [COMMAND] [OPTIONS]

COMMANDS:
%s

OPTIONS:
    --db <path>         Snapshot database path
    --format <format>   Output format: plain, color, json
    -h, --help          Show help message
`, root.Version, root.Short, strings.Join(lines, "\n"))
}
