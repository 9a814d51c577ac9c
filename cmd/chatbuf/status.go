package main

import (
	"fmt"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/formatter"
	"github.com/spf13/cobra"
)

const statusCommandLong = `Print a one-line summary of the current buffer, e.g. for a shell
prompt or a terminal status bar.

--format takes a preset name or a template such as "${nick}@${server}".
The default comes from the status_format config key.`

// NewStatusCmd creates the status command with explicit dependencies.
func NewStatusCmd(client modelLoader) *cobra.Command {
	requireClient("NewStatusCmd", client)

	var (
		statusFormat string
		listPresets  bool
	)
	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Print a one-line summary",
		Long:  statusCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := formatter.NewPresetRegistry()
			w := cmd.OutOrStdout()
			if listPresets {
				for _, p := range registry.List() {
					fmt.Fprintf(w, "%-12s %s\n    %s\n", p.Name, p.Description, p.Template)
				}
				fmt.Fprintf(w, "\nVariables: %v\n", formatter.Variables)
				return nil
			}

			if statusFormat == "" {
				statusFormat = config.Get("status_format", formatter.DefaultPreset)
			}
			m, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			line, err := formatter.Render(registry, formatter.NewTemplateEngine(), statusFormat, formatter.ContextFromModel(m))
			if err != nil {
				return err
			}
			fmt.Fprintln(w, line)
			return nil
		},
	}
	statusCmd.Flags().StringVar(&statusFormat, "format", "", "preset name or template")
	statusCmd.Flags().BoolVar(&listPresets, "list-presets", false, "list presets and variables")
	return statusCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewStatusCmd(defaultClient))
}
