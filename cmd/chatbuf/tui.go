package main

import (
	"fmt"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/colors"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/errors"
	"github.com/cristianoliveira/chatbuf/internal/search"
	"github.com/cristianoliveira/chatbuf/internal/settings"
	"github.com/cristianoliveira/chatbuf/internal/state"
	"github.com/cristianoliveira/chatbuf/internal/tui"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Open the interactive client.

KEY BINDINGS:
    ctrl+n / ctrl+p   Next / previous buffer
    enter             Send the input line
    ctrl+o            Open the newest URL of the buffer
    ctrl+s            Save a snapshot
    ctrl+b            Show or hide the sidebar
    pgup / pgdown     Scroll
    esc / ctrl+c      Quit (the state is saved on exit)

COMMANDS:
    /join [#channel]  Join a channel (default: the server's pending channel)
    /part [#channel]  Leave a channel (default: the current one)
    /nick <nick>      Change your nick on the current server
    /connect <server> Connect to a server
    /disconnect [s]   Disconnect from a server (default: the current one)
    /search [query]   Show only matching lines (empty query clears)

Scripts in the hooks directory run after each sent line and command.`

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(client snapshotClient, runner tui.ProgramRunner, hookRunner tui.HookRunner, handler errors.Handler) *cobra.Command {
	requireClient("NewTUICmd", client)
	requireClient("NewTUICmd", runner)
	requireClient("NewTUICmd", hookRunner)

	var noSave bool
	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive client",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			searcher, err := search.NewProvider(search.Kind(config.Get("search_mode", "")), search.WithCaseInsensitive(true))
			if err != nil {
				return err
			}
			settingsPath := settings.Path()
			prefs, err := settings.Load(settingsPath)
			if err != nil {
				handler.Warning(err.Error() + "; using default TUI settings")
				prefs = settings.DefaultSettings()
			}
			store := state.NewStore(initial)
			model := tui.NewModel(store, tui.Options{
				ScrollbackLimit: config.GetInt("scrollback_limit", 1000),
				DefaultNick:     config.Get("nick", "guest"),
				Saver:           client,
				Hooks:           hookRunner,
				Search:          searcher,
				Settings:        prefs,
			})

			colors.DisableStructuredLogging()
			err = runner.Run(model)
			colors.EnableStructuredLogging()
			if err != nil {
				return fmt.Errorf("running tui: %w", err)
			}
			if final := model.Settings(); final != *prefs {
				if err := settings.Save(settingsPath, &final); err != nil {
					handler.Warning("Could not save TUI settings: " + err.Error())
				}
			}

			if noSave {
				return nil
			}
			rev, err := client.Save(cmd.Context(), store.Load())
			if err != nil {
				return err
			}
			handler.Info("Saved revision " + rev.ID)
			return nil
		},
	}
	tuiCmd.Flags().BoolVar(&noSave, "no-save", false, "do not save the state on exit")
	return tuiCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewTUICmd(defaultClient, tui.NewDefaultProgramRunner(), tuiHooks{}, errors.NewDefaultCLIHandler()))
}
