package main

import (
	"fmt"
	"strings"

	"github.com/cristianoliveira/chatbuf/cmd"
	"github.com/cristianoliveira/chatbuf/internal/config"
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/cristianoliveira/chatbuf/internal/search"
	"github.com/spf13/cobra"
)

const searchCommandLong = `Search lines across every buffer.

MODES:
    substring   Lines whose text or nick contains the query (default)
    regex       Lines whose text or nick matches the query as a regular expression
    token       Every word of the query must appear; from:<nick> filters by author

The default mode comes from the search_mode config key.`

// NewSearchCmd creates the search command with explicit dependencies.
func NewSearchCmd(client modelLoader) *cobra.Command {
	requireClient("NewSearchCmd", client)

	var (
		mode          string
		server        string
		channel       string
		caseSensitive bool
		nickOnly      bool
		limit         int
	)
	searchCmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search lines across buffers",
		Long:  searchCommandLong,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if mode == "" {
				mode = config.Get("search_mode", string(search.KindSubstring))
			}
			opts := []search.Option{search.WithCaseInsensitive(!caseSensitive)}
			if nickOnly {
				opts = append(opts, search.WithFields([]string{search.FieldNick}))
			}
			provider, err := search.NewProvider(search.Kind(mode), opts...)
			if err != nil {
				return err
			}
			query := strings.Join(args, " ")
			if re, ok := provider.(*search.RegexProvider); ok {
				if _, err := re.Compile(query); err != nil {
					return fmt.Errorf("invalid pattern: %w", err)
				}
			}

			m, err := client.LoadModel(cmd.Context())
			if err != nil {
				return err
			}
			scope := search.Scope{Server: domain.ServerName(server), Channel: domain.ChannelName(channel)}
			matches := search.Model(m, provider, query, scope, limit)
			if len(matches) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "No matching lines")
				return nil
			}
			return outputFormatter().FormatMatches(matches, cmd.OutOrStdout())
		},
	}
	searchCmd.Flags().StringVar(&mode, "mode", "", "search mode: substring, regex or token")
	searchCmd.Flags().StringVar(&server, "server", "", "only search this server")
	searchCmd.Flags().StringVar(&channel, "channel", "", "only search this channel")
	searchCmd.Flags().BoolVar(&caseSensitive, "case-sensitive", false, "match case exactly")
	searchCmd.Flags().BoolVar(&nickOnly, "nick", false, "match nicks only")
	searchCmd.Flags().IntVar(&limit, "limit", 0, "only print the newest n matches")
	return searchCmd
}

func init() {
	cmd.RootCmd.AddCommand(NewSearchCmd(defaultClient))
}
