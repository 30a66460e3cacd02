package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"podhaul/internal/episode"
	"podhaul/internal/library"
	"podhaul/internal/textutil"
)

func newEpisodesCommand(ctx *commandContext) *cobra.Command {
	var showFilter string

	cmd := &cobra.Command{
		Use:   "episodes",
		Short: "List downloaded episodes in the Podcasts library",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			reader := library.NewReader(ctx.databasePath(), logger)
			episodes, err := reader.LoadEpisodes(cmd.Context())
			if err != nil {
				return fmt.Errorf("load episodes: %w", err)
			}
			if showFilter != "" {
				episodes = filterByShow(episodes, showFilter)
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, episodes)
			}

			if len(episodes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No downloaded episodes found.")
				return nil
			}
			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				rows = append(rows, []string{
					textutil.Truncate(ep.ShowTitle, 32),
					textutil.Truncate(ep.Title, 48),
					formatDuration(ep.Duration),
					formatSize(ep.Size),
					formatCreatedAt(ep),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Show", "Title", "Duration", "Size", "Added"},
				rows, 2, 3,
			))
			fmt.Fprintf(cmd.OutOrStdout(), "%d episode(s)\n", len(episodes))
			return nil
		},
	}

	cmd.Flags().StringVar(&showFilter, "show", "", "Only list episodes of the named show")
	return cmd
}

func filterByShow(episodes []episode.Episode, show string) []episode.Episode {
	filtered := episodes[:0:0]
	for _, ep := range episodes {
		if ep.ShowTitle == show {
			filtered = append(filtered, ep)
		}
	}
	return filtered
}
