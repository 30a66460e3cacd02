package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"podhaul/internal/library"
	"podhaul/internal/textutil"
)

// The metadata command dumps the filename-keyed enrichment map. It is mostly
// a diagnostic: the same data backfills destination listings automatically.
func newMetadataCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "metadata",
		Short: "Dump enriched metadata keyed by filename",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			reader := library.NewReader(ctx.databasePath(), logger)
			metadata, err := reader.LoadMetadata(cmd.Context())
			if err != nil {
				return err
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, metadata)
			}

			if len(metadata) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No metadata available.")
				return nil
			}

			keys := make([]string, 0, len(metadata))
			for key := range metadata {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			rows := make([][]string, 0, len(keys))
			for _, key := range keys {
				meta := metadata[key]
				rows = append(rows, []string{
					textutil.Truncate(key, 40),
					textutil.Truncate(meta.ShowTitle, 28),
					textutil.Truncate(meta.Title, 40),
					formatDuration(meta.Duration),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Filename", "Show", "Title", "Duration"},
				rows, 3,
			))
			return nil
		},
	}
}
