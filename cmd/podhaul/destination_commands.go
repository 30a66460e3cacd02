package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"podhaul/internal/destination"
	"podhaul/internal/library"
	"podhaul/internal/textutil"
)

func newDestinationCommand(ctx *commandContext) *cobra.Command {
	destCmd := &cobra.Command{
		Use:     "destination",
		Aliases: []string{"dest"},
		Short:   "Inspect and manage a transfer destination",
	}

	destCmd.AddCommand(newDestinationListCommand(ctx))
	destCmd.AddCommand(newDestinationDeleteCommand(ctx))

	return destCmd
}

func newDestinationListCommand(ctx *commandContext) *cobra.Command {
	var noEnrich bool

	cmd := &cobra.Command{
		Use:   "list [directory]",
		Short: "List episodes already present on a destination",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			root, err := resolveDestinationArg(ctx, args)
			if err != nil {
				return err
			}

			scanner := destination.NewScanner(logger)
			episodes, err := scanner.Scan(cmd.Context(), root)
			if err != nil {
				return fmt.Errorf("scan destination: %w", err)
			}

			if !noEnrich && len(episodes) > 0 {
				// Best-effort backfill from the library database; a scan only
				// knows what the file layout shows.
				reader := library.NewReader(ctx.databasePath(), logger)
				if metadata, err := reader.LoadMetadata(cmd.Context()); err == nil && len(metadata) > 0 {
					for i, ep := range episodes {
						if meta, ok := metadata[ep.Filename()]; ok {
							episodes[i] = meta.Apply(ep)
						}
					}
				}
			}

			if ctx.jsonOutput() {
				return writeJSON(cmd, episodes)
			}

			if len(episodes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No episodes found under %s\n", root)
				return nil
			}
			rows := make([][]string, 0, len(episodes))
			for _, ep := range episodes {
				rows = append(rows, []string{
					textutil.Truncate(ep.ShowTitle, 32),
					textutil.Truncate(ep.Title, 48),
					formatSize(ep.Size),
					textutil.Truncate(ep.Path, 60),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Show", "Title", "Size", "Path"},
				rows, 2,
			))
			return nil
		},
	}

	cmd.Flags().BoolVar(&noEnrich, "no-enrich", false, "Skip metadata backfill from the library database")
	return cmd
}

func newDestinationDeleteCommand(ctx *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <file>",
		Short: "Delete one episode file from a destination",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			target := args[0]

			if !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete %s? [y/N] ", target)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				answer = strings.ToLower(strings.TrimSpace(answer))
				if answer != "y" && answer != "yes" {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			scanner := destination.NewScanner(logger)
			if err := scanner.Delete(target); err != nil {
				return fmt.Errorf("delete episode: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")
	return cmd
}

// resolveDestinationArg picks the destination from the argument list or the
// configured default.
func resolveDestinationArg(ctx *commandContext, args []string) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return args[0], nil
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return "", err
	}
	if cfg.Destination.DefaultDir != "" {
		return cfg.Destination.DefaultDir, nil
	}
	return "", errors.New("no destination given and destination.default_dir is not configured")
}
