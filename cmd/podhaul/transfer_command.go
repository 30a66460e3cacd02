package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"podhaul/internal/episode"
	"podhaul/internal/library"
	"podhaul/internal/transfer"
)

func newTransferCommand(ctx *commandContext) *cobra.Command {
	var all bool
	var shows []string
	var noSpaceCheck bool

	cmd := &cobra.Command{
		Use:   "transfer [destination] [episode-path ...]",
		Short: "Copy selected episodes onto a destination",
		Long: `Copy episodes from the Podcasts library onto a destination directory,
one subdirectory per show. Episodes already present are skipped, never
overwritten. Select episodes with --all, --show, or by listing their source
paths after the destination.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			dest, paths := splitTransferArgs(ctx, args)
			reader := library.NewReader(ctx.databasePath(), logger)
			episodes, err := reader.LoadEpisodes(cmd.Context())
			if err != nil {
				return fmt.Errorf("load episodes: %w", err)
			}

			selected, err := selectEpisodes(episodes, all, shows, paths)
			if err != nil {
				return err
			}

			opts := transfer.Options{
				CheckFreeSpace:       cfg.Transfer.CheckFreeSpace && !noSpaceCheck,
				FreeSpaceMarginBytes: cfg.Transfer.FreeSpaceMarginMiB << 20,
			}

			var bar *progressbar.ProgressBar
			if !ctx.jsonOutput() && isatty.IsTerminal(os.Stderr.Fd()) {
				bar = progressbar.NewOptions(len(selected),
					progressbar.OptionSetDescription("Copying"),
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionClearOnFinish(),
				)
				opts.OnProgress = func(completed, total int) {
					_ = bar.Set(completed)
				}
			}

			session := transfer.NewSession(opts, logger)
			state := session.Run(cmd.Context(), selected, dest)
			if bar != nil {
				_ = bar.Finish()
			}

			switch state.Phase {
			case transfer.PhaseFinished:
				return reportOutcome(cmd, ctx, state.Outcome)
			case transfer.PhaseFailed:
				return errors.New(state.Message)
			default:
				return fmt.Errorf("transfer ended in unexpected state %q", state.Phase)
			}
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Transfer every downloaded episode")
	cmd.Flags().StringArrayVar(&shows, "show", nil, "Transfer all episodes of the named show (repeatable)")
	cmd.Flags().BoolVar(&noSpaceCheck, "no-space-check", false, "Skip the destination free-space preflight")
	return cmd
}

// splitTransferArgs separates the destination from episode paths. The first
// argument is always the destination; with no arguments at all the configured
// default destination applies.
func splitTransferArgs(ctx *commandContext, args []string) (string, []string) {
	if len(args) == 0 {
		if cfg, err := ctx.ensureConfig(); err == nil {
			return cfg.Destination.DefaultDir, nil
		}
		return "", nil
	}
	return args[0], args[1:]
}

// selectEpisodes narrows the library to the requested subset, preserving the
// library's ordering.
func selectEpisodes(episodes []episode.Episode, all bool, shows, paths []string) ([]episode.Episode, error) {
	if all {
		return episodes, nil
	}

	wantShow := make(map[string]bool, len(shows))
	for _, show := range shows {
		wantShow[show] = true
	}
	wantPath := make(map[string]bool, len(paths))
	for _, path := range paths {
		wantPath[path] = true
	}
	if len(wantShow) == 0 && len(wantPath) == 0 {
		return nil, errors.New("select episodes with --all, --show, or explicit paths")
	}

	var selected []episode.Episode
	for _, ep := range episodes {
		if wantShow[ep.ShowTitle] || wantPath[ep.Path] {
			selected = append(selected, ep)
			delete(wantPath, ep.Path)
		}
	}
	if len(wantPath) > 0 {
		missing := make([]string, 0, len(wantPath))
		for path := range wantPath {
			missing = append(missing, path)
		}
		return nil, fmt.Errorf("not in the library: %s", strings.Join(missing, ", "))
	}
	return selected, nil
}

func reportOutcome(cmd *cobra.Command, ctx *commandContext, outcome *transfer.Outcome) error {
	if ctx.jsonOutput() {
		if err := writeJSON(cmd, outcome); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Transferred to %s: %d copied, %d skipped, %d failed\n",
			outcome.Destination, outcome.Copied, outcome.Skipped, len(outcome.Failed))
		for _, failure := range outcome.Failed {
			fmt.Fprintf(out, "  failed: %s (%s)\n", failure.Source, failure.Reason)
		}
	}
	if !outcome.Clean() {
		return fmt.Errorf("%d episode(s) failed to copy", len(outcome.Failed))
	}
	return nil
}
