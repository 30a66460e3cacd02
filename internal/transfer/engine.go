package transfer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"podhaul/internal/episode"
	"podhaul/internal/fileutil"
	"podhaul/internal/logging"
	"podhaul/internal/textutil"
)

// ErrInProgress indicates another transfer currently holds the destination.
var ErrInProgress = errors.New("a transfer to this destination is already in progress")

// ErrInsufficientSpace indicates the destination cannot hold the selection.
var ErrInsufficientSpace = errors.New("not enough free space on destination")

// Options configures an Engine.
type Options struct {
	// CheckFreeSpace enables the up-front capacity preflight.
	CheckFreeSpace bool
	// FreeSpaceMarginBytes is headroom required beyond the summed source
	// sizes when the preflight runs.
	FreeSpaceMarginBytes int64
	// OnProgress, when set, is invoked after each episode is resolved
	// (copied, skipped, or failed all advance the count).
	OnProgress func(completed, total int)
}

// Engine copies episode files into a destination layout. It holds no mutable
// state across runs; a single Engine can serve sequential transfers.
type Engine struct {
	opts   Options
	logger *slog.Logger
}

// NewEngine constructs a transfer engine.
func NewEngine(opts Options, logger *slog.Logger) *Engine {
	return &Engine{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "transfer"),
	}
}

// Transfer copies each episode into destination/<show>/<title><ext>, in input
// order, strictly sequentially. Directory creation failures and a failed
// space preflight abort the run with an error and no partial outcome;
// per-file copy failures are collected and the batch continues. Once the
// copy loop starts the run is not cancelable; it finishes or fails whole.
func (e *Engine) Transfer(ctx context.Context, episodes []episode.Episode, destination string) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sessionID := uuid.NewString()
	logger := e.logger.With(logging.String("session", sessionID))

	if err := os.MkdirAll(destination, 0o755); err != nil {
		return nil, fmt.Errorf("create destination root: %w", err)
	}
	if !fileutil.Writable(destination) {
		return nil, fmt.Errorf("destination %s is not writable", destination)
	}

	unlock, err := lockDestination(destination)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if e.opts.CheckFreeSpace {
		if err := e.checkCapacity(episodes, destination, logger); err != nil {
			return nil, err
		}
	}

	logger.Info("transfer started",
		logging.String("destination", destination),
		logging.Int("episodes", len(episodes)),
	)

	outcome := &Outcome{SessionID: sessionID, Destination: destination}
	total := len(episodes)
	for i, ep := range episodes {
		showDir := filepath.Join(destination, showDirectoryName(ep.ShowTitle))
		if err := os.MkdirAll(showDir, 0o755); err != nil {
			return nil, fmt.Errorf("create show directory %q: %w", showDir, err)
		}

		target := filepath.Join(showDir, destinationFileName(ep))
		switch {
		case fileutil.Exists(target):
			outcome.Skipped++
			logger.Debug("skipping existing file", logging.String("target", target))
		default:
			if err := fileutil.CopyFile(ep.Path, target); err != nil {
				outcome.Failed = append(outcome.Failed, Failure{Source: ep.Path, Reason: err.Error()})
				logger.Warn("copy failed",
					logging.String("source", ep.Path),
					logging.String("target", target),
					logging.Error(err),
				)
			} else {
				outcome.Copied++
			}
		}

		if e.opts.OnProgress != nil {
			e.opts.OnProgress(i+1, total)
		}
	}

	logger.Info("transfer finished",
		logging.Int("copied", outcome.Copied),
		logging.Int("skipped", outcome.Skipped),
		logging.Int("failed", len(outcome.Failed)),
	)
	return outcome, nil
}

// checkCapacity verifies the destination can hold the summed source sizes
// plus the configured margin. An unknown free-space value skips the check.
func (e *Engine) checkCapacity(episodes []episode.Episode, destination string, logger *slog.Logger) error {
	var required int64
	for _, ep := range episodes {
		required += ep.Size
	}
	required += e.opts.FreeSpaceMarginBytes

	free, err := fileutil.FreeSpace(destination)
	if err != nil {
		logger.Debug("free space unavailable, skipping capacity check", logging.Error(err))
		return nil
	}
	if uint64(required) > free {
		return fmt.Errorf("%w: need %d bytes, %d available", ErrInsufficientSpace, required, free)
	}
	return nil
}

// showDirectoryName sanitizes a show title for use as a directory. Titles
// that sanitize to nothing land in the catch-all show.
func showDirectoryName(showTitle string) string {
	name := textutil.SanitizeFileName(showTitle)
	if name == "" {
		return episode.UnknownShowTitle
	}
	return name
}

// destinationFileName derives the target filename: the sanitized episode
// title, falling back to the sanitized source basename, with the source
// extension preserved.
func destinationFileName(ep episode.Episode) string {
	base := textutil.SanitizeFileName(ep.Title)
	if base == "" {
		base = textutil.SanitizeFileName(ep.BaseName())
	}
	return base + filepath.Ext(ep.Path)
}
