package transfer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"podhaul/internal/episode"
	"podhaul/internal/logging"
	"podhaul/internal/testsupport"
	"podhaul/internal/transfer"
)

func newEngine(t *testing.T, opts transfer.Options) *transfer.Engine {
	t.Helper()
	return transfer.NewEngine(opts, logging.NewNop())
}

func sourceEpisode(t *testing.T, dir, filename, title, show string) episode.Episode {
	t.Helper()
	path := testsupport.WriteAudioFile(t, dir, filename)
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat source: %v", err)
	}
	return episode.Episode{Path: path, Title: title, ShowTitle: show, Size: info.Size()}
}

func TestTransferFreshCopy(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "copy-me.m4a", "Copy Me", "Testing")

	outcome, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if outcome.Copied != 1 || outcome.Skipped != 0 || len(outcome.Failed) != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if outcome.SessionID == "" {
		t.Fatal("missing session id")
	}
	target := filepath.Join(dest, "Testing", "Copy Me.m4a")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected file at %s: %v", target, err)
	}
}

func TestTransferSkipsExisting(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "simple.m4a", "Simple Episode", "Simple Show")
	testsupport.WriteFile(t, filepath.Join(dest, "Simple Show", "Simple Episode.m4a"), "already there")

	outcome, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if outcome.Copied != 0 || outcome.Skipped != 1 || len(outcome.Failed) != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}

	// The pre-existing file was not overwritten.
	data, err := os.ReadFile(filepath.Join(dest, "Simple Show", "Simple Episode.m4a"))
	if err != nil {
		t.Fatalf("read existing: %v", err)
	}
	if string(data) != "already there" {
		t.Fatal("existing file was overwritten")
	}
}

func TestTransferIsIdempotent(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	episodes := []episode.Episode{
		sourceEpisode(t, srcDir, "one.m4a", "One", "Show"),
		sourceEpisode(t, srcDir, "two.m4a", "Two", "Show"),
		sourceEpisode(t, srcDir, "three.m4a", "Three", "Other Show"),
	}

	engine := newEngine(t, transfer.Options{})
	first, err := engine.Transfer(context.Background(), episodes, dest)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if first.Copied != 3 {
		t.Fatalf("first outcome = %+v", first)
	}

	second, err := engine.Transfer(context.Background(), episodes, dest)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Copied != 0 || second.Skipped != 3 || len(second.Failed) != 0 {
		t.Fatalf("second outcome = %+v", second)
	}
}

func TestTransferSanitizesFilenames(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "source.m4a", `Weird / Title:Name?*`, "My Show")

	outcome, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if outcome.Copied != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}

	entries, err := os.ReadDir(filepath.Join(dest, "My Show"))
	if err != nil {
		t.Fatalf("read show dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 file, got %d", len(entries))
	}
	name := entries[0].Name()
	if strings.ContainsAny(name, `/\:?*"<>|`) {
		t.Fatalf("unsafe characters in %q", name)
	}
	if !strings.HasSuffix(name, ".m4a") {
		t.Fatalf("extension lost: %q", name)
	}
}

func TestTransferFallsBackToSourceFilename(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "fallback.m4a", "   ", "Fallback Show")

	outcome, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if outcome.Copied != 1 || len(outcome.Failed) != 0 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if _, err := os.Stat(filepath.Join(dest, "Fallback Show", "fallback.m4a")); err != nil {
		t.Fatalf("fallback name missing: %v", err)
	}
}

func TestTransferSanitizesShowDirectories(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "nested.m4a", "Nested", "AC/DC Fancast")

	if _, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "AC-DC Fancast", "Nested.m4a")); err != nil {
		t.Fatalf("show directory not sanitized: %v", err)
	}
}

func TestTransferIsolatesPerFileFailures(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	good := sourceEpisode(t, srcDir, "good.m4a", "Good", "Show")
	missing := episode.Episode{
		Path:      filepath.Join(srcDir, "vanished.m4a"),
		Title:     "Vanished",
		ShowTitle: "Show",
	}
	alsoGood := sourceEpisode(t, srcDir, "also-good.m4a", "Also Good", "Show")

	episodes := []episode.Episode{good, missing, alsoGood}
	outcome, err := newEngine(t, transfer.Options{}).Transfer(context.Background(), episodes, dest)
	if err != nil {
		t.Fatalf("per-file failure must not abort the batch: %v", err)
	}

	if outcome.Copied != 2 || outcome.Skipped != 0 || len(outcome.Failed) != 1 {
		t.Fatalf("outcome = %+v", outcome)
	}
	if outcome.Failed[0].Source != missing.Path || outcome.Failed[0].Reason == "" {
		t.Fatalf("failure entry = %+v", outcome.Failed[0])
	}
	// Conservation: every input accounted for exactly once.
	if outcome.Copied+outcome.Skipped+len(outcome.Failed) != len(episodes) {
		t.Fatalf("conservation violated: %+v", outcome)
	}
}

func TestTransferReportsProgress(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	episodes := []episode.Episode{
		sourceEpisode(t, srcDir, "a.m4a", "A", "Show"),
		sourceEpisode(t, srcDir, "b.m4a", "B", "Show"),
	}

	var calls [][2]int
	opts := transfer.Options{OnProgress: func(completed, total int) {
		calls = append(calls, [2]int{completed, total})
	}}
	if _, err := newEngine(t, opts).Transfer(context.Background(), episodes, dest); err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if len(calls) != 2 || calls[0] != [2]int{1, 2} || calls[1] != [2]int{2, 2} {
		t.Fatalf("progress calls = %v", calls)
	}
}

func TestTransferRefusesLockedDestination(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "locked.m4a", "Locked", "Show")

	holder := flock.New(transfer.LockPath(dest))
	locked, err := holder.TryLock()
	if err != nil || !locked {
		t.Fatalf("prepare lock: locked=%t err=%v", locked, err)
	}
	defer func() { _ = holder.Unlock() }()

	_, err = newEngine(t, transfer.Options{}).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err == nil {
		t.Fatal("expected ErrInProgress")
	}
	if !errors.Is(err, transfer.ErrInProgress) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTransferInsufficientSpace(t *testing.T) {
	srcDir := t.TempDir()
	dest := t.TempDir()
	ep := sourceEpisode(t, srcDir, "big.m4a", "Big", "Show")
	ep.Size = 1 << 60 // pretend the source is an exbibyte

	opts := transfer.Options{CheckFreeSpace: true}
	_, err := newEngine(t, opts).Transfer(context.Background(), []episode.Episode{ep}, dest)
	if err == nil {
		t.Fatal("expected space preflight to fail")
	}
	if !errors.Is(err, transfer.ErrInsufficientSpace) {
		t.Fatalf("unexpected error: %v", err)
	}
}
