package library_test

import (
	"context"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"podhaul/internal/library"
	"podhaul/internal/logging"
	"podhaul/internal/testsupport"
)

func fileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: path}).String()
}

func TestLoadEpisodesMissingDatabase(t *testing.T) {
	reader := library.NewReader(filepath.Join(t.TempDir(), "absent.sqlite"), logging.NewNop())
	episodes, err := reader.LoadEpisodes(context.Background())
	if err != nil {
		t.Fatalf("missing database should not error: %v", err)
	}
	if len(episodes) != 0 {
		t.Fatalf("expected empty result, got %d", len(episodes))
	}
}

func TestLoadEpisodesCorruptDatabaseFails(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "broken.sqlite")
	testsupport.WriteFile(t, dbPath, "this is not a sqlite file at all, padded to look real enough")

	reader := library.NewReader(dbPath, logging.NewNop())
	if _, err := reader.LoadEpisodes(context.Background()); err == nil {
		t.Fatal("expected query failure to propagate")
	}
}

func TestLoadEpisodesReconcilesAgainstFilesystem(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "MTLibrary.sqlite")

	onDisk := testsupport.WriteAudioFile(t, dir, "present.m4a")
	untitled := testsupport.WriteAudioFile(t, dir, "untitled-episode.m4a")
	notAudio := filepath.Join(dir, "transcript.txt")
	testsupport.WriteFile(t, notAudio, "text")

	testsupport.BuildLibraryDB(t, dbPath,
		[]testsupport.LibraryShow{
			{ID: 1, Title: "Deep Dive", Author: "The Network", ImageURL: "https://example.com/pod.jpg"},
		},
		[]testsupport.LibraryEpisode{
			// Healthy row.
			{ShowID: 1, Title: "Kept Episode", Duration: 1200.0, AssetURL: fileURL(onDisk), DownloadDate: 790000000.0},
			// Asset deleted from disk: dropped.
			{ShowID: 1, Title: "Ghost Episode", AssetURL: fileURL(filepath.Join(dir, "gone.m4a"))},
			// Wrong extension: dropped.
			{ShowID: 1, Title: "Transcript", AssetURL: fileURL(notAudio)},
			// NULL title, no show join: falls back to filename and Unknown Podcast.
			{Title: nil, AssetURL: fileURL(untitled), PubDate: 780000000.0},
			// Unparseable asset reference: dropped.
			{ShowID: 1, Title: "Bad URL", AssetURL: "https://example.com/stream.m4a"},
		},
	)

	reader := library.NewReader(dbPath, logging.NewNop())
	episodes, err := reader.LoadEpisodes(context.Background())
	if err != nil {
		t.Fatalf("LoadEpisodes: %v", err)
	}
	if len(episodes) != 2 {
		t.Fatalf("expected 2 surviving episodes, got %d: %+v", len(episodes), episodes)
	}

	// Descending by creation time: the larger download date sorts first.
	first, second := episodes[0], episodes[1]
	if first.Title != "Kept Episode" {
		t.Fatalf("newest first, got %q", first.Title)
	}
	if first.ShowTitle != "Deep Dive" || first.Author != "The Network" {
		t.Fatalf("join fields wrong: %+v", first)
	}
	if first.Duration != 1200 {
		t.Fatalf("duration = %v", first.Duration)
	}
	if first.Size <= 0 {
		t.Fatalf("size not populated: %d", first.Size)
	}
	wantCreated := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC).Add(790000000 * time.Second)
	if !first.CreatedAt.Equal(wantCreated) {
		t.Fatalf("created at = %v, want %v", first.CreatedAt, wantCreated)
	}
	if first.ArtworkURL != "https://example.com/pod.jpg" {
		t.Fatalf("artwork = %q", first.ArtworkURL)
	}

	if second.Title != "untitled-episode" {
		t.Fatalf("title fallback = %q", second.Title)
	}
	if second.ShowTitle != "Unknown Podcast" {
		t.Fatalf("show fallback = %q", second.ShowTitle)
	}
}

func TestLoadEpisodesArtworkTemplatePriority(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "MTLibrary.sqlite")
	asset := testsupport.WriteAudioFile(t, dir, "art.m4a")

	testsupport.BuildLibraryDB(t, dbPath,
		[]testsupport.LibraryShow{
			{ID: 7, Title: "Art Show", ImageURL: "https://example.com/pod.jpg", ArtworkTemplate: "https://example.com/pod/{w}x{h}.{f}"},
		},
		[]testsupport.LibraryEpisode{
			{ShowID: 7, Title: "With Template", AssetURL: fileURL(asset), ArtworkTemplate: "https://example.com/ep/{w}x{h}.{f}"},
		},
	)

	reader := library.NewReader(dbPath, logging.NewNop())
	episodes, err := reader.LoadEpisodes(context.Background())
	if err != nil {
		t.Fatalf("LoadEpisodes: %v", err)
	}
	if len(episodes) != 1 {
		t.Fatalf("expected 1 episode, got %d", len(episodes))
	}
	if episodes[0].ArtworkURL != "https://example.com/ep/300x300.jpg" {
		t.Fatalf("episode template should win: %q", episodes[0].ArtworkURL)
	}
}

func TestLoadMetadataKeyedByFilename(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "MTLibrary.sqlite")

	testsupport.BuildLibraryDB(t, dbPath,
		[]testsupport.LibraryShow{
			{ID: 1, Title: "Deep Dive", Author: "The Network"},
		},
		[]testsupport.LibraryEpisode{
			// Metadata rows need no file on disk; the map serves scans of
			// other machines' copies too.
			{ShowID: 1, Title: "Kept Episode", Duration: 900.0, AssetURL: fileURL(filepath.Join(dir, "kept.m4a"))},
			{ShowID: 1, Title: "Another", AssetURL: fileURL(filepath.Join(dir, "another.m4a"))},
		},
	)

	reader := library.NewReader(dbPath, logging.NewNop())
	metadata, err := reader.LoadMetadata(context.Background())
	if err != nil {
		t.Fatalf("LoadMetadata: %v", err)
	}
	if len(metadata) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(metadata))
	}
	meta, ok := metadata["kept.m4a"]
	if !ok {
		t.Fatalf("missing filename key, have %v", metadata)
	}
	if meta.Title != "Kept Episode" || meta.ShowTitle != "Deep Dive" || meta.Duration != 900 {
		t.Fatalf("unexpected metadata: %+v", meta)
	}
}

func TestLoadMetadataSwallowsFailures(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "broken.sqlite")
	testsupport.WriteFile(t, dbPath, "definitely not sqlite content, but long enough to get opened")

	reader := library.NewReader(dbPath, logging.NewNop())
	metadata, err := reader.LoadMetadata(context.Background())
	if err != nil {
		t.Fatalf("metadata failures must degrade to empty, got error: %v", err)
	}
	if len(metadata) != 0 {
		t.Fatalf("expected empty map, got %d entries", len(metadata))
	}
}

func TestDefaultDatabasePathIsStable(t *testing.T) {
	path := library.DefaultDatabasePath()
	if path == "" {
		t.Skip("no home directory in test environment")
	}
	if filepath.Base(path) != "MTLibrary.sqlite" {
		t.Fatalf("unexpected database filename: %s", path)
	}
}
