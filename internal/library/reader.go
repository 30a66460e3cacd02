package library

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sort"
	"strings"

	_ "modernc.org/sqlite"

	"podhaul/internal/episode"
	"podhaul/internal/fileutil"
	"podhaul/internal/logging"
)

// Reader loads episode records from the Podcasts library database. Each call
// opens a fresh read-only connection and closes it before returning; no
// handle is cached between calls.
type Reader struct {
	dbPath string
	logger *slog.Logger
}

// NewReader constructs a reader for the given database path. An empty path
// selects the platform default location.
func NewReader(dbPath string, logger *slog.Logger) *Reader {
	if strings.TrimSpace(dbPath) == "" {
		dbPath = DefaultDatabasePath()
	}
	return &Reader{
		dbPath: dbPath,
		logger: logging.NewComponentLogger(logger, "library"),
	}
}

// DatabasePath returns the resolved database location this reader uses.
func (r *Reader) DatabasePath() string {
	return r.dbPath
}

// LoadEpisodes returns a record for every episode whose asset still resolves
// to a regular audio file on disk, ordered newest first. A missing database
// file yields an empty list: the Podcasts app simply is not installed or has
// never downloaded anything, which is a normal state. Query failures are
// propagated, since loading the library is the caller's explicit action.
func (r *Reader) LoadEpisodes(ctx context.Context) ([]episode.Episode, error) {
	if !fileutil.IsRegularFile(r.dbPath) {
		r.logger.Debug("library database missing", logging.String("path", r.dbPath))
		return nil, nil
	}

	rows, cleanup, err := r.queryEpisodes(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	var episodes []episode.Episode
	for rows.Next() {
		row, err := scanEpisodeRow(rows)
		if err != nil {
			return nil, err
		}
		record, ok := r.buildRecord(row)
		if !ok {
			continue
		}
		episodes = append(episodes, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episode rows: %w", err)
	}

	// Newest first; unknown creation times sort last.
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].SortCreatedAt().After(episodes[j].SortCreatedAt())
	})

	r.logger.Debug("loaded episodes", logging.Int("count", len(episodes)))
	return episodes, nil
}

// buildRecord validates one row against the filesystem and assembles the
// episode record. Returns false when the row should be skipped.
func (r *Reader) buildRecord(row episodeRow) (episode.Episode, bool) {
	path := row.assetPath()
	if path == "" {
		return episode.Episode{}, false
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || !fileutil.IsAudioFile(path) {
		return episode.Episode{}, false
	}

	createdAt := timeFromReference(row.downloadDate.Float64, row.downloadDate.Valid)
	if createdAt.IsZero() {
		createdAt = timeFromReference(row.pubDate.Float64, row.pubDate.Valid)
	}
	if createdAt.IsZero() {
		if birth, ok := fileutil.CreationTime(info); ok {
			createdAt = birth
		} else {
			createdAt = info.ModTime()
		}
	}

	record := episode.Episode{
		Path:       path,
		Title:      strings.TrimSpace(row.episodeTitle.String),
		ShowTitle:  strings.TrimSpace(row.podcastTitle.String),
		Author:     strings.TrimSpace(row.author.String),
		Duration:   row.duration.Float64,
		Size:       info.Size(),
		CreatedAt:  createdAt,
		ArtworkURL: row.artworkURL(),
	}
	if record.Title == "" {
		record.Title = record.BaseName()
	}
	if record.ShowTitle == "" {
		record.ShowTitle = episode.UnknownShowTitle
	}
	return record, true
}

// queryEpisodes opens the database read-only and starts the episode query.
// The returned cleanup closes both the row set and the connection.
func (r *Reader) queryEpisodes(ctx context.Context) (*sql.Rows, func(), error) {
	dsn := (&url.URL{Scheme: "file", Path: r.dbPath, RawQuery: "mode=ro"}).String()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open library database: %w", err)
	}

	rows, err := db.QueryContext(ctx, episodeQuery)
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("query episodes: %w", err)
	}

	cleanup := func() {
		_ = rows.Close()
		_ = db.Close()
	}
	return rows, cleanup, nil
}
