package library

import (
	"context"
	"path/filepath"
	"strings"

	"podhaul/internal/episode"
	"podhaul/internal/fileutil"
	"podhaul/internal/logging"
)

// LoadMetadata returns enriched metadata keyed by bare filename for every
// asset-bearing episode row. This is the best-effort companion to
// LoadEpisodes: records built from a bare destination scan use it to backfill
// titles, authors, and artwork. Unlike LoadEpisodes, nothing here is fatal:
// a missing database, a failed query, or a broken row all degrade to an
// empty (or smaller) map with a nil error.
func (r *Reader) LoadMetadata(ctx context.Context) (map[string]episode.Metadata, error) {
	metadata := map[string]episode.Metadata{}

	if !fileutil.IsRegularFile(r.dbPath) {
		return metadata, nil
	}

	rows, cleanup, err := r.queryEpisodes(ctx)
	if err != nil {
		r.logger.Debug("metadata query failed", logging.Error(err))
		return metadata, nil
	}
	defer cleanup()

	for rows.Next() {
		row, err := scanEpisodeRow(rows)
		if err != nil {
			r.logger.Debug("metadata row decode failed", logging.Error(err))
			return map[string]episode.Metadata{}, nil
		}
		assetPath := row.assetPath()
		if assetPath == "" {
			continue
		}
		key := filepath.Base(assetPath)
		metadata[key] = episode.Metadata{
			Title:      strings.TrimSpace(row.episodeTitle.String),
			ShowTitle:  strings.TrimSpace(row.podcastTitle.String),
			Author:     strings.TrimSpace(row.author.String),
			Duration:   row.duration.Float64,
			ArtworkURL: row.artworkURL(),
		}
	}
	if err := rows.Err(); err != nil {
		r.logger.Debug("metadata iteration failed", logging.Error(err))
		return map[string]episode.Metadata{}, nil
	}

	r.logger.Debug("loaded metadata entries", logging.Int("count", len(metadata)))
	return metadata, nil
}
