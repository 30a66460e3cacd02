package library

import (
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// episodeQuery joins downloaded episode rows to their podcast. Only rows that
// ever had a local asset are of interest; everything else is streaming-only
// catalog data.
const episodeQuery = `
SELECT
  e.ZTITLE AS episodeTitle,
  p.ZTITLE AS podcastTitle,
  COALESCE(e.ZAUTHOR, p.ZAUTHOR) AS author,
  e.ZDURATION AS duration,
  e.ZASSETURL AS assetURL,
  e.ZDOWNLOADDATE AS downloadDate,
  e.ZPUBDATE AS pubDate,
  e.ZARTWORKTEMPLATEURL AS episodeArtworkTemplateURL,
  p.ZIMAGEURL AS podcastImageURL,
  p.ZARTWORKTEMPLATEURL AS podcastArtworkTemplateURL
FROM ZMTEPISODE e
LEFT JOIN ZMTPODCAST p
  ON p.Z_PK = e.ZPODCAST
WHERE e.ZASSETURL IS NOT NULL`

// episodeRow is the typed form of one query result row. Decoding happens in
// one place so the untyped database boundary stays narrow.
type episodeRow struct {
	episodeTitle    sql.NullString
	podcastTitle    sql.NullString
	author          sql.NullString
	duration        sql.NullFloat64
	assetURL        sql.NullString
	downloadDate    sql.NullFloat64
	pubDate         sql.NullFloat64
	episodeArtwork  sql.NullString
	podcastImageURL sql.NullString
	podcastArtwork  sql.NullString
}

func scanEpisodeRow(rows *sql.Rows) (episodeRow, error) {
	var row episodeRow
	err := rows.Scan(
		&row.episodeTitle,
		&row.podcastTitle,
		&row.author,
		&row.duration,
		&row.assetURL,
		&row.downloadDate,
		&row.pubDate,
		&row.episodeArtwork,
		&row.podcastImageURL,
		&row.podcastArtwork,
	)
	if err != nil {
		return episodeRow{}, fmt.Errorf("scan episode row: %w", err)
	}
	return row, nil
}

// assetPath turns the stored asset reference into a filesystem path. Asset
// references are file:// URLs in practice, but bare absolute paths are
// tolerated. Returns "" when the reference is unusable.
func (r episodeRow) assetPath() string {
	raw := strings.TrimSpace(r.assetURL.String)
	if raw == "" {
		return ""
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme != "file" || parsed.Path == "" {
		return ""
	}
	return filepath.Clean(parsed.Path)
}

func (r episodeRow) artworkURL() string {
	return resolveArtwork(
		r.episodeArtwork.String,
		r.podcastImageURL.String,
		r.podcastArtwork.String,
	)
}
