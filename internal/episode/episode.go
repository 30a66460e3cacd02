// Package episode defines the canonical podcast episode record shared by the
// library reader, the destination scanner, and the transfer engine.
package episode

import (
	"path/filepath"
	"strings"
	"time"
)

// UnknownShowTitle is substituted when the source row carries no show title.
const UnknownShowTitle = "Unknown Podcast"

// Episode is an immutable snapshot of one downloadable audio item. Identity
// is the absolute file path, which is unique within a single source. Records
// are produced by a reader or scanner and never mutated; re-run the producing
// operation to refresh them.
type Episode struct {
	// Path is the absolute location of the audio file. At construction time
	// the file was a regular file with a recognized audio extension; this is
	// not re-validated later.
	Path string `json:"path"`

	Title     string `json:"title"`
	ShowTitle string `json:"show_title"`
	Author    string `json:"author,omitempty"`

	// Duration is the playing time in seconds; zero means unknown.
	Duration float64 `json:"duration,omitempty"`

	Size int64 `json:"size"`

	// CreatedAt is the best-available creation instant (download date, publish
	// date, or filesystem times). The zero time means unknown.
	CreatedAt time.Time `json:"created_at,omitzero"`

	// ArtworkURL is a local path or http(s) address for cover art, already
	// materialized from any template form. Empty when unavailable.
	ArtworkURL string `json:"artwork_url,omitempty"`
}

// Filename returns the last path component of the audio file.
func (e Episode) Filename() string {
	return filepath.Base(e.Path)
}

// BaseName returns the filename without its extension.
func (e Episode) BaseName() string {
	name := e.Filename()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// SortCreatedAt returns the creation time for ordering purposes. Unknown
// times sort as the earliest representable instant.
func (e Episode) SortCreatedAt() time.Time {
	return e.CreatedAt
}

// Metadata is a partial overlay of enriched episode fields keyed by bare
// filename. It backfills records built from bare file scans, which know
// nothing beyond path structure and filesystem attributes.
type Metadata struct {
	Title      string
	ShowTitle  string
	Author     string
	Duration   float64
	ArtworkURL string
}

// Apply enriches a scanned episode from the overlay. The library title
// replaces the filename-derived one when present; every other field only
// fills in where the episode has no value.
func (m Metadata) Apply(e Episode) Episode {
	if m.Title != "" {
		e.Title = m.Title
	}
	if e.ShowTitle == "" || e.ShowTitle == UnknownShowTitle {
		if m.ShowTitle != "" {
			e.ShowTitle = m.ShowTitle
		}
	}
	if e.Author == "" {
		e.Author = m.Author
	}
	if e.Duration == 0 {
		e.Duration = m.Duration
	}
	if e.ArtworkURL == "" {
		e.ArtworkURL = m.ArtworkURL
	}
	return e
}
