package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"podhaul/internal/episode"
)

// formatSize renders a byte count for table display.
func formatSize(size int64) string {
	if size <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(size))
}

// formatDuration renders seconds as h:mm:ss or m:ss.
func formatDuration(seconds float64) string {
	if seconds <= 0 {
		return "-"
	}
	d := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// formatCreatedAt renders a record timestamp, or "-" when unknown.
func formatCreatedAt(ep episode.Episode) string {
	if ep.CreatedAt.IsZero() {
		return "-"
	}
	return ep.CreatedAt.Local().Format("2006-01-02 15:04")
}
