package library

import (
	"net/url"
	"strings"
)

// Artwork template placeholder substitutions. 300px JPEG matches what the
// Podcasts app requests for list thumbnails.
var artworkReplacer = strings.NewReplacer(
	"{w}", "300",
	"{h}", "300",
	"{f}", "jpg",
)

// materializeArtwork substitutes the width/height/format placeholders in an
// artwork template URL. It returns "" when the input is empty, when any
// placeholder survives substitution, or when the result is not a usable
// local path or http(s) address.
func materializeArtwork(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	resolved := artworkReplacer.Replace(raw)
	if strings.ContainsAny(resolved, "{}") {
		return ""
	}
	parsed, err := url.Parse(resolved)
	if err != nil {
		return ""
	}
	switch parsed.Scheme {
	case "http", "https", "file", "":
		return resolved
	default:
		return ""
	}
}

// resolveArtwork walks the candidate templates in priority order and returns
// the first that materializes.
func resolveArtwork(candidates ...string) string {
	for _, candidate := range candidates {
		if resolved := materializeArtwork(candidate); resolved != "" {
			return resolved
		}
	}
	return ""
}
