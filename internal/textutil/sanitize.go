package textutil

import "strings"

// fileNameReplacer maps filesystem-unsafe characters to dashes. The set
// matches what FAT/exFAT removable media and SMB shares reject.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"?", "-",
	"*", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SanitizeFileName makes a string safe to use as a single path component.
// Unsafe characters become dashes, runs of whitespace collapse to a single
// space, and the result is trimmed. Returns "" for all-whitespace input so
// callers can apply their own fallback.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = fileNameReplacer.Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	return strings.TrimSpace(name)
}

// Truncate shortens a string to max runes, appending an ellipsis when it cut
// anything. Values of max below 4 return the input unchanged.
func Truncate(value string, max int) string {
	if max < 4 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	return string(runes[:max-1]) + "…"
}
