package textutil

import (
	"strings"
	"testing"
)

func TestSanitizeFileNameReplacesUnsafeCharacters(t *testing.T) {
	got := SanitizeFileName(`Weird / Title:Name?*`)
	if strings.ContainsAny(got, `/\:?*"<>|`) {
		t.Fatalf("sanitized name still contains unsafe characters: %q", got)
	}
	if got != "Weird - Title-Name--" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}
}

func TestSanitizeFileNameCollapsesWhitespace(t *testing.T) {
	got := SanitizeFileName("  A   Very\t Spaced\nTitle  ")
	if got != "A Very Spaced Title" {
		t.Fatalf("expected collapsed whitespace, got %q", got)
	}
}

func TestSanitizeFileNameEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		if got := SanitizeFileName(input); got != "" {
			t.Fatalf("SanitizeFileName(%q) = %q, want empty", input, got)
		}
	}
}

func TestSanitizeFileNamePreservesSafeNames(t *testing.T) {
	if got := SanitizeFileName("Episode 42 - The Answer"); got != "Episode 42 - The Answer" {
		t.Fatalf("safe name changed: %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("short string changed: %q", got)
	}
	got := Truncate("a very long episode title indeed", 10)
	if len([]rune(got)) != 10 {
		t.Fatalf("truncated length = %d, want 10", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}
