package destination

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"podhaul/internal/episode"
	"podhaul/internal/fileutil"
	"podhaul/internal/logging"
)

// Scanner lists and deletes episodes on a destination directory.
type Scanner struct {
	logger   *slog.Logger
	collator *collate.Collator
}

// NewScanner constructs a scanner. Ordering uses the locale from the
// environment (LC_ALL, LC_COLLATE, LANG) with numeric collation, so
// "Episode 2" sorts before "Episode 10".
func NewScanner(logger *slog.Logger) *Scanner {
	return &Scanner{
		logger:   logging.NewComponentLogger(logger, "destination"),
		collator: collate.New(localeTag(), collate.Numeric),
	}
}

// Scan walks the destination tree and returns a record for every regular
// audio file, sorted ascending by show title then episode title. Hidden
// entries and bundle-style directories are skipped. A missing root returns an
// empty list: no device mounted is a normal state, not an error.
func (s *Scanner) Scan(ctx context.Context, root string) ([]episode.Episode, error) {
	if _, err := os.Stat(root); err != nil {
		s.logger.Debug("destination missing", logging.String("path", root))
		return nil, nil
	}

	var episodes []episode.Episode
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			// Unreadable subtree: report what we can see, like any other
			// best-effort directory listing.
			s.logger.Debug("skipping unreadable entry", logging.String("path", path), logging.Error(err))
			return nil
		}

		name := entry.Name()
		if entry.IsDir() {
			if path == root {
				return nil
			}
			if strings.HasPrefix(name, ".") || isBundle(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !fileutil.IsAudioFile(name) {
			return nil
		}

		info, infoErr := entry.Info()
		if infoErr != nil || !info.Mode().IsRegular() {
			return nil
		}

		episodes = append(episodes, buildRecord(path, info))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		if cmp := s.collator.CompareString(episodes[i].ShowTitle, episodes[j].ShowTitle); cmp != 0 {
			return cmp < 0
		}
		return s.collator.CompareString(episodes[i].Title, episodes[j].Title) < 0
	})

	s.logger.Debug("scanned destination", logging.String("path", root), logging.Int("count", len(episodes)))
	return episodes, nil
}

// Delete removes one episode file. Errors propagate; the caller decides how
// to surface them.
func (s *Scanner) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return err
	}
	s.logger.Info("deleted episode", logging.String("path", path))
	return nil
}

// buildRecord derives an episode record from file layout alone: the parent
// directory is the show, the filename is the title. Author, duration, and
// artwork are unknowable from layout and stay absent.
func buildRecord(path string, info fs.FileInfo) episode.Episode {
	name := info.Name()
	createdAt, ok := fileutil.CreationTime(info)
	if !ok {
		createdAt = info.ModTime()
	}
	return episode.Episode{
		Path:      path,
		Title:     strings.TrimSuffix(name, filepath.Ext(name)),
		ShowTitle: filepath.Base(filepath.Dir(path)),
		Size:      info.Size(),
		CreatedAt: createdAt,
	}
}

// bundleExtensions names directory extensions that mark macOS packages. These
// are opaque to the scan; any other dotted directory name ("S.Town",
// "Dr. Death") is an ordinary show directory.
var bundleExtensions = map[string]struct{}{
	".app":           {},
	".bundle":        {},
	".framework":     {},
	".photoslibrary": {},
	".fcpbundle":     {},
}

func isBundle(name string) bool {
	_, ok := bundleExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// localeTag derives a collation language from the usual POSIX locale
// variables, falling back to English.
func localeTag() language.Tag {
	for _, key := range []string{"LC_ALL", "LC_COLLATE", "LANG"} {
		value := os.Getenv(key)
		if value == "" || value == "C" || value == "POSIX" {
			continue
		}
		if idx := strings.IndexAny(value, ".@"); idx >= 0 {
			value = value[:idx]
		}
		if tag, err := language.Parse(value); err == nil {
			return tag
		}
	}
	return language.English
}
