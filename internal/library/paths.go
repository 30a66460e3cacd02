package library

import (
	"os"
	"path/filepath"
)

// appPodcastsContainer is the Apple Podcasts group container under the user's
// Library directory.
const appPodcastsContainer = "Library/Group Containers/243LU875E5.groups.com.apple.podcasts"

// DefaultDatabasePath returns the standard location of the Apple Podcasts
// library database for the current user. The file may not exist; callers
// treat absence as an empty library.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, appPodcastsContainer, "Documents", "MTLibrary.sqlite")
}
