package testsupport

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// librarySchema mirrors the slice of the Podcasts database the reader touches.
// Column names are the external contract; everything else is omitted.
const librarySchema = `
CREATE TABLE ZMTPODCAST (
  Z_PK INTEGER PRIMARY KEY,
  ZTITLE TEXT,
  ZAUTHOR TEXT,
  ZIMAGEURL TEXT,
  ZARTWORKTEMPLATEURL TEXT
);
CREATE TABLE ZMTEPISODE (
  Z_PK INTEGER PRIMARY KEY AUTOINCREMENT,
  ZPODCAST INTEGER,
  ZTITLE TEXT,
  ZAUTHOR TEXT,
  ZDURATION REAL,
  ZASSETURL TEXT,
  ZDOWNLOADDATE REAL,
  ZPUBDATE REAL,
  ZARTWORKTEMPLATEURL TEXT
);`

// LibraryShow is one ZMTPODCAST fixture row. Nil values become NULL.
type LibraryShow struct {
	ID              int64
	Title           any
	Author          any
	ImageURL        any
	ArtworkTemplate any
}

// LibraryEpisode is one ZMTEPISODE fixture row. Nil values become NULL.
type LibraryEpisode struct {
	ShowID          any
	Title           any
	Author          any
	Duration        any
	AssetURL        any
	DownloadDate    any
	PubDate         any
	ArtworkTemplate any
}

// BuildLibraryDB writes a miniature Podcasts library database at path.
func BuildLibraryDB(t testing.TB, path string, shows []LibraryShow, episodes []LibraryEpisode) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open fixture db: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(librarySchema); err != nil {
		t.Fatalf("create fixture schema: %v", err)
	}

	for _, show := range shows {
		_, err := db.Exec(
			`INSERT INTO ZMTPODCAST (Z_PK, ZTITLE, ZAUTHOR, ZIMAGEURL, ZARTWORKTEMPLATEURL) VALUES (?, ?, ?, ?, ?)`,
			show.ID, show.Title, show.Author, show.ImageURL, show.ArtworkTemplate,
		)
		if err != nil {
			t.Fatalf("insert fixture show: %v", err)
		}
	}
	for _, ep := range episodes {
		_, err := db.Exec(
			`INSERT INTO ZMTEPISODE (ZPODCAST, ZTITLE, ZAUTHOR, ZDURATION, ZASSETURL, ZDOWNLOADDATE, ZPUBDATE, ZARTWORKTEMPLATEURL)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			ep.ShowID, ep.Title, ep.Author, ep.Duration, ep.AssetURL, ep.DownloadDate, ep.PubDate, ep.ArtworkTemplate,
		)
		if err != nil {
			t.Fatalf("insert fixture episode: %v", err)
		}
	}
}
