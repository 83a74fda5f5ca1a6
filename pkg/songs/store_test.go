package songs

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// Ensure single connection to avoid separate in-memory DBs per connection.
	db.SetMaxOpenConns(1)
	if err := InitDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestInitDBCreatesSchema(t *testing.T) {
	db := setupTestDB(t)

	var name string
	if err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='songs'").Scan(&name); err != nil {
		t.Fatalf("songs table missing: %v", err)
	}
}

func TestCreateOrGetSongIdempotent(t *testing.T) {
	db := setupTestDB(t)

	s := Song{Title: "Build My Life", Service: "9am",
		Sections: []Section{{Type: "verse", Lines: []string{"Worthy of every song we could ever sing"}}}}
	id1, err := CreateOrGetSong(db, s)
	if err != nil {
		t.Fatalf("create song: %v", err)
	}
	id2, err := CreateOrGetSong(db, s)
	if err != nil {
		t.Fatalf("get song: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id, got %d and %d", id1, id2)
	}
}

func TestCreateOrGetSongFillsBlanks(t *testing.T) {
	db := setupTestDB(t)

	if _, err := CreateOrGetSong(db, Song{Title: "Doxology", Service: "9am"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	id, err := CreateOrGetSong(db, Song{Title: "Doxology", Service: "9am", TuneName: "Old 100th"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	var tune string
	if err := db.QueryRow("SELECT tune_name FROM songs WHERE id = ?", id).Scan(&tune); err != nil {
		t.Fatalf("query: %v", err)
	}
	if tune != "Old 100th" {
		t.Fatalf("tune_name = %q", tune)
	}
}

func TestCreateOrGetSongEmptyTitle(t *testing.T) {
	db := setupTestDB(t)
	if _, err := CreateOrGetSong(db, Song{Title: "   "}); err == nil {
		t.Fatal("expected error for empty title")
	}
}

func seedLookupSongs(t *testing.T, db *sql.DB) {
	t.Helper()
	for _, s := range []Song{
		{Title: "Angels From the Realms of Glory", HymnalNumber: "93", HymnalName: "Hymnal 1982", Service: "9am",
			Sections: []Section{{Type: "verse", Lines: []string{"Angels, from the realms of glory,"}}}},
		{Title: "Everlasting God", Service: "9am",
			Sections: []Section{{Type: "verse", Lines: []string{"Strength will rise as we wait upon the Lord"}}}},
		{Title: "Great Is Thy Faithfulness", Service: "11am",
			Sections: []Section{{Type: "verse", Lines: []string{"Great is thy faithfulness, O God my Father,"}}}},
	} {
		if _, err := CreateOrGetSong(db, s); err != nil {
			t.Fatalf("seed %q: %v", s.Title, err)
		}
	}
}

func TestLookupSongByHymnalNumber(t *testing.T) {
	db := setupTestDB(t)
	seedLookupSongs(t, db)

	s, err := LookupSong(db, "#93 Angels From the Realms of Glory", "9am")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if s == nil || s.HymnalNumber != "93" {
		t.Fatalf("song = %+v", s)
	}
	if len(s.Sections) != 1 || s.Sections[0].Type != "verse" {
		t.Fatalf("sections = %+v", s.Sections)
	}

	// Bare number works too.
	s, err = LookupSong(db, "#93", "9am")
	if err != nil || s == nil || s.Title != "Angels From the Realms of Glory" {
		t.Fatalf("bare number lookup = %+v, %v", s, err)
	}
}

func TestLookupSongByTitle(t *testing.T) {
	db := setupTestDB(t)
	seedLookupSongs(t, db)

	s, err := LookupSong(db, "everlasting god", "9am")
	if err != nil || s == nil || s.Title != "Everlasting God" {
		t.Fatalf("exact title lookup = %+v, %v", s, err)
	}

	s, err = LookupSong(db, "Everlasting", "9am")
	if err != nil || s == nil || s.Title != "Everlasting God" {
		t.Fatalf("prefix lookup = %+v, %v", s, err)
	}
}

func TestLookupSongFallsBackToOtherService(t *testing.T) {
	db := setupTestDB(t)
	seedLookupSongs(t, db)

	s, err := LookupSong(db, "Great Is Thy Faithfulness", "9am")
	if err != nil || s == nil || s.Service != "11am" {
		t.Fatalf("cross-service lookup = %+v, %v", s, err)
	}
}

func TestLookupSongMiss(t *testing.T) {
	db := setupTestDB(t)
	seedLookupSongs(t, db)

	s, err := LookupSong(db, "No Such Song", "9am")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if s != nil {
		t.Fatalf("expected nil for unknown song, got %+v", s)
	}
}
