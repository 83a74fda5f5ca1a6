package songs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// CreateOrGetSong returns the existing song id or inserts the song and
// returns its new id. Metadata from a later import fills blanks but never
// clobbers non-empty columns.
func CreateOrGetSong(db DBExecutor, s Song) (int64, error) {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		return 0, fmt.Errorf("song title must be non-empty")
	}

	sectionsJSON, err := json.Marshal(s.Sections)
	if err != nil {
		return 0, fmt.Errorf("encode sections: %w", err)
	}

	var id int64
	query := `INSERT INTO songs (title, hymnal_number, hymnal_name, tune_name, note, service, sections)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(title, service)
			  DO UPDATE SET
			    hymnal_number = COALESCE(NULLIF(excluded.hymnal_number, ''), songs.hymnal_number),
				hymnal_name = COALESCE(NULLIF(excluded.hymnal_name, ''), songs.hymnal_name),
				tune_name = COALESCE(NULLIF(excluded.tune_name, ''), songs.tune_name),
				note = COALESCE(NULLIF(excluded.note, ''), songs.note),
				sections = CASE WHEN excluded.sections != '[]' THEN excluded.sections ELSE songs.sections END
			  RETURNING id`

	err = db.QueryRow(query, title, s.HymnalNumber, s.HymnalName, s.TuneName, s.Note, s.Service, string(sectionsJSON)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert song: %w", err)
	}
	return id, nil
}

var hymnalRefRe = regexp.MustCompile(`^#(\d+)\s*`)

// LookupSong resolves a planning-sheet identifier to a stored song. The
// identifier may be a hymnal reference ("#93" or "#93 Angels From the
// Realms of Glory"), an exact title, or a title prefix. The preferred
// service's corpus is searched first, then the rest. A miss returns
// (nil, nil): an unmatched identifier is a lookup miss, not a failure.
func LookupSong(db DBExecutor, identifier, service string) (*Song, error) {
	ident := strings.TrimSpace(identifier)
	if ident == "" {
		return nil, nil
	}

	if m := hymnalRefRe.FindStringSubmatch(ident); m != nil {
		s, err := findOne(db,
			`SELECT id, title, hymnal_number, hymnal_name, tune_name, note, service, sections
			 FROM songs WHERE hymnal_number = ?
			 ORDER BY service = ? DESC, id LIMIT 1`, m[1], service)
		if err != nil || s != nil {
			return s, err
		}
	}

	// Title matching ignores any leading hymnal ref.
	title := hymnalRefRe.ReplaceAllString(ident, "")
	for _, pattern := range []string{title, title + "%", "%" + title + "%"} {
		s, err := findOne(db,
			`SELECT id, title, hymnal_number, hymnal_name, tune_name, note, service, sections
			 FROM songs WHERE title LIKE ?
			 ORDER BY service = ? DESC, length(title), id LIMIT 1`, pattern, service)
		if err != nil || s != nil {
			return s, err
		}
	}
	return nil, nil
}

func findOne(db DBExecutor, query string, args ...interface{}) (*Song, error) {
	var s Song
	var sectionsJSON string
	err := db.QueryRow(query, args...).Scan(
		&s.ID, &s.Title, &s.HymnalNumber, &s.HymnalName, &s.TuneName, &s.Note, &s.Service, &sectionsJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query song: %w", err)
	}
	if err := json.Unmarshal([]byte(sectionsJSON), &s.Sections); err != nil {
		return nil, fmt.Errorf("decode sections for song %d: %w", s.ID, err)
	}
	return &s, nil
}
