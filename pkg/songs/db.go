package songs

import (
	"database/sql"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const migrationsSQL = `
CREATE TABLE IF NOT EXISTS songs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    hymnal_number TEXT NOT NULL DEFAULT '',
    hymnal_name TEXT NOT NULL DEFAULT '',
    tune_name TEXT NOT NULL DEFAULT '',
    note TEXT NOT NULL DEFAULT '',
    service TEXT NOT NULL DEFAULT '',
    sections TEXT NOT NULL DEFAULT '[]',
    UNIQUE(title, service)
);

CREATE INDEX IF NOT EXISTS idx_songs_hymnal_number ON songs(hymnal_number);
`

// InitDB runs migrations on the given DB connection using the embedded SQL.
func InitDB(db *sql.DB) error {
	stmts := strings.Split(migrationsSQL, ";")
	for _, s := range stmts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
