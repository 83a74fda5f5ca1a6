package songs

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Importer loads a JSON song corpus and writes it into the store. An
// in-memory index backs fast identifier lookups without hitting SQLite.
type Importer struct {
	conn *sql.DB

	mu      sync.RWMutex
	byTitle map[string][]Song // lowercased title
	byHymn  map[string][]Song // hymnal number
	ordered []Song
}

// NewImporter builds the in-memory index over the provided corpus.
func NewImporter(conn *sql.DB, corpus []Song) *Importer {
	im := &Importer{
		conn:    conn,
		byTitle: make(map[string][]Song),
		byHymn:  make(map[string][]Song),
		ordered: corpus,
	}
	for _, s := range corpus {
		key := strings.ToLower(strings.TrimSpace(s.Title))
		im.byTitle[key] = append(im.byTitle[key], s)
		if s.HymnalNumber != "" {
			im.byHymn[s.HymnalNumber] = append(im.byHymn[s.HymnalNumber], s)
		}
	}
	return im
}

// LoadCorpus reads a JSON file holding either a bare array of songs or a
// wrapper object {"songs": [...]}.
func LoadCorpus(path string) ([]Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var wrapper struct {
		Songs []Song `json:"songs"`
	}
	dec := json.NewDecoder(f)
	if err := dec.Decode(&wrapper); err == nil && len(wrapper.Songs) > 0 {
		return wrapper.Songs, nil
	}

	if _, err := f.Seek(0, 0); err != nil {
		return nil, err
	}
	var list []Song
	dec = json.NewDecoder(f)
	if err := dec.Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to parse song corpus as object or array: %w", err)
	}
	return list, nil
}

// Find resolves a title or hymnal number against the in-memory index.
func (im *Importer) Find(identifier string) (Song, bool) {
	ident := strings.TrimSpace(identifier)
	im.mu.RLock()
	defer im.mu.RUnlock()

	if m := hymnalRefRe.FindStringSubmatch(ident); m != nil {
		if hits := im.byHymn[m[1]]; len(hits) > 0 {
			return hits[0], true
		}
	}
	if hits := im.byTitle[strings.ToLower(ident)]; len(hits) > 0 {
		return hits[0], true
	}
	return Song{}, false
}

// Import writes the whole corpus in one transaction so a partial import
// never leaves the store half-populated.
func (im *Importer) Import() (int, error) {
	tx, err := im.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin import tx: %w", err)
	}
	defer tx.Rollback()

	count := 0
	for _, s := range im.ordered {
		if strings.TrimSpace(s.Title) == "" {
			continue
		}
		if _, err := CreateOrGetSong(tx, s); err != nil {
			return 0, fmt.Errorf("import %q: %w", s.Title, err)
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit import tx: %w", err)
	}
	return count, nil
}
