// Package sheet parses the liturgical schedule worksheet's CSV export into
// typed per-service entries. The worksheet carries decorative title rows
// above the real header, so the header row is detected by looking for a
// "Date" cell, and columns are matched by name rather than position.
package sheet

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Entry is one row of the liturgical schedule: the per-Sunday record every
// downstream resolver reads. It is built once per run and never mutated.
type Entry struct {
	ServiceType string
	Date        time.Time // zero when the cell was blank or unparseable
	Title       string    // e.g. "Third Sunday in Lent"
	Proper      string
	Color       string
	Prayer      string // Eucharistic prayer letter: "A", "B", or "C"
	Preface     string
	Reading     string
	Psalm       string
	Gospel      string
	POPForm     string
	Blessing    string // special blessing designation
	Closing     string // closing prayer: "Almighty" or "Eternal God"
	Dismissal   string // "1" through "4"
	Notes       string

	// Alternate-campus citations, when the second site reads differently.
	AltReading string
	AltPsalm   string
	AltGospel  string
}

// ParseRows converts raw CSV rows into schedule entries. Rows before the
// detected header are ignored; short rows are padded.
func ParseRows(rows [][]string) ([]Entry, error) {
	headerIdx := -1
	for i, row := range rows {
		for _, cell := range row {
			if normalizeKey(cell) == "date" {
				headerIdx = i
				break
			}
		}
		if headerIdx >= 0 {
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("no header row with a Date column found")
	}

	cols := make(map[string]int)
	for j, name := range rows[headerIdx] {
		key := normalizeKey(name)
		if key == "" {
			continue
		}
		if _, exists := cols[key]; !exists {
			cols[key] = j
		}
	}

	var entries []Entry
	for _, row := range rows[headerIdx+1:] {
		get := func(names ...string) string {
			for _, name := range names {
				j, ok := cols[normalizeKey(name)]
				if !ok || j >= len(row) {
					continue
				}
				if v := strings.TrimSpace(row[j]); v != "" {
					return v
				}
			}
			return ""
		}

		e := Entry{
			ServiceType: get("service type"),
			Date:        parseDate(get("date")),
			Title:       get("sunday/commemoration title", "title"),
			Proper:      get("proper"),
			Color:       get("color"),
			Prayer:      get("eucharistic prayer"),
			Preface:     get("preface"),
			Reading:     get("reading"),
			Psalm:       get("psalm"),
			Gospel:      get("gospel"),
			POPForm:     get("pop"),
			Blessing:    get("special blessing"),
			Closing:     get("closing prayer"),
			Dismissal:   get("dismissal"),
			Notes:       get("notes"),
			AltReading:  get("hidden springs reading"),
			AltPsalm:    get("hidden springs psalm"),
			AltGospel:   get("hidden springs gospel"),
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ForDate finds the schedule entry for a target date, preferring the Sunday
// service row when the date has several. The error lists the sheet's date
// range so a wrong -date flag is easy to diagnose.
func ForDate(entries []Entry, target time.Time) (Entry, error) {
	y, m, d := target.Date()

	var fallback *Entry
	for i := range entries {
		e := &entries[i]
		if e.Date.IsZero() {
			continue
		}
		ey, em, ed := e.Date.Date()
		if ey != y || em != m || ed != d {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(e.ServiceType), "sunday") {
			return *e, nil
		}
		if fallback == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return *fallback, nil
	}

	var dates []string
	for _, e := range entries {
		if !e.Date.IsZero() {
			dates = append(dates, e.Date.Format("2006-01-02"))
		}
	}
	sort.Strings(dates)
	if len(dates) == 0 {
		return Entry{}, fmt.Errorf("date %s not found: schedule has no dated rows", target.Format("2006-01-02"))
	}
	return Entry{}, fmt.Errorf("date %s not found in the schedule (available %s through %s)",
		target.Format("2006-01-02"), dates[0], dates[len(dates)-1])
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(s, "\n", " ")))
}

// parseDate handles the sheet's mix of date formats ("1/4/2026",
// "2026-01-04"). Blank or unparseable cells yield the zero time.
func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
