package sheet

import (
	"strings"
	"testing"
	"time"
)

func scheduleRows() [][]string {
	return [][]string{
		{"St. Andrew's Liturgical Schedule", "", "", ""},
		{"", "", "", ""},
		{"Service Type", "Date", "Sunday/Commemoration Title", "Proper", "Color", "Eucharistic Prayer", "Preface", "Reading", "Psalm", "Gospel", "POP", "Special Blessing", "Closing Prayer", "Dismissal", "Notes"},
		{"Sunday", "3/8/2026", "Third Sunday in Lent", "-", "Violet", "A", "Lent (1)", "1 Corinthians 10:1-13", "Psalm 63:1-8 responsively", "Luke 13:1-9", "III", "Solemn Prayer - Lent 3 (BOS)", "Almighty", "1", ""},
		{"Feast", "3/8/2026", "Evening Lenten Series", "-", "Violet", "A", "", "", "", "", "", "", "", "", ""},
		{"Sunday", "4/5/2026", "Easter Day", "-", "White", "A", "Easter", "Acts 10:34-43", "Psalm 118:1-2,14-24", "John 20:1-18", "VI", "", "Eternal God", "2", "flowering of the cross"},
		{"Sunday", "", "", "", "", "", "", "", "", "", "", "", "", "", ""},
	}
}

func TestParseRowsHeaderDetection(t *testing.T) {
	entries, err := ParseRows(scheduleRows())
	if err != nil {
		t.Fatalf("ParseRows: %v", err)
	}
	// All rows after the header produce entries, dated or not.
	if len(entries) != 4 {
		t.Fatalf("entries = %d", len(entries))
	}

	e := entries[0]
	if e.Title != "Third Sunday in Lent" || e.Color != "Violet" || e.POPForm != "III" {
		t.Errorf("entry = %+v", e)
	}
	if e.Psalm != "Psalm 63:1-8 responsively" {
		t.Errorf("psalm = %q", e.Psalm)
	}
	if e.Date.Year() != 2026 || e.Date.Month() != time.March || e.Date.Day() != 8 {
		t.Errorf("date = %v", e.Date)
	}
	if !entries[3].Date.IsZero() {
		t.Errorf("blank date must stay zero: %v", entries[3].Date)
	}
}

func TestParseRowsNoHeader(t *testing.T) {
	_, err := ParseRows([][]string{{"a", "b"}, {"c", "d"}})
	if err == nil {
		t.Fatal("expected error for missing header row")
	}
}

func TestForDatePrefersSunday(t *testing.T) {
	entries, _ := ParseRows(scheduleRows())

	e, err := ForDate(entries, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ForDate: %v", err)
	}
	if e.Title != "Third Sunday in Lent" {
		t.Errorf("expected the Sunday row, got %q", e.Title)
	}
}

func TestForDateMissing(t *testing.T) {
	entries, _ := ParseRows(scheduleRows())

	_, err := ForDate(entries, time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Fatal("expected error for a date outside the sheet")
	}
	if !strings.Contains(err.Error(), "2026-03-08") || !strings.Contains(err.Error(), "2026-04-05") {
		t.Errorf("error should list the available range: %v", err)
	}
}

func TestReadCSV(t *testing.T) {
	rows, err := readCSV(strings.NewReader("a,b,c\nd,e\n"))
	if err != nil {
		t.Fatalf("readCSV: %v", err)
	}
	if len(rows) != 2 || len(rows[0]) != 3 || len(rows[1]) != 2 {
		t.Errorf("rows = %v", rows)
	}
}
