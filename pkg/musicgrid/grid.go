// Package musicgrid extracts per-service music plans from the music
// planning worksheet's CSV export. The worksheet lays out one panel per
// week in a 3x3 grid of sub-tables; each panel is anchored by a
// "Service Planner:" marker cell and carries four columns: service part,
// song title, key, and lead musician.
package musicgrid

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

const markerPrefix = "Service Planner:"

// colOffsets are the starting columns of the three horizontal panels.
// Panels are separated by one empty spacer column.
var colOffsets = [...]int{0, 5, 10}

// maxPanelRows bounds how far below a marker the data scan may run.
const maxPanelRows = 20

// Slot is one assigned music slot within a service.
type Slot struct {
	ServicePart string // e.g. "Processional", "Communion 1"
	SongTitle   string // raw cell text, may carry hymnal refs and verse info
	Key         string
	Lead        string
}

// Plan is the full music plan for one service date.
type Plan struct {
	Date  time.Time
	Label string // liturgical label from the panel header, e.g. "Lent 2A"
	Slots []Slot
}

// Slot finds a slot by service part name. Exact (case-insensitive) matches
// win; otherwise the first slot whose part contains the name is returned.
func (p *Plan) Slot(part string) (Slot, bool) {
	want := strings.ToLower(strings.TrimSpace(part))
	for _, s := range p.Slots {
		if strings.ToLower(strings.TrimSpace(s.ServicePart)) == want {
			return s, true
		}
	}
	for _, s := range p.Slots {
		if strings.Contains(strings.ToLower(s.ServicePart), want) {
			return s, true
		}
	}
	return Slot{}, false
}

// SlotsWithPrefix returns every slot whose part name starts with the given
// prefix, e.g. "Communion" for Communion 1/2/3.
func (p *Plan) SlotsWithPrefix(prefix string) []Slot {
	want := strings.ToLower(strings.TrimSpace(prefix))
	var out []Slot
	for _, s := range p.Slots {
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s.ServicePart)), want) {
			out = append(out, s)
		}
	}
	return out
}

// ExtractPlans scans raw CSV rows for panel markers and parses every panel
// with a usable date. Panels whose date cell is blank or unparseable are
// skipped rather than failing the whole grid.
func ExtractPlans(rows [][]string) []Plan {
	var plans []Plan
	for rowIdx, row := range rows {
		for _, off := range colOffsets {
			if off >= len(row) {
				continue
			}
			if !strings.HasPrefix(strings.TrimSpace(row[off]), markerPrefix) {
				continue
			}
			if p, ok := parsePanel(rows, rowIdx, off); ok {
				plans = append(plans, p)
			}
		}
	}
	return plans
}

// PlanForDate extracts all panels and returns the one matching the target
// date, if any.
func PlanForDate(rows [][]string, target time.Time) (Plan, bool) {
	y, m, d := target.Date()
	for _, p := range ExtractPlans(rows) {
		py, pm, pd := p.Date.Date()
		if py == y && pm == m && pd == d {
			return p, true
		}
	}
	return Plan{}, false
}

// labelRe pulls the liturgical label out of the song column header,
// e.g. "Song (9 am) - Lent 1A" yields "Lent 1A".
var labelRe = regexp.MustCompile(`-\s*(.+)`)

// parsePanel reads one panel anchored at (headerRow, off).
//
// Layout:
//
//	headerRow:   "Service Planner: This Week" | "" | "Date:" | "2026-02-15"
//	headerRow+1: "Service Part" | "Song (9 am) - Lent 1A" | "Key" | "Lead"
//	headerRow+2: "Processional:" | "Build My Life" | "G" | "Steph"
func parsePanel(rows [][]string, headerRow, off int) (Plan, bool) {
	header := rows[headerRow]
	dateCol := off + 3
	if dateCol >= len(header) {
		return Plan{}, false
	}
	panelDate, ok := parseDate(header[dateCol])
	if !ok {
		return Plan{}, false
	}

	p := Plan{Date: panelDate}

	if headerRow+1 < len(rows) {
		sub := rows[headerRow+1]
		if off+1 < len(sub) {
			if m := labelRe.FindStringSubmatch(strings.TrimSpace(sub[off+1])); m != nil {
				p.Label = strings.TrimSpace(m[1])
			}
		}
	}

	end := headerRow + maxPanelRows
	if end > len(rows) {
		end = len(rows)
	}
	for i := headerRow + 2; i < end; i++ {
		row := rows[i]
		if off >= len(row) {
			break
		}
		part := strings.TrimSpace(cell(row, off))
		if part == "" {
			break
		}
		if strings.HasPrefix(strings.ToLower(part), "service part") {
			continue
		}
		song := strings.TrimSpace(cell(row, off+1))
		if song == "" {
			continue
		}
		p.Slots = append(p.Slots, Slot{
			ServicePart: strings.TrimSpace(strings.TrimRight(part, ":")),
			SongTitle:   song,
			Key:         strings.TrimSpace(cell(row, off+2)),
			Lead:        strings.TrimSpace(cell(row, off+3)),
		})
	}
	return p, true
}

func cell(row []string, j int) string {
	if j < len(row) {
		return row[j]
	}
	return ""
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
