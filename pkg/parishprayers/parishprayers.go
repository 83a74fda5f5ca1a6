// Package parishprayers resolves the parish cycle of prayers: a rotating
// assignment of ministries to Sundays, published as a Date/Ministry
// worksheet for one reference year and repeated indefinitely. Each week
// lists its ministries on consecutive rows; only the first row of a week
// carries the date label.
package parishprayers

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Week is one week of the cycle.
type Week struct {
	DateLabel  string
	Ministries []string
}

// ParseCycle converts raw CSV rows into the ordered cycle. Rows before the
// detected header are ignored; a new non-empty date cell starts a week and
// ministry cells accumulate until the next one.
func ParseCycle(rows [][]string) []Week {
	if len(rows) == 0 {
		return nil
	}
	headerIdx := 0
	for i, row := range rows {
		found := false
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), "date") {
				headerIdx = i
				found = true
				break
			}
		}
		if found {
			break
		}
	}

	var weeks []Week
	var current Week
	for _, row := range rows[headerIdx+1:] {
		if len(row) < 2 {
			continue
		}
		dateCell := strings.TrimSpace(row[0])
		ministryCell := strings.TrimSpace(row[1])

		if dateCell != "" {
			if len(current.Ministries) > 0 {
				weeks = append(weeks, current)
			}
			current = Week{DateLabel: dateCell}
		}
		if ministryCell != "" {
			current.Ministries = append(current.Ministries, ministryCell)
		}
	}
	if len(current.Ministries) > 0 {
		weeks = append(weeks, current)
	}
	return weeks
}

// fallbackAnchor is the cycle's known start when the sheet's first date
// label cannot be parsed.
var fallbackAnchor = time.Date(2022, time.August, 28, 0, 0, 0, 0, time.UTC)

// MinistriesForDate returns the ministries assigned to the week the target
// date falls in. Weeks marked "special" are excluded from the rotation; the
// remaining weeks repeat from the cycle's anchor date, so any Sunday in any
// year resolves.
func MinistriesForDate(cycle []Week, target time.Time) []string {
	if len(cycle) == 0 {
		return []string{"[Parish cycle data not available]"}
	}

	var regular [][]string
	for _, w := range cycle {
		if len(w.Ministries) == 1 && strings.Contains(strings.ToLower(w.Ministries[0]), "special") {
			continue
		}
		regular = append(regular, w.Ministries)
	}
	if len(regular) == 0 {
		return []string{"[No regular ministry weeks found]"}
	}

	anchor, err := dateparse.ParseAny(cycle[0].DateLabel)
	if err != nil {
		anchor = fallbackAnchor
	}

	days := int(target.Sub(anchor).Hours() / 24)
	weekOffset := days / 7
	pos := ((weekOffset % len(regular)) + len(regular)) % len(regular)
	return regular[pos]
}

// FormatMinistries joins the ministries for insertion into the Prayers of
// the People text: "Altar Guild, Belize Mission Team, and Bible Builders".
func FormatMinistries(ministries []string) string {
	switch len(ministries) {
	case 0:
		return ""
	case 1:
		return ministries[0]
	case 2:
		return ministries[0] + " and " + ministries[1]
	default:
		return strings.Join(ministries[:len(ministries)-1], ", ") + ", and " + ministries[len(ministries)-1]
	}
}
