package songs

import (
	"regexp"
	"strings"
)

// Identifier is the structured form of a raw planning-sheet song cell.
type Identifier struct {
	Raw          string
	Title        string
	HymnalNumber string // "400" for H refs, "S129" for service music refs
	HymnalName   string
	Verses       string // e.g. "V1,3-4"
	Setting      string // e.g. "Powell" for service music settings
}

var (
	verseNoteRe  = regexp.MustCompile(`(?i)\(V[\d,\-]+\)`)
	parentheseRe = regexp.MustCompile(`\(([^)]+)\)`)
	hymnNumRe    = regexp.MustCompile(`\b([HS])(\d+)\b`)
)

// ParseSongIdentifier splits a raw song title into its title, hymnal
// reference, verse indication, and parenthetical setting.
//
//	"Build My Life"                                  -> title only
//	"All Creatures of Our God and King H400 (V1,3-4)" -> hymnal 400, verses V1,3-4
//	"S129 (Powell)"                                  -> hymnal S129, setting Powell
func ParseSongIdentifier(raw string) Identifier {
	id := Identifier{Raw: raw}
	rest := raw

	if loc := verseNoteRe.FindStringIndex(rest); loc != nil {
		id.Verses = strings.Trim(rest[loc[0]:loc[1]], "()")
		rest = rest[:loc[0]] + rest[loc[1]:]
	}

	if m := parentheseRe.FindStringSubmatchIndex(rest); m != nil {
		id.Setting = strings.TrimSpace(rest[m[2]:m[3]])
		rest = rest[:m[0]] + rest[m[1]:]
	}

	if m := hymnNumRe.FindStringSubmatchIndex(rest); m != nil {
		prefix := rest[m[2]:m[3]]
		number := rest[m[4]:m[5]]
		if prefix == "H" {
			id.HymnalNumber = number
		} else {
			id.HymnalNumber = "S" + number
		}
		id.HymnalName = "Hymnal 1982"
		rest = rest[:m[0]] + rest[m[1]:]
	}

	id.Title = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(rest), "-"))
	return id
}
