// Package scripture fetches scripture readings from the configured text
// provider and splits their inline-numbered prose into verse segments for
// rendering.
package scripture

import "regexp"

// Segment is one piece of a passage: its verse number (empty for leading
// unnumbered text) and the text that follows it.
type Segment struct {
	Number string
	Text   string
}

// verseMarkerRe matches the provider's inline verse convention: a 1-3 digit
// number at start-of-string or after whitespace, one space, then an
// uppercase letter, opening quotation mark, or opening bracket/parenthesis.
// The boundary whitespace stays with the preceding segment; the single
// disambiguating space after the digits belongs to no segment.
var verseMarkerRe = regexp.MustCompile(`(?:^|\s)(\d{1,3}) [A-Z` + "‘“" + `'"(\[]`)

// SplitVerses splits a passage into (verse number, text) segments.
// Concatenating the segment texts and reinserting one space at each marker
// reproduces the passage. The heuristic is deliberately tied to the
// provider's formatting: ordinary prose that happens to start with a number
// and a capitalized word will also split, and that behavior is kept as-is.
func SplitVerses(text string) []Segment {
	var segments []Segment
	lastEnd := 0

	for _, m := range verseMarkerRe.FindAllStringSubmatchIndex(text, -1) {
		digitStart, digitEnd := m[2], m[3]
		if digitStart < lastEnd {
			continue
		}

		if before := text[lastEnd:digitStart]; before != "" {
			if len(segments) > 0 {
				segments[len(segments)-1].Text += before
			} else {
				segments = append(segments, Segment{Text: before})
			}
		}

		segments = append(segments, Segment{Number: text[digitStart:digitEnd]})
		lastEnd = digitEnd + 1 // consume the disambiguating space
	}

	if lastEnd < len(text) {
		remaining := text[lastEnd:]
		if len(segments) > 0 {
			segments[len(segments)-1].Text += remaining
		} else {
			segments = append(segments, Segment{Text: remaining})
		}
	}

	if len(segments) == 0 {
		segments = append(segments, Segment{Text: text})
	}

	return segments
}
