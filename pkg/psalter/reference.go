// Package psalter parses psalm citation strings and renders the requested
// verses from the embedded psalter in their responsive half-verse form.
package psalter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VerseSpec selects one verse, optionally narrowed to part of it.
// Half is "", "a", "b", or "c".
type VerseSpec struct {
	Number int
	Half   string
}

// Reference is a parsed psalm citation. A nil Specs list means the entire
// psalm; a non-nil empty list means the verse part selected nothing (a
// descending range expands to no verses).
type Reference struct {
	Psalm int
	Specs []VerseSpec
}

// ParseError reports a citation string the parser could not understand.
type ParseError struct {
	Ref    string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse psalm reference %q: %s", e.Ref, e.Reason)
}

var (
	// Trailing rubric clauses like " responsively" or " (read in unison)"
	// are presentation notes, not part of the citation.
	rubricRe = regexp.MustCompile(`(?i)\s*\(?(?:responsively|in unison|read .*|antiphonally)\)?.*$`)

	referenceRe = regexp.MustCompile(`^Psalm\s+(\d+)(?::(.+))?$`)
	rangeRe     = regexp.MustCompile(`^(\d+)([a-c])?-(\d+)([a-c])?$`)
	singleRe    = regexp.MustCompile(`^(\d+)([a-c])?$`)
)

// ParseReference parses a citation like "Psalm 116:1,10-17" or
// "Psalm 63:1-8 responsively". The rubric clause is stripped before
// parsing. Ranges are expanded verse by verse; only the first element of a
// range keeps the start suffix and only the last keeps the end suffix.
func ParseReference(reference string) (Reference, error) {
	cleaned := strings.TrimSpace(rubricRe.ReplaceAllString(reference, ""))

	m := referenceRe.FindStringSubmatch(cleaned)
	if m == nil {
		return Reference{}, &ParseError{Ref: reference, Reason: "expected \"Psalm <number>[:<verses>]\""}
	}

	num, err := strconv.Atoi(m[1])
	if err != nil || num < 1 || num > 150 {
		return Reference{}, &ParseError{Ref: reference, Reason: "psalm number out of range 1-150"}
	}

	ref := Reference{Psalm: num}
	if m[2] == "" {
		return ref, nil // entire psalm
	}
	ref.Specs = []VerseSpec{}

	for _, segment := range strings.Split(m[2], ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}

		if rm := rangeRe.FindStringSubmatch(segment); rm != nil {
			start, _ := strconv.Atoi(rm[1])
			end, _ := strconv.Atoi(rm[3])
			// A descending range expands to nothing rather than erroring.
			for v := start; v <= end; v++ {
				spec := VerseSpec{Number: v}
				if v == start && rm[2] != "" {
					spec.Half = rm[2]
				} else if v == end && rm[4] != "" {
					spec.Half = rm[4]
				}
				ref.Specs = append(ref.Specs, spec)
			}
			continue
		}

		if sm := singleRe.FindStringSubmatch(segment); sm != nil {
			v, _ := strconv.Atoi(sm[1])
			ref.Specs = append(ref.Specs, VerseSpec{Number: v, Half: sm[2]})
			continue
		}

		return Reference{}, &ParseError{Ref: reference, Reason: "bad verse segment " + strconv.Quote(segment)}
	}

	return ref, nil
}
