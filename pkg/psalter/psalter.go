package psalter

import (
	"sort"
	"strings"

	"github.com/japaniel/bulletiner/pkg/corpus"
)

// Verse is one rendered psalm verse: the leader's first half and the
// people's second-half lines.
type Verse struct {
	Number     int
	FirstHalf  string
	SecondHalf []string
}

// Selection is an ordered set of verses ready for responsive rendering.
type Selection struct {
	PsalmNumber int
	Latin       string
	Verses      []Verse
}

// Lines renders the selection for printing: each verse becomes one string
// with the first half on its own line and each second-half line
// tab-indented below it.
func (s Selection) Lines() []string {
	var lines []string
	for _, v := range s.Verses {
		var parts []string
		if v.FirstHalf != "" {
			parts = append(parts, v.FirstHalf)
		}
		for _, sh := range v.SecondHalf {
			parts = append(parts, "\t"+sh)
		}
		if len(parts) > 0 {
			lines = append(lines, strings.Join(parts, "\n"))
		}
	}
	return lines
}

// Select resolves a parsed reference against the psalter. Verses the corpus
// has not extracted are skipped silently; a psalm wholly absent from the
// corpus yields an empty selection, not an error. Suffix semantics:
// "a" keeps the first half only; "b" keeps the first second-half line only;
// "c" keeps the remaining second-half lines, or all of them when the verse
// has just one.
func Select(ref Reference) (Selection, error) {
	psalms, err := corpus.Psalms()
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{PsalmNumber: ref.Psalm}
	psalm, ok := psalms[ref.Psalm]
	if !ok {
		return sel, nil
	}
	sel.Latin = psalm.Latin

	specs := ref.Specs
	if specs == nil {
		// No verse part: the entire psalm, in verse order.
		nums := make([]int, 0, len(psalm.Verses))
		for n := range psalm.Verses {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			specs = append(specs, VerseSpec{Number: n})
		}
	}

	for _, spec := range specs {
		v, ok := psalm.Verses[spec.Number]
		if !ok {
			continue
		}
		switch spec.Half {
		case "a":
			sel.Verses = append(sel.Verses, Verse{Number: spec.Number, FirstHalf: v.FirstHalf})
		case "b":
			sel.Verses = append(sel.Verses, Verse{Number: spec.Number, SecondHalf: firstLine(v.SecondHalf)})
		case "c":
			sel.Verses = append(sel.Verses, Verse{Number: spec.Number, SecondHalf: remainder(v.SecondHalf)})
		default:
			sel.Verses = append(sel.Verses, Verse{
				Number:     spec.Number,
				FirstHalf:  v.FirstHalf,
				SecondHalf: append([]string(nil), v.SecondHalf...),
			})
		}
	}

	return sel, nil
}

// Get parses a citation string and resolves it in one step.
func Get(reference string) (Selection, error) {
	ref, err := ParseReference(reference)
	if err != nil {
		return Selection{}, err
	}
	return Select(ref)
}

func firstLine(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	return []string{lines[0]}
}

// remainder drops the first second-half line, except that a single-line
// second half is kept whole.
func remainder(lines []string) []string {
	if len(lines) <= 1 {
		return append([]string(nil), lines...)
	}
	return append([]string(nil), lines[1:]...)
}
