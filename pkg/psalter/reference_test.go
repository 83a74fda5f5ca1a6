package psalter

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseReferenceRanges(t *testing.T) {
	cases := []struct {
		ref   string
		psalm int
		specs []VerseSpec
	}{
		{"Psalm 63:1-3", 63, []VerseSpec{{1, ""}, {2, ""}, {3, ""}}},
		{"Psalm 51:1a-3c", 51, []VerseSpec{{1, "a"}, {2, ""}, {3, "c"}}},
		{"Psalm 116:1,10-17", 116, []VerseSpec{
			{1, ""}, {10, ""}, {11, ""}, {12, ""}, {13, ""}, {14, ""}, {15, ""}, {16, ""}, {17, ""},
		}},
		{"Psalm 147:1-4, 21c", 147, []VerseSpec{{1, ""}, {2, ""}, {3, ""}, {4, ""}, {21, "c"}}},
		{"Psalm 51:1a", 51, []VerseSpec{{1, "a"}}},
		{"Psalm 23", 23, nil},
		// A descending range expands to no verses, not an error, and is
		// distinct from the whole-psalm (nil) form.
		{"Psalm 23:5-2", 23, []VerseSpec{}},
	}

	for _, tc := range cases {
		got, err := ParseReference(tc.ref)
		if err != nil {
			t.Errorf("ParseReference(%q): %v", tc.ref, err)
			continue
		}
		if got.Psalm != tc.psalm {
			t.Errorf("ParseReference(%q) psalm = %d, want %d", tc.ref, got.Psalm, tc.psalm)
		}
		if !reflect.DeepEqual(got.Specs, tc.specs) {
			t.Errorf("ParseReference(%q) specs = %v, want %v", tc.ref, got.Specs, tc.specs)
		}
	}
}

func TestParseReferenceStripsRubric(t *testing.T) {
	cases := []string{
		"Psalm 63:1-8 responsively",
		"Psalm 63:1-8 Responsively",
		"Psalm 63:1-8 (read in unison)",
		"Psalm 63:1-8 antiphonally",
	}
	for _, ref := range cases {
		got, err := ParseReference(ref)
		if err != nil {
			t.Errorf("ParseReference(%q): %v", ref, err)
			continue
		}
		if got.Psalm != 63 || len(got.Specs) != 8 {
			t.Errorf("ParseReference(%q) = %+v", ref, got)
		}
	}
}

func TestParseReferenceErrors(t *testing.T) {
	cases := []string{
		"",
		"Isaiah 55:1-5",
		"Psalm",
		"Psalm 0",
		"Psalm 151",
		"Psalm 23:x-y",
	}
	for _, ref := range cases {
		_, err := ParseReference(ref)
		if err == nil {
			t.Errorf("ParseReference(%q): expected error", ref)
			continue
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseReference(%q): error is %T, want *ParseError", ref, err)
		}
	}
}
