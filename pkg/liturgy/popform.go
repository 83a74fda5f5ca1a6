package liturgy

import "strings"

// popFormNumerals maps the sheet's form designation (Roman or Arabic) to the
// corpus key of the six standard forms.
var popFormNumerals = map[string]string{
	"I": "form_I", "II": "form_II", "III": "form_III",
	"IV": "form_IV", "V": "form_V", "VI": "form_VI",
	"1": "form_I", "2": "form_II", "3": "form_III",
	"4": "form_IV", "5": "form_V", "6": "form_VI",
}

// adventOrdinals maps ordinal keywords (or bare digits) found in an Advent
// title to the parish's Advent POP forms.
var adventOrdinals = []struct {
	word, digit, key string
}{
	{"first", "1", "advent_I"},
	{"second", "2", "advent_II"},
	{"third", "3", "advent_III"},
	{"fourth", "4", "advent_IV"},
}

// popFormKey resolves the Prayers of the People corpus key. Precedence:
// the confession-bearing Form VI overrides everything; Advent titles pick
// the Advent form for their Sunday; otherwise the sheet's numeral picks one
// of the six standard forms, defaulting to Form I when unparseable.
func popFormKey(title, popForm string, isAdvent, hasConfession bool) string {
	if hasConfession {
		return "form_VI"
	}

	if isAdvent {
		t := strings.ToLower(title)
		compact := strings.ReplaceAll(t, " ", "")
		for _, ord := range adventOrdinals {
			if strings.Contains(t, ord.word) || strings.Contains(compact, ord.digit) {
				return ord.key
			}
		}
	}

	// Strip any parenthetical qualifier, e.g. "VI (w/ confession)".
	form := strings.TrimSpace(popForm)
	if i := strings.Index(form, "("); i >= 0 {
		form = strings.TrimSpace(form[:i])
	}
	if key, ok := popFormNumerals[form]; ok {
		return key
	}
	return "form_I"
}
