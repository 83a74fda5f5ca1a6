package liturgy

import "strings"

// dismissals are the four numbered dismissal texts (BCP p. 366), keyed by
// the schedule sheet's Dismissal column value.
var dismissals = map[string][2]string{
	"1": {"Let us go forth in the name of Christ.", "Thanks be to God."},
	"2": {"Go in peace to love and serve the Lord.", "Thanks be to God."},
	"3": {"Let us go forth into the world, rejoicing in the power of the Spirit.", "Thanks be to God."},
	"4": {"Let us bless the Lord.", "Thanks be to God."},
}

// DismissalText returns the (deacon, people) dismissal lines for the sheet's
// number, falling back to the third form for unknown values. During the
// Easter season both lines gain the double alleluia.
func DismissalText(num string, hasAlleluia bool) (string, string) {
	base, ok := dismissals[strings.TrimSpace(num)]
	if !ok {
		base = dismissals["3"]
	}
	if !hasAlleluia {
		return base[0], base[1]
	}
	return withAlleluia(base[0]), withAlleluia(base[1])
}

func withAlleluia(line string) string {
	return strings.TrimRight(line, ".") + ", alleluia, alleluia."
}
