// Package liturgy derives the seasonal decisions for one service: which
// season a liturgical day falls in, and the full set of structural rules
// (Penitential Order, acclamations, fraction text, blessing form, dismissal
// alleluias, Prayers of the People form, proper preface) that follow from
// it. Everything here is a pure function of the schedule row's text fields;
// derivation never fails, so a bulletin can always be produced.
package liturgy

import "strings"

// Season is a liturgical season bucket. "Ordinary" covers the Sundays after
// Epiphany and after Pentecost; Holy Week classifies as Lent.
type Season string

const (
	SeasonAdvent       Season = "advent"
	SeasonChristmas    Season = "christmas"
	SeasonEpiphany     Season = "epiphany"
	SeasonLent         Season = "lent"
	SeasonEaster       Season = "easter"
	SeasonPentecostDay Season = "pentecost_day"
	SeasonOrdinary     Season = "ordinary"
)

// seasonRule is one (predicate, result) pair of the classification table.
type seasonRule struct {
	match  func(title string) bool
	season Season
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// seasonRules is the ordered classification table. Order is part of the
// contract: "Pentecost" without "after" must be tested before the plain
// "pentecost" fallthrough, and Holy Week keywords must win before the color
// fallback gets a chance.
var seasonRules = []seasonRule{
	{func(t string) bool { return strings.Contains(t, "advent") }, SeasonAdvent},
	{func(t string) bool { return containsAny(t, "christmas", "christmastide") }, SeasonChristmas},
	{func(t string) bool { return strings.Contains(t, "epiphany") }, SeasonEpiphany},
	{func(t string) bool { return strings.Contains(t, "ash wednesday") }, SeasonLent},
	{func(t string) bool { return strings.Contains(t, "lent") }, SeasonLent},
	// Holy Week is liturgically part of Lent.
	{func(t string) bool { return containsAny(t, "palm sunday", "passion", "maundy", "good friday", "holy saturday") }, SeasonLent},
	{func(t string) bool { return strings.Contains(t, "easter") }, SeasonEaster},
	// Ascension falls within the Easter season.
	{func(t string) bool { return strings.Contains(t, "ascension") }, SeasonEaster},
	{func(t string) bool { return strings.Contains(t, "pentecost") && !strings.Contains(t, "after") }, SeasonPentecostDay},
	{func(t string) bool { return strings.Contains(t, "trinity") }, SeasonOrdinary},
	{func(t string) bool { return strings.Contains(t, "proper") }, SeasonOrdinary},
	{func(t string) bool { return strings.Contains(t, "pentecost") }, SeasonOrdinary},
}

// ClassifySeason maps a liturgical day title and color to a Season. It is
// total: titles that match no keyword fall back on the liturgical color, and
// failing that, ordinary time.
func ClassifySeason(title, color string) Season {
	t := strings.ToLower(title)
	for _, rule := range seasonRules {
		if rule.match(t) {
			return rule.season
		}
	}

	switch strings.ToLower(strings.TrimSpace(color)) {
	case "violet", "purple":
		// Could be Advent, but the title keyword handles that first.
		return SeasonLent
	case "red":
		return SeasonPentecostDay
	}
	return SeasonOrdinary
}

// InEasterSeason reports whether the season runs from Easter Day through the
// Day of Pentecost inclusive.
func InEasterSeason(s Season) bool {
	return s == SeasonEaster || s == SeasonPentecostDay
}

// isLent1 reports whether the title names the First Sunday in Lent, which
// uses the long Penitential Order with the Decalogue. Compact forms like
// "Lent 1" count.
func isLent1(title string) bool {
	t := strings.ToLower(title)
	if strings.Contains(t, "first sunday") && strings.Contains(t, "lent") {
		return true
	}
	return strings.Contains(strings.ReplaceAll(t, " ", ""), "lent1")
}

// isHolyWeek reports whether the title falls in Holy Week (Palm Sunday
// through Holy Saturday).
func isHolyWeek(title string) bool {
	return containsAny(strings.ToLower(title),
		"palm sunday", "passion", "maundy", "good friday", "holy saturday", "holy week")
}
