package liturgy

import "strings"

// CrossSymbol marks where the celebrant signs the cross in printed texts.
const CrossSymbol = "✠"

// Rules is the fully determined seasonal decision record for one service.
// Identical inputs to DeriveRules always yield an identical Rules value.
type Rules struct {
	Season Season

	// Structure
	UsePenitentialOrder     bool // Lent: Penitential Order replaces the standard opening
	UseDecalogue            bool // Lent 1 only: long form with the Decalogue
	ConfessionBeforeWord    bool // Penitential Order: Confession precedes the Word of God
	NoConfessionAfterPOP    bool // no separate Confession after the Prayers of the People
	IncludeCollectForPurity bool // standard order yes, Penitential Order no

	// Opening Acclamation
	AcclamationCelebrant string
	AcclamationPeople    string

	// Song of Praise / Kyrie
	SongOfPraiseLabel string
	IsAdvent          bool // Advent: wreath lighting alongside the Song of Praise

	// Breaking of the Bread
	UseFractionAnthem bool // Lent: sung fraction anthem replaces the spoken dialogue
	FractionCelebrant string
	FractionPeople    string

	// Blessing vs. Prayer over the People
	UsePrayerOverPeople bool
	BlessingLabel       string

	// Dismissal
	DismissalHasAlleluia bool // Easter Day through Pentecost Day

	// Prayers of the People
	POPFormKey       string // corpus key, e.g. "form_I", "advent_III"
	POPHasConfession bool   // Form VI "(w/ confession)" carries its own confession

	// Proper Preface
	PrefaceKey     string
	PrefaceOptions []string // non-empty when the user must choose
	PromptPreface  bool
}

var (
	acclamationStandard = [2]string{
		"Blessed be God: " + CrossSymbol + " Father, Son, and Holy Spirit.",
		"And blessed be his kingdom, now and for ever. Amen.",
	}
	acclamationLent = [2]string{
		"Bless the Lord who forgives all our sins.",
		"His mercy endures forever.",
	}
	acclamationEaster = [2]string{
		"Alleluia. Christ is risen.",
		"The Lord is risen indeed. Alleluia.",
	}

	fractionAlleluia = [2]string{
		"Alleluia. Christ our Passover is sacrificed for us;",
		"Therefore let us keep the feast. Alleluia.",
	}
	fractionPlain = [2]string{
		"Christ our Passover is sacrificed for us;",
		"Therefore let us keep the feast.",
	}
)

// DeriveRules computes every seasonal decision for a service from the
// schedule row's title, color, notes, and Prayers of the People form
// designation. It never fails: unmatched inputs derive ordinary-time
// behavior. The fields are produced together as one ordered decision table;
// none is meaningful computed in isolation.
func DeriveRules(title, color, notes, popForm string) Rules {
	season := ClassifySeason(title, color)
	lent := season == SeasonLent
	easter := InEasterSeason(season)
	advent := season == SeasonAdvent

	r := Rules{Season: season, IsAdvent: advent}

	// Penitential Order: all Sundays in Lent, with the Decalogue on Lent 1.
	r.UsePenitentialOrder = lent
	r.UseDecalogue = lent && isLent1(title)
	r.ConfessionBeforeWord = r.UsePenitentialOrder
	r.IncludeCollectForPurity = !r.UsePenitentialOrder

	// Opening Acclamation.
	switch {
	case r.UsePenitentialOrder:
		r.AcclamationCelebrant, r.AcclamationPeople = acclamationLent[0], acclamationLent[1]
	case easter:
		r.AcclamationCelebrant, r.AcclamationPeople = acclamationEaster[0], acclamationEaster[1]
	default:
		r.AcclamationCelebrant, r.AcclamationPeople = acclamationStandard[0], acclamationStandard[1]
	}

	// Song of Praise / Kyrie label.
	switch {
	case lent:
		r.SongOfPraiseLabel = "Kyrie"
	case advent:
		r.SongOfPraiseLabel = "Song of Praise and Lighting of the Advent Wreath"
	default:
		r.SongOfPraiseLabel = "Song of Praise"
	}

	// Breaking of the Bread: sung anthem in Lent, spoken dialogue otherwise,
	// with Alleluia framing during the Easter season.
	switch {
	case lent:
		r.UseFractionAnthem = true
	case easter:
		r.FractionCelebrant, r.FractionPeople = fractionAlleluia[0], fractionAlleluia[1]
	default:
		r.FractionCelebrant, r.FractionPeople = fractionPlain[0], fractionPlain[1]
	}

	// Blessing vs. Prayer over the People.
	r.UsePrayerOverPeople = lent
	if lent {
		r.BlessingLabel = "Prayer over the People"
	} else {
		r.BlessingLabel = "Blessing"
	}

	// Dismissal: the sheet column picks the number; the season adds alleluias.
	r.DismissalHasAlleluia = easter

	// Prayers of the People.
	r.POPHasConfession = popHasConfession(popForm, notes)
	r.POPFormKey = popFormKey(title, popForm, advent, r.POPHasConfession)
	r.NoConfessionAfterPOP = r.UsePenitentialOrder || r.POPHasConfession

	// Proper Preface.
	r.PrefaceKey, r.PrefaceOptions, r.PromptPreface = prefaceSelection(title, season)

	return r
}

// popHasConfession reports whether the POP form designation or the notes ask
// for the confession-bearing form ("VI (w/ confession)").
func popHasConfession(popForm, notes string) bool {
	combined := strings.ToLower(popForm + " " + notes)
	return strings.Contains(combined, "w/ confession") ||
		strings.Contains(combined, "with confession")
}

// prefaceSelection picks the proper preface corpus key. Fixed feasts win
// over the season; Lent and ordinary-time Sundays yield multiple options and
// require a choice.
func prefaceSelection(title string, season Season) (key string, options []string, prompt bool) {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "trinity"):
		return "trinity", nil, false
	case strings.Contains(t, "ascension"):
		return "ascension", nil, false
	case isHolyWeek(title):
		return "holy_week", nil, false
	}

	switch season {
	case SeasonAdvent:
		return "advent", nil, false
	case SeasonChristmas:
		return "incarnation", nil, false
	case SeasonEpiphany:
		return "epiphany", nil, false
	case SeasonLent:
		return "lent", []string{"option_1", "option_2"}, true
	case SeasonEaster:
		return "easter", nil, false
	case SeasonPentecostDay:
		return "pentecost", nil, false
	}

	// Ordinary-time Sundays use the Preface of the Lord's Day.
	return "lords_day", []string{"of_god_the_father", "of_god_the_son", "of_god_the_holy_spirit"}, true
}
