// Package bulletin joins one service date's schedule entry, seasonal rules,
// resolved psalm, fetched readings, and music plan into a render-ready
// Service value. Assembly stops at structured text: layout and typography
// belong to whatever consumes the Service.
package bulletin

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/japaniel/bulletiner/pkg/corpus"
	"github.com/japaniel/bulletiner/pkg/liturgy"
	"github.com/japaniel/bulletiner/pkg/logx"
	"github.com/japaniel/bulletiner/pkg/musicgrid"
	"github.com/japaniel/bulletiner/pkg/psalter"
	"github.com/japaniel/bulletiner/pkg/scripture"
	"github.com/japaniel/bulletiner/pkg/sheet"
	"github.com/japaniel/bulletiner/pkg/songs"
)

// SongEntry is one music slot with its resolved lyrics. Song is nil when
// the corpus has no match for the slot's identifier.
type SongEntry struct {
	Part       string
	Identifier songs.Identifier
	Key        string
	Lead       string
	Song       *songs.Song
}

// Service is the fully assembled bulletin content for one date.
type Service struct {
	Date     time.Time
	Title    string
	Schedule sheet.Entry
	Rules    liturgy.Rules

	Psalm       psalter.Selection
	PsalmRef    string
	PsalmRubric string

	Readings map[string]scripture.Reading

	MusicLabel   string
	Songs        []SongEntry
	MissingSongs []string

	EucharisticPrayer string
	PrefaceText       string
	POPForm           corpus.POPForm
	BlessingText      string
	ClosingPrayerText string
	DismissalDeacon   string
	DismissalPeople   string
}

// SongForPart finds the resolved entry for a service part, if any.
func (s *Service) SongForPart(part string) (SongEntry, bool) {
	want := strings.ToLower(strings.TrimSpace(part))
	for _, e := range s.Songs {
		if strings.ToLower(strings.TrimSpace(e.Part)) == want {
			return e, true
		}
	}
	return SongEntry{}, false
}

// Builder assembles a Service from already-fetched inputs. All fetching
// happens upstream so assembly itself is deterministic and offline.
type Builder struct {
	Date     time.Time
	Entry    sheet.Entry
	Plan     *musicgrid.Plan               // nil when the grid has no panel for the date
	Readings map[string]scripture.Reading  // keyed "reading", "gospel"
	Lookup   func(identifier, service string) (*songs.Song, error) // nil disables lyric lookup

	// PrefaceOption preselects a multi-option proper preface by option key
	// or label. Blank means the first option wins.
	PrefaceOption string

	// ParishMinistries is the formatted parish cycle of prayers entry
	// substituted into the POP form's {parish_ministries} placeholder.
	// Blank leaves a visible "[ministries]" marker to fill in by hand.
	ParishMinistries string
}

// Build derives the rules and resolves every corpus-backed text for the
// service. A missing psalm, song, or reading degrades to an empty or
// placeholder value rather than failing the whole bulletin.
func (b *Builder) Build() (Service, error) {
	e := b.Entry
	rules := liturgy.DeriveRules(e.Title, e.Color, e.Notes, e.POPForm)

	svc := Service{
		Date:     b.Date,
		Title:    e.Title,
		Schedule: e,
		Rules:    rules,
		Readings: b.Readings,
	}

	svc.PsalmRef, svc.PsalmRubric = psalmField(e.Psalm)
	if svc.PsalmRef != "" {
		sel, err := psalter.Get(svc.PsalmRef)
		if err != nil {
			logx.Error("psalm lookup failed", err, "ref", svc.PsalmRef)
		} else {
			svc.Psalm = sel
		}
	}

	if b.Plan != nil {
		svc.MusicLabel = b.Plan.Label
		svc.Songs, svc.MissingSongs = b.resolveSongs(b.Plan)
	}

	svc.EucharisticPrayer = eucharisticPrayer(e.Prayer)
	svc.PrefaceText = b.resolvePreface(rules)
	svc.POPForm = resolvePOPForm(rules.POPFormKey, b.ParishMinistries)
	svc.BlessingText = resolveBlessing(rules)
	svc.ClosingPrayerText = resolveClosingPrayer(e.Closing)
	svc.DismissalDeacon, svc.DismissalPeople = liturgy.DismissalText(e.Dismissal, rules.DismissalHasAlleluia)

	return svc, nil
}

func (b *Builder) resolveSongs(plan *musicgrid.Plan) ([]SongEntry, []string) {
	var entries []SongEntry
	var missing []string
	for _, slot := range plan.Slots {
		entry := SongEntry{
			Part:       slot.ServicePart,
			Identifier: songs.ParseSongIdentifier(slot.SongTitle),
			Key:        slot.Key,
			Lead:       slot.Lead,
		}
		if b.Lookup != nil {
			song, err := b.Lookup(slot.SongTitle, "9am")
			if err != nil {
				logx.Error("song lookup failed", err, "identifier", slot.SongTitle)
			}
			entry.Song = song
		}
		if entry.Song == nil {
			missing = append(missing, slot.ServicePart+": "+slot.SongTitle)
		}
		entries = append(entries, entry)
	}
	return entries, missing
}

// resolvePreface picks the proper preface text, honoring a preselected
// option for multi-option prefaces and defaulting to the first option.
func (b *Builder) resolvePreface(rules liturgy.Rules) string {
	if len(rules.PrefaceOptions) == 0 {
		return corpus.PrefaceText(rules.PrefaceKey, "")
	}

	if b.PrefaceOption != "" {
		want := strings.ToLower(strings.TrimSpace(b.PrefaceOption))
		for _, kl := range corpus.PrefaceOptionLabels(rules.PrefaceKey) {
			if strings.ToLower(kl[0]) == want || strings.ToLower(kl[1]) == want {
				return corpus.PrefaceText(rules.PrefaceKey, kl[0])
			}
		}
		logx.Info("unknown preface option, using first", "option", b.PrefaceOption, "preface", rules.PrefaceKey)
	}
	return corpus.PrefaceText(rules.PrefaceKey, rules.PrefaceOptions[0])
}

// resolvePOPForm looks up the derived form and substitutes the parish
// cycle of prayers into its {parish_ministries} placeholder. The petitions
// are copied so the shared corpus data stays untouched.
func resolvePOPForm(key, parishMinistries string) corpus.POPForm {
	form, ok := corpus.POPFormByKey(key)
	if !ok {
		form, _ = corpus.POPFormByKey("form_I")
	}

	if parishMinistries == "" {
		parishMinistries = "[ministries]"
	}
	petitions := make([]string, len(form.Petitions))
	for i, p := range form.Petitions {
		petitions[i] = strings.ReplaceAll(p, "{parish_ministries}", parishMinistries)
	}
	form.Petitions = petitions
	return form
}

// resolveBlessing maps the derived rules to a blessing or Prayer over the
// People text. Lent 1 has its own solemn prayer.
func resolveBlessing(rules liturgy.Rules) string {
	var key string
	switch {
	case rules.UsePrayerOverPeople && rules.UseDecalogue:
		key = "lent_1"
	case rules.UsePrayerOverPeople:
		key = "lent_solemn_prayer"
	case liturgy.InEasterSeason(rules.Season):
		key = "easter"
	default:
		key = "standard"
	}
	text, ok := corpus.Blessing(key)
	if !ok {
		text, _ = corpus.Blessing("standard")
	}
	return text
}

// resolveClosingPrayer maps the sheet's closing-prayer designation to a
// post-communion prayer text.
func resolveClosingPrayer(designation string) string {
	key := "post_communion_almighty"
	if strings.Contains(strings.ToLower(designation), "eternal") {
		key = "post_communion_eternal"
	}
	text, _ := corpus.CommonPrayer(key)
	return text
}

func eucharisticPrayer(cell string) string {
	p := strings.ToUpper(strings.TrimSpace(cell))
	if p == "" {
		return "A"
	}
	return p
}

// psalmField splits the sheet's psalm cell into the bare reference and the
// rubric it implies. The cell may run to several lines ("Psalm 121\nunison").
func psalmField(cell string) (ref, rubric string) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return "", ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "responsiv"):
		rubric = "Read responsively by whole verse."
	case strings.Contains(lower, "antiphon"):
		rubric = ""
	default:
		rubric = "Read in unison."
	}

	if i := strings.IndexAny(trimmed, "\r\n"); i >= 0 {
		trimmed = strings.TrimSpace(trimmed[:i])
	}
	return trimmed, rubric
}

// WriteText prints the assembled service as plain text, one liturgical
// element per block.
func (s *Service) WriteText(w io.Writer) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n%s\n\n", s.Title, s.Date.Format("January 2, 2006"))
	if s.MusicLabel != "" {
		fmt.Fprintf(&sb, "Music: %s\n\n", s.MusicLabel)
	}

	fmt.Fprintf(&sb, "Opening Acclamation\nCelebrant\t%s\nPeople\t%s\n\n",
		s.Rules.AcclamationCelebrant, s.Rules.AcclamationPeople)

	if s.Rules.UseDecalogue {
		if text, ok := corpus.CommonPrayer("decalogue_opening"); ok {
			fmt.Fprintf(&sb, "The Decalogue\n%s\n\n", text)
		}
	}
	if s.Rules.ConfessionBeforeWord {
		if text, ok := corpus.CommonPrayer("confession_of_sin"); ok {
			fmt.Fprintf(&sb, "Confession of Sin\n%s\n\n", text)
		}
	}
	if s.Rules.IncludeCollectForPurity {
		if text, ok := corpus.CommonPrayer("collect_for_purity"); ok {
			fmt.Fprintf(&sb, "Collect for Purity\n%s\n\n", text)
		}
	}

	fmt.Fprintf(&sb, "%s\n", s.Rules.SongOfPraiseLabel)
	writeSong(&sb, s, "Song of Praise")
	sb.WriteString("\n")

	if r, ok := s.Readings["reading"]; ok {
		fmt.Fprintf(&sb, "The Reading: %s\n%s\n\n", s.Schedule.Reading, r.Text())
	}

	if len(s.Psalm.Verses) > 0 {
		fmt.Fprintf(&sb, "The Psalm: %s\n", s.PsalmRef)
		if s.PsalmRubric != "" {
			fmt.Fprintf(&sb, "%s\n", s.PsalmRubric)
		}
		for _, line := range s.Psalm.Lines() {
			fmt.Fprintf(&sb, "%s\n", line)
		}
		sb.WriteString("\n")
	}

	if r, ok := s.Readings["gospel"]; ok {
		fmt.Fprintf(&sb, "The Gospel: %s\n%s\n\n", s.Schedule.Gospel, r.Text())
	}

	fmt.Fprintf(&sb, "Prayers of the People: %s\n", s.POPForm.Title)
	for _, p := range s.POPForm.Petitions {
		fmt.Fprintf(&sb, "%s\n", p)
	}
	sb.WriteString("\n")

	if !s.Rules.NoConfessionAfterPOP {
		if text, ok := corpus.CommonPrayer("confession_of_sin"); ok {
			fmt.Fprintf(&sb, "Confession of Sin\n%s\n\n", text)
		}
	}

	fmt.Fprintf(&sb, "The Great Thanksgiving: Eucharistic Prayer %s\n", s.EucharisticPrayer)
	if s.PrefaceText != "" {
		fmt.Fprintf(&sb, "Proper Preface\n%s\n\n", s.PrefaceText)
	}

	sb.WriteString("The Breaking of the Bread\n")
	if s.Rules.UseFractionAnthem {
		writeSong(&sb, s, "Fraction")
	} else {
		fmt.Fprintf(&sb, "Celebrant\t%s\nPeople\t%s\n", s.Rules.FractionCelebrant, s.Rules.FractionPeople)
	}
	sb.WriteString("\n")

	if s.ClosingPrayerText != "" {
		fmt.Fprintf(&sb, "Post-Communion Prayer\n%s\n\n", s.ClosingPrayerText)
	}

	fmt.Fprintf(&sb, "%s\n%s\n\n", s.Rules.BlessingLabel, s.BlessingText)

	fmt.Fprintf(&sb, "Dismissal\nDeacon\t%s\nPeople\t%s\n", s.DismissalDeacon, s.DismissalPeople)

	if len(s.MissingSongs) > 0 {
		sb.WriteString("\nMissing lyrics:\n")
		for _, m := range s.MissingSongs {
			fmt.Fprintf(&sb, "  - %s\n", m)
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSong(sb *strings.Builder, s *Service, part string) {
	e, ok := s.SongForPart(part)
	if !ok {
		return
	}
	if e.Song == nil {
		fmt.Fprintf(sb, "%s\n", e.Identifier.Raw)
		return
	}
	fmt.Fprintf(sb, "%s\n", e.Song.Title)
	for _, sec := range e.Song.Sections {
		for _, line := range sec.Lines {
			fmt.Fprintf(sb, "%s\n", line)
		}
		sb.WriteString("\n")
	}
}
