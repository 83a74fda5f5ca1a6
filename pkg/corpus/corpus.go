// Package corpus holds the static liturgical reference texts: the psalter,
// proper prefaces, Prayers of the People forms, blessings, and common
// prayers. The files are embedded into the binary and parsed once, on first
// use; every accessor returns shared immutable data.
package corpus

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// PsalmVerse is one verse of the psalter in its half-verse form: the first
// half is read by the leader, the second-half lines by the people.
type PsalmVerse struct {
	FirstHalf  string   `yaml:"first_half"`
	SecondHalf []string `yaml:"second_half"`
}

// Psalm is one psalm: its traditional Latin incipit and verses by number.
type Psalm struct {
	Latin  string             `yaml:"latin"`
	Verses map[int]PsalmVerse `yaml:"verses"`
}

// PrefaceOption is one choice of a multi-option proper preface.
type PrefaceOption struct {
	Label string `yaml:"label"`
	Text  string `yaml:"text"`
}

// Preface is a proper preface entry. Single-option prefaces carry Text;
// multi-option prefaces (Lent, Lord's Day) carry Options instead.
type Preface struct {
	Text    string                   `yaml:"text"`
	Options map[string]PrefaceOption `yaml:"options"`
}

// POPForm is one authorized Prayers of the People form.
type POPForm struct {
	Title         string   `yaml:"title"`
	Petitions     []string `yaml:"petitions"`
	HasConfession bool     `yaml:"has_confession"`
}

type corpusData struct {
	psalms    map[int]Psalm
	prefaces  map[string]Preface
	popForms  map[string]POPForm
	blessings map[string]string
	prayers   map[string]string
}

var (
	loadOnce sync.Once
	loaded   *corpusData
	loadErr  error
)

func load() (*corpusData, error) {
	loadOnce.Do(func() {
		d := &corpusData{}
		loadErr = firstErr(
			loadYAML("data/psalms.yaml", &d.psalms),
			loadYAML("data/proper_prefaces.yaml", &d.prefaces),
			loadYAML("data/pop_forms.yaml", &d.popForms),
			loadYAML("data/blessings.yaml", &d.blessings),
			loadYAML("data/common_prayers.yaml", &d.prayers),
		)
		loaded = d
	})
	return loaded, loadErr
}

func loadYAML(path string, out any) error {
	data, err := dataFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// Psalms returns the psalter keyed by psalm number.
func Psalms() (map[int]Psalm, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return d.psalms, nil
}

// Prefaces returns all proper preface entries keyed by preface key.
func Prefaces() (map[string]Preface, error) {
	d, err := load()
	if err != nil {
		return nil, err
	}
	return d.prefaces, nil
}

// PrefaceText looks up a proper preface text by key and optional option
// sub-key. Missing keys yield an empty string, not an error.
func PrefaceText(key, option string) string {
	prefaces, err := Prefaces()
	if err != nil {
		return ""
	}
	entry, ok := prefaces[key]
	if !ok {
		return ""
	}
	if option != "" {
		return entry.Options[option].Text
	}
	return entry.Text
}

// PrefaceOptionLabels returns (optionKey, label) pairs for a multi-option
// preface, sorted by option key for deterministic prompting order.
func PrefaceOptionLabels(key string) [][2]string {
	prefaces, err := Prefaces()
	if err != nil {
		return nil
	}
	entry, ok := prefaces[key]
	if !ok || len(entry.Options) == 0 {
		return nil
	}
	keys := make([]string, 0, len(entry.Options))
	for k := range entry.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, entry.Options[k].Label})
	}
	return out
}

// POPFormByKey returns the Prayers of the People form for a key such as
// "form_I" or "advent_III". The second return reports whether it exists.
func POPFormByKey(key string) (POPForm, bool) {
	d, err := load()
	if err != nil {
		return POPForm{}, false
	}
	form, ok := d.popForms[key]
	return form, ok
}

// Blessing returns a blessing or prayer-over-the-people text by key.
func Blessing(key string) (string, bool) {
	d, err := load()
	if err != nil {
		return "", false
	}
	text, ok := d.blessings[key]
	return text, ok
}

// CommonPrayer returns a fixed prayer text (Collect for Purity, confession,
// post-communion prayers) by key.
func CommonPrayer(key string) (string, bool) {
	d, err := load()
	if err != nil {
		return "", false
	}
	text, ok := d.prayers[key]
	return text, ok
}
