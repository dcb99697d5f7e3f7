package theory

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Genre names understood by the selector.
const (
	GenrePop        = "pop"
	GenreJazz       = "jazz"
	GenreElectronic = "electronic"
	GenreRock       = "rock"
	GenreHipHop     = "hiphop"

	// DefaultGenre is used whenever the requested genre is unknown.
	DefaultGenre = GenrePop
)

// Template is a roman-numeral progression from the catalog.
type Template struct {
	Chords      []string `json:"chords"`
	Description string   `json:"description"`
}

var catalog = map[string][]Template{
	GenrePop: {
		{Chords: []string{"I", "V", "vi", "IV"}, Description: "Classic pop progression (I-V-vi-IV)"},
		{Chords: []string{"vi", "IV", "I", "V"}, Description: "Emotional pop progression (vi-IV-I-V)"},
		{Chords: []string{"I", "vi", "IV", "V"}, Description: "50s doo-wop progression (I-vi-IV-V)"},
		{Chords: []string{"I", "IV", "vi", "V"}, Description: "Uplifting pop progression (I-IV-vi-V)"},
	},
	GenreJazz: {
		{Chords: []string{"ii7", "V7", "IM7"}, Description: "ii-V-I turnaround"},
		{Chords: []string{"IM7", "vi7", "ii7", "V7"}, Description: "Rhythm changes turnaround (I-vi-ii-V)"},
		{Chords: []string{"iii7", "vi7", "ii7", "V7"}, Description: "Circle of fifths progression"},
		{Chords: []string{"IM7", "IVM7", "iii7", "vi7"}, Description: "Smooth jazz progression"},
	},
	GenreElectronic: {
		{Chords: []string{"i", "VII", "VI", "VII"}, Description: "Dark electronic progression (i-VII-VI-VII)"},
		{Chords: []string{"i", "VI", "III", "VII"}, Description: "Epic trance progression (i-VI-III-VII)"},
		{Chords: []string{"vi", "IV", "I", "V"}, Description: "Progressive house progression"},
		{Chords: []string{"i", "iv", "VI", "V"}, Description: "Melodic techno progression"},
	},
	GenreRock: {
		{Chords: []string{"I", "bVII", "IV", "I"}, Description: "Mixolydian rock progression (I-bVII-IV-I)"},
		{Chords: []string{"I", "IV", "V", "IV"}, Description: "Classic rock progression (I-IV-V-IV)"},
		{Chords: []string{"i", "bVI", "bVII", "i"}, Description: "Aeolian rock progression"},
		{Chords: []string{"I", "V", "IV", "I"}, Description: "Arena rock progression (I-V-IV-I)"},
	},
	GenreHipHop: {
		{Chords: []string{"i", "iv", "v", "i"}, Description: "Minor hip-hop loop (i-iv-v-i)"},
		{Chords: []string{"i", "VI", "III", "VII"}, Description: "Emotional trap progression"},
		{Chords: []string{"ii7", "V7", "IM7", "vi7"}, Description: "Jazzy boom-bap progression"},
		{Chords: []string{"i", "bVII", "bVI", "bVII"}, Description: "Dark hip-hop progression"},
	},
}

// normalizeGenre folds case and drops separators so "Hip-Hop" matches.
// A Caser holds state, so each call builds its own.
func normalizeGenre(genre string) string {
	g := cases.Fold().String(strings.TrimSpace(genre))
	return strings.NewReplacer(" ", "", "-", "", "_", "").Replace(g)
}

// lookupGenre returns the catalog name for genre and whether it was known.
func lookupGenre(genre string) (string, bool) {
	name := normalizeGenre(genre)
	if _, ok := catalog[name]; ok {
		return name, true
	}
	return DefaultGenre, false
}

// Genres returns the catalog's genre names in sorted order.
func Genres() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Templates returns a copy of the templates for genre, falling back to pop.
func Templates(genre string) []Template {
	name, _ := lookupGenre(genre)
	src := catalog[name]
	out := make([]Template, len(src))
	for i, t := range src {
		out[i] = Template{
			Chords:      append([]string(nil), t.Chords...),
			Description: t.Description,
		}
	}
	return out
}
