package theory

import (
	"math/rand/v2"
	"strings"
)

// Progression is a template resolved against a key.
type Progression struct {
	Key           Key      `json:"key"`
	Genre         string   `json:"genre"`
	Chords        []string `json:"chords"`
	RomanNumerals []string `json:"roman_numerals"`
	Description   string   `json:"description"`
	// Fallback is set when an unknown genre or numeral was replaced by its default.
	Fallback bool `json:"fallback"`
}

// Summary joins the chord names for display.
func (p *Progression) Summary() string {
	return strings.Join(p.Chords, " - ")
}

// Fallback kinds reported to OnFallback.
const (
	FallbackGenre   = "genre"
	FallbackNumeral = "numeral"
)

// Fallback describes an input the generator replaced with a default.
type Fallback struct {
	Kind    string
	Value   string
	Default string
}

// Generator builds chord progressions. The zero value picks templates with
// math/rand and reports nothing. A Generator holds no mutable state and is
// safe for concurrent use as long as its fields aren't changed.
type Generator struct {
	// Pick returns an index in [0, n). Defaults to rand.IntN.
	Pick func(n int) int
	// OnFallback, if set, is called for every degraded input.
	OnFallback func(Fallback)
}

// NewGenerator returns a Generator reporting fallbacks to onFallback.
func NewGenerator(onFallback func(Fallback)) *Generator {
	return &Generator{OnFallback: onFallback}
}

// Generate resolves a randomly chosen template of genre in key.
func (g *Generator) Generate(key, genre string) (*Progression, error) {
	return g.generate(key, genre, func(n int) int {
		if g.Pick != nil {
			return g.Pick(n)
		}
		return rand.IntN(n)
	})
}

// GenerateSeeded is Generate with the template chosen by seed, so equal
// seeds give equal progressions.
func (g *Generator) GenerateSeeded(key, genre string, seed int64) (*Progression, error) {
	return g.generate(key, genre, func(n int) int {
		idx := seed % int64(n)
		if idx < 0 {
			idx += int64(n)
		}
		return int(idx)
	})
}

func (g *Generator) generate(key, genre string, pick func(n int) int) (*Progression, error) {
	k, err := ParseKey(key)
	if err != nil {
		return nil, err
	}
	notes, err := k.Notes()
	if err != nil {
		return nil, err
	}

	name, known := lookupGenre(genre)
	fallback := !known
	if !known {
		g.report(Fallback{Kind: FallbackGenre, Value: genre, Default: DefaultGenre})
	}

	templates := catalog[name]
	tmpl := templates[pick(len(templates))]

	chords := make([]string, len(tmpl.Chords))
	for i, token := range tmpl.Chords {
		chord, ok := ResolveNumeral(token, notes, k.Mode)
		if !ok {
			fallback = true
			g.report(Fallback{Kind: FallbackNumeral, Value: token, Default: "I"})
		}
		chords[i] = chord.Name
	}

	return &Progression{
		Key:           k,
		Genre:         name,
		Chords:        chords,
		RomanNumerals: append([]string(nil), tmpl.Chords...),
		Description:   tmpl.Description,
		Fallback:      fallback,
	}, nil
}

func (g *Generator) report(f Fallback) {
	if g.OnFallback != nil {
		g.OnFallback(f)
	}
}

var defaultGenerator = &Generator{}

// GenerateProgression resolves a random template of genre in key.
// Unknown genres fall back to pop; unknown keys fail with ErrUnsupportedKey.
func GenerateProgression(key, genre string) (*Progression, error) {
	return defaultGenerator.Generate(key, genre)
}

// GetRandomProgressionChords returns only the chord names.
func GetRandomProgressionChords(key, genre string) ([]string, error) {
	p, err := GenerateProgression(key, genre)
	if err != nil {
		return nil, err
	}
	return p.Chords, nil
}

// GetProgressionSummary returns the chords joined with " - ".
func GetProgressionSummary(key, genre string) (string, error) {
	p, err := GenerateProgression(key, genre)
	if err != nil {
		return "", err
	}
	return p.Summary(), nil
}
