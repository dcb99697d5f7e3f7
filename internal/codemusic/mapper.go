package codemusic

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
)

var (
	ErrEmptySource      = errors.New("source code is empty")
	ErrSourceTooLarge   = errors.New("source code exceeds size limit")
	ErrInvalidVariation = errors.New("variation must not be negative")
)

// Kind is the structural role of a line of code.
type Kind string

const (
	KindClass       Kind = "class"
	KindFunction    Kind = "function"
	KindImport      Kind = "import"
	KindLoop        Kind = "loop"
	KindConditional Kind = "conditional"
	KindVariable    Kind = "variable"
	KindReturn      Kind = "return"
)

const (
	DefaultKey         = "C"
	DefaultGenre       = theory.GenrePop
	DefaultBPM         = 120
	DefaultMaxBytes    = 200_000
	DefaultMaxElements = 512

	beatsPerChord  = 4.0
	minBPM         = 40
	maxBPM         = 240
	velocitySpread = 16
)

// voice is how a kind of element is played.
type voice struct {
	octave   int
	duration float64
	velocity int
}

var voices = map[Kind]voice{
	KindClass:       {octave: 2, duration: 4, velocity: 100},
	KindFunction:    {octave: 3, duration: 2, velocity: 90},
	KindImport:      {octave: 3, duration: 1, velocity: 70},
	KindLoop:        {octave: 4, duration: 0.5, velocity: 85},
	KindConditional: {octave: 4, duration: 1, velocity: 80},
	KindVariable:    {octave: 5, duration: 0.5, velocity: 75},
	KindReturn:      {octave: 4, duration: 1, velocity: 95},
}

// Element is one recognised construct in the source.
type Element struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
	Line int    `json:"line"`
}

// Seed is the string hashed for this element, e.g. "class-User-1".
func (e Element) Seed() string {
	return fmt.Sprintf("%s-%s-%d", e.Kind, e.Name, e.Line)
}

// Options control a mapping. Zero fields take the package defaults.
type Options struct {
	Key       string
	Genre     string
	BPM       int
	Variation int
}

// Composition is the music derived from a piece of source code.
type Composition struct {
	Key         string              `json:"key"`
	Genre       string              `json:"genre"`
	BPM         int                 `json:"bpm"`
	Variation   int                 `json:"variation"`
	Progression *theory.Progression `json:"progression"`
	Elements    []Element           `json:"elements"`
	Notes       []models.NoteEvent  `json:"notes"`
	Chords      []models.ChordEvent `json:"chords"`
	TotalBeats  float64             `json:"total_beats"`
}

// Mapper turns source code into a Composition. Output depends only on the
// source and Options.
type Mapper struct {
	Generator   *theory.Generator
	MaxBytes    int
	MaxElements int
}

// NewMapper returns a Mapper using generator for progressions.
func NewMapper(generator *theory.Generator, maxBytes int) *Mapper {
	if generator == nil {
		generator = theory.NewGenerator(nil)
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Mapper{
		Generator:   generator,
		MaxBytes:    maxBytes,
		MaxElements: DefaultMaxElements,
	}
}

// Map analyses source and renders it against a seeded progression.
func (m *Mapper) Map(source string, opts Options) (*Composition, error) {
	if strings.TrimSpace(source) == "" {
		return nil, ErrEmptySource
	}
	maxBytes := m.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if len(source) > maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrSourceTooLarge, len(source), maxBytes)
	}
	if opts.Variation < 0 {
		return nil, ErrInvalidVariation
	}
	opts = withDefaults(opts)

	maxElements := m.MaxElements
	if maxElements <= 0 {
		maxElements = DefaultMaxElements
	}
	elements := Scan(source, maxElements)

	seeds := make([]string, len(elements))
	for i, el := range elements {
		seeds[i] = el.Seed()
	}
	fingerprint := strings.Join(seeds, "|")

	generator := m.Generator
	if generator == nil {
		generator = theory.NewGenerator(nil)
	}
	progression, err := generator.GenerateSeeded(opts.Key, opts.Genre, HashWithVariation(fingerprint, opts.Variation))
	if err != nil {
		return nil, err
	}

	comp := &Composition{
		Key:         progression.Key.String(),
		Genre:       progression.Genre,
		BPM:         opts.BPM,
		Variation:   opts.Variation,
		Progression: progression,
		Elements:    elements,
		Notes:       make([]models.NoteEvent, 0, len(elements)),
	}

	cursor := 0.0
	for i, el := range elements {
		v := voices[el.Kind]
		chord := progression.Chords[chordIndex(cursor, len(progression.Chords))]

		tones, err := theory.ChordToMIDI(chord, v.octave)
		if err != nil {
			return nil, fmt.Errorf("voicing %s for %s: %w", chord, seeds[i], err)
		}

		h := HashWithVariation(seeds[i], opts.Variation)
		comp.Notes = append(comp.Notes, models.NoteEvent{
			MidiNoteNumber: tones[Index(seeds[i], opts.Variation, len(tones))],
			Velocity:       v.velocity - int(h%velocitySpread),
			StartBeats:     cursor,
			DurationBeats:  v.duration,
		})
		cursor += v.duration
	}

	comp.TotalBeats = cursor
	comp.Chords = chordTrack(progression.Chords, cursor)
	return comp, nil
}

func withDefaults(opts Options) Options {
	if strings.TrimSpace(opts.Key) == "" {
		opts.Key = DefaultKey
	}
	if strings.TrimSpace(opts.Genre) == "" {
		opts.Genre = DefaultGenre
	}
	if opts.BPM == 0 {
		opts.BPM = DefaultBPM
	}
	opts.BPM = min(max(opts.BPM, minBPM), maxBPM)
	return opts
}

func chordIndex(beat float64, n int) int {
	return int(math.Floor(beat/beatsPerChord)) % n
}

// chordTrack lays the progression out bar by bar until total beats are
// covered, always emitting at least one full pass.
func chordTrack(chords []string, total float64) []models.ChordEvent {
	bars := int(math.Ceil(total / beatsPerChord))
	if bars < len(chords) {
		bars = len(chords)
	}
	track := make([]models.ChordEvent, bars)
	for i := range track {
		track[i] = models.ChordEvent{
			ChordSymbol:   chords[i%len(chords)],
			StartBeats:    float64(i) * beatsPerChord,
			DurationBeats: beatsPerChord,
		}
	}
	return track
}

// pattern recognises one construct; group 1 holds its name.
type pattern struct {
	kind Kind
	re   *regexp.Regexp
}

// Checked in order; the first match wins.
var patterns = []pattern{
	{KindClass, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?(?:public\s+|private\s+)?(?:class|interface)\s+([A-Za-z_$][\w$]*)`)},
	{KindClass, regexp.MustCompile(`^\s*type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`)},
	{KindClass, regexp.MustCompile(`^\s*(?:pub\s+)?(?:struct|enum|trait)\s+([A-Za-z_]\w*)`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)`)},
	{KindFunction, regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s*)?([A-Za-z_]\w*)`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+([A-Za-z_]\w*)`)},
	{KindFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)},
	{KindImport, regexp.MustCompile(`^\s*(?:import|from|#include|using)\s+(?:[\w$*{},\s]+\s+from\s+)?["'<]?([@\w./-]+)`)},
	{KindImport, regexp.MustCompile(`\brequire\(\s*["']([^"']+)["']\s*\)`)},
	{KindLoop, regexp.MustCompile(`^\s*(?:\}\s*)?(for|while|do|loop)\b`)},
	{KindLoop, regexp.MustCompile(`\.(forEach|map|reduce|filter)\s*\(`)},
	{KindConditional, regexp.MustCompile(`^\s*(?:\}\s*)?(?:else\s+)?(if|elif|switch|match|case)\b`)},
	{KindVariable, regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var|val)\s+([A-Za-z_$][\w$]*)`)},
	{KindVariable, regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*:=`)},
	{KindVariable, regexp.MustCompile(`^\s*([A-Za-z_]\w*)\s*=[^=]`)},
	{KindReturn, regexp.MustCompile(`^\s*(return)\b`)},
}

// Scan extracts up to limit elements from source, at most one per line.
// Line numbers start at 1.
func Scan(source string, limit int) []Element {
	var elements []Element
	for i, line := range strings.Split(source, "\n") {
		if limit > 0 && len(elements) >= limit {
			break
		}
		if isBlankOrComment(line) {
			continue
		}
		for _, p := range patterns {
			match := p.re.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			elements = append(elements, Element{Kind: p.kind, Name: match[1], Line: i + 1})
			break
		}
	}
	return elements
}

func isBlankOrComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "":
		return true
	case strings.HasPrefix(trimmed, "#include"):
		return false
	case strings.HasPrefix(trimmed, "//"),
		strings.HasPrefix(trimmed, "#"),
		strings.HasPrefix(trimmed, "/*"),
		strings.HasPrefix(trimmed, "*"),
		strings.HasPrefix(trimmed, "--"):
		return true
	}
	return false
}
