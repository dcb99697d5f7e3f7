package theory

import (
	"fmt"
	"strings"
)

// Semitones above the root for each quality.
var qualityIntervals = map[Quality][]int{
	QualityMajor:      {0, 4, 7},
	QualityMinor:      {0, 3, 7},
	QualityDiminished: {0, 3, 6},
	QualityMajor7:     {0, 4, 7, 11},
	QualityMinor7:     {0, 3, 7, 10},
	QualityDominant7:  {0, 4, 7, 10},
	QualityHalfDim7:   {0, 3, 6, 10},
}

var suffixQualities = map[string]Quality{
	"":     QualityMajor,
	"m":    QualityMinor,
	"min":  QualityMinor,
	"dim":  QualityDiminished,
	"maj7": QualityMajor7,
	"M7":   QualityMajor7,
	"m7":   QualityMinor7,
	"min7": QualityMinor7,
	"7":    QualityDominant7,
	"m7b5": QualityHalfDim7,
}

var letterSemitones = map[byte]int{
	'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11,
}

const (
	midiMin = 0
	midiMax = 127
)

// ChordToMIDI converts a chord symbol such as "Am", "F#m7b5" or "C/E" into
// MIDI note numbers, root position, with C4 = 60. A slash bass is added one
// octave below the chord.
func ChordToMIDI(chordSymbol string, octave int) ([]int, error) {
	baseChord := strings.TrimSpace(chordSymbol)
	bassNote := ""
	if before, after, found := strings.Cut(baseChord, "/"); found {
		baseChord = strings.TrimSpace(before)
		bassNote = strings.TrimSpace(after)
	}

	semitone, rest, err := parseRoot(baseChord)
	if err != nil {
		return nil, fmt.Errorf("invalid chord root in %q: %w", chordSymbol, err)
	}

	quality, ok := suffixQualities[rest]
	if !ok {
		return nil, fmt.Errorf("unknown chord quality %q in %q", rest, chordSymbol)
	}

	rootMIDI := noteToMIDI(semitone, octave)
	intervals := qualityIntervals[quality]

	notes := make([]int, 0, len(intervals)+1)
	if bassNote != "" {
		bassSemitone, bassRest, err := parseRoot(bassNote)
		if err != nil || bassRest != "" {
			return nil, fmt.Errorf("invalid bass note %q in %q", bassNote, chordSymbol)
		}
		if bass := noteToMIDI(bassSemitone, octave-1); inMIDIRange(bass) {
			notes = append(notes, bass)
		}
	}

	for _, interval := range intervals {
		if n := rootMIDI + interval; inMIDIRange(n) {
			notes = append(notes, n)
		}
	}

	if len(notes) == 0 {
		return nil, fmt.Errorf("no valid MIDI notes for chord %q at octave %d", chordSymbol, octave)
	}
	return notes, nil
}

// parseRoot reads a note letter and any accidentals from the front of s.
// The semitone is not wrapped, so Cb is -1 and B# is 12.
func parseRoot(s string) (semitone int, rest string, err error) {
	if s == "" {
		return 0, "", fmt.Errorf("empty note name")
	}
	semitone, ok := letterSemitones[s[0]]
	if !ok {
		return 0, "", fmt.Errorf("invalid note letter %q", s[0])
	}

	i := 1
	for ; i < len(s); i++ {
		switch s[i] {
		case '#':
			semitone++
			continue
		case 'b':
			// qualities never start with 'b', so this is always a flat
			semitone--
			continue
		}
		break
	}
	return semitone, s[i:], nil
}

func noteToMIDI(semitone, octave int) int {
	return (octave+1)*12 + semitone
}

func inMIDIRange(n int) bool {
	return n >= midiMin && n <= midiMax
}

// Voicing pairs a chord name with its MIDI notes.
type Voicing struct {
	Chord string `json:"chord"`
	Notes []int  `json:"notes"`
}

// Voicings voices every chord of the progression at octave.
func (p *Progression) Voicings(octave int) ([]Voicing, error) {
	out := make([]Voicing, 0, len(p.Chords))
	for _, name := range p.Chords {
		notes, err := ChordToMIDI(name, octave)
		if err != nil {
			return nil, err
		}
		out = append(out, Voicing{Chord: name, Notes: notes})
	}
	return out, nil
}
