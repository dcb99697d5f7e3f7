package theory

import (
	"strings"
	"unicode"
)

// Quality is the interval structure of a chord.
type Quality string

const (
	QualityMajor      Quality = "major"
	QualityMinor      Quality = "minor"
	QualityDiminished Quality = "diminished"
	QualityMajor7     Quality = "maj7"
	QualityMinor7     Quality = "min7"
	QualityDominant7  Quality = "dom7"
	QualityHalfDim7   Quality = "m7b5"
)

// Suffix is the chord-symbol suffix appended to the root.
func (q Quality) Suffix() string {
	switch q {
	case QualityMinor:
		return "m"
	case QualityDiminished:
		return "dim"
	case QualityMajor7:
		return "maj7"
	case QualityMinor7:
		return "m7"
	case QualityDominant7:
		return "7"
	case QualityHalfDim7:
		return "m7b5"
	default:
		return ""
	}
}

// Chord is a roman numeral resolved against a key.
type Chord struct {
	Name    string  `json:"name"`
	Root    string  `json:"root"`
	Quality Quality `json:"quality"`
	Numeral string  `json:"numeral"`
}

var numeralIndex = map[string]int{
	"I":   0,
	"II":  1,
	"III": 2,
	"IV":  3,
	"V":   4,
	"VI":  5,
	"VII": 6,
}

// Exact-token qualities, looked up before any inference.
var majorQualities = map[string]Quality{
	"I":       QualityMajor,
	"ii":      QualityMinor,
	"iii":     QualityMinor,
	"IV":      QualityMajor,
	"V":       QualityMajor,
	"vi":      QualityMinor,
	"vii":     QualityDiminished,
	"viidim":  QualityDiminished,
	"IM7":     QualityMajor7,
	"Imaj7":   QualityMajor7,
	"ii7":     QualityMinor7,
	"iim7":    QualityMinor7,
	"iii7":    QualityMinor7,
	"IVM7":    QualityMajor7,
	"V7":      QualityDominant7,
	"vi7":     QualityMinor7,
	"viim7b5": QualityHalfDim7,
	"vii7b5":  QualityHalfDim7,
	"bIII":    QualityMajor,
	"bVI":     QualityMajor,
	"bVII":    QualityMajor,
}

var minorQualities = map[string]Quality{
	"i":      QualityMinor,
	"ii":     QualityDiminished,
	"iidim":  QualityDiminished,
	"III":    QualityMajor,
	"iv":     QualityMinor,
	"v":      QualityMinor,
	"V":      QualityMajor,
	"VI":     QualityMajor,
	"VII":    QualityMajor,
	"i7":     QualityMinor7,
	"im7":    QualityMinor7,
	"iim7b5": QualityHalfDim7,
	"ii7b5":  QualityHalfDim7,
	"IIIM7":  QualityMajor7,
	"iv7":    QualityMinor7,
	"v7":     QualityMinor7,
	"V7":     QualityDominant7,
	"VIM7":   QualityMajor7,
	"VII7":   QualityDominant7,
	"bVI":    QualityMajor,
	"bVII":   QualityMajor,
}

// Stripped repeatedly until none applies, so "viim7b5" reduces to "vii".
var qualitySuffixes = []string{"b5", "M7", "m7", "maj", "min", "dim", "7"}

// baseNumeral removes quality suffixes and the flat prefix from token.
func baseNumeral(token string) (base string, flat bool) {
	base = token
	for stripped := true; stripped; {
		stripped = false
		for _, suffix := range qualitySuffixes {
			if len(base) > len(suffix) && strings.HasSuffix(base, suffix) {
				base = strings.TrimSuffix(base, suffix)
				stripped = true
			}
		}
	}
	if strings.HasPrefix(base, "b") && len(base) > 1 {
		return base[1:], true
	}
	return base, false
}

// ResolveNumeral turns a roman-numeral token into a concrete chord using the
// key's diatonic notes. A flat prefix borrows the diatonic note one step
// below rather than lowering the root chromatically. When the numeral can't
// be mapped the tonic is used and ok is false.
func ResolveNumeral(token string, notes []string, mode Mode) (chord Chord, ok bool) {
	base, flat := baseNumeral(token)

	index, ok := numeralIndex[strings.ToUpper(base)]
	if ok && flat {
		index = (index + len(numeralIndex) - 1) % len(numeralIndex)
	}
	if !ok || index >= len(notes) {
		index, ok = 0, false
	}

	root := ""
	if len(notes) > 0 {
		root = notes[index]
	}
	quality := chordQuality(token, base, mode)

	return Chord{
		Name:    root + quality.Suffix(),
		Root:    root,
		Quality: quality,
		Numeral: token,
	}, ok
}

func chordQuality(token, base string, mode Mode) Quality {
	table := majorQualities
	if mode == ModeMinor {
		table = minorQualities
	}
	if q, ok := table[token]; ok {
		return q
	}

	switch {
	case strings.Contains(token, "M7"):
		return QualityMajor7
	case strings.Contains(token, "m7"):
		return QualityMinor7
	case strings.Contains(token, "7b5"):
		return QualityHalfDim7
	case strings.Contains(token, "7"):
		return QualityDominant7
	}

	if isLower(base) {
		return QualityMinor
	}
	return QualityMajor
}

func isLower(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLetter(r) {
			hasLetter = true
		}
	}
	return hasLetter
}
