package theory

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Mode is the tonality of a key.
type Mode string

const (
	ModeMajor Mode = "major"
	ModeMinor Mode = "minor"
)

// Key is a tonic pitch class plus a mode.
type Key struct {
	Root string `json:"root"`
	Mode Mode   `json:"mode"`
}

// String returns the canonical name, e.g. "F# minor".
func (k Key) String() string {
	return k.Root + " " + string(k.Mode)
}

// Notes returns a copy of the key's seven diatonic pitch classes.
func (k Key) Notes() ([]string, error) {
	return ScaleNotes(k.Root, k.Mode)
}

// Diatonic pitch classes spelled after their key signatures.
var majorKeys = map[string][7]string{
	"C":  {"C", "D", "E", "F", "G", "A", "B"},
	"G":  {"G", "A", "B", "C", "D", "E", "F#"},
	"D":  {"D", "E", "F#", "G", "A", "B", "C#"},
	"A":  {"A", "B", "C#", "D", "E", "F#", "G#"},
	"E":  {"E", "F#", "G#", "A", "B", "C#", "D#"},
	"B":  {"B", "C#", "D#", "E", "F#", "G#", "A#"},
	"F#": {"F#", "G#", "A#", "B", "C#", "D#", "E#"},
	"Db": {"Db", "Eb", "F", "Gb", "Ab", "Bb", "C"},
	"Ab": {"Ab", "Bb", "C", "Db", "Eb", "F", "G"},
	"Eb": {"Eb", "F", "G", "Ab", "Bb", "C", "D"},
	"Bb": {"Bb", "C", "D", "Eb", "F", "G", "A"},
	"F":  {"F", "G", "A", "Bb", "C", "D", "E"},
}

var minorKeys = map[string][7]string{
	"A":  {"A", "B", "C", "D", "E", "F", "G"},
	"E":  {"E", "F#", "G", "A", "B", "C", "D"},
	"B":  {"B", "C#", "D", "E", "F#", "G", "A"},
	"F#": {"F#", "G#", "A", "B", "C#", "D", "E"},
	"C#": {"C#", "D#", "E", "F#", "G#", "A", "B"},
	"G#": {"G#", "A#", "B", "C#", "D#", "E", "F#"},
	"Eb": {"Eb", "F", "Gb", "Ab", "Bb", "Cb", "Db"},
	"Bb": {"Bb", "C", "Db", "Eb", "F", "Gb", "Ab"},
	"F":  {"F", "G", "Ab", "Bb", "C", "Db", "Eb"},
	"C":  {"C", "D", "Eb", "F", "G", "Ab", "Bb"},
	"G":  {"G", "A", "Bb", "C", "D", "Eb", "F"},
	"D":  {"D", "E", "F", "G", "A", "Bb", "C"},
}

// Roots spelled differently from the tables above.
var majorEnharmonics = map[string]string{
	"C#": "Db",
	"D#": "Eb",
	"G#": "Ab",
	"A#": "Bb",
	"Gb": "F#",
	"Cb": "B",
}

var minorEnharmonics = map[string]string{
	"Db": "C#",
	"Ab": "G#",
	"A#": "Bb",
	"D#": "Eb",
	"Gb": "F#",
}

// ScaleNotes looks up the diatonic notes for root and mode.
func ScaleNotes(root string, mode Mode) ([]string, error) {
	table, aliases := tablesFor(mode)
	if table == nil {
		return nil, newUnsupportedKeyError(root + " " + string(mode))
	}

	if alias, ok := aliases[root]; ok {
		root = alias
	}
	notes, ok := table[root]
	if !ok {
		return nil, newUnsupportedKeyError(root + " " + string(mode))
	}

	out := make([]string, len(notes))
	copy(out, notes[:])
	return out, nil
}

func tablesFor(mode Mode) (map[string][7]string, map[string]string) {
	switch mode {
	case ModeMajor:
		return majorKeys, majorEnharmonics
	case ModeMinor:
		return minorKeys, minorEnharmonics
	default:
		return nil, nil
	}
}

// ParseKey reads key strings such as "C", "Bb major", "F#m", "A minor" or
// "Ebmin". A bare root is major. The returned Key uses the table spelling
// of the root, so "C# major" comes back as "Db major".
func ParseKey(s string) (Key, error) {
	raw := s
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("♯", "#", "♭", "b").Replace(s)
	if s == "" {
		return Key{}, newUnsupportedKeyError(raw)
	}

	letter := unicode.ToUpper(rune(s[0]))
	if letter < 'A' || letter > 'G' {
		return Key{}, newUnsupportedKeyError(raw)
	}
	root := string(letter)
	rest := s[1:]
	if len(rest) > 0 && (rest[0] == '#' || rest[0] == 'b') {
		// "bb" is B flat, but "Bbm" must not swallow the mode letter
		root += string(rest[0])
		rest = rest[1:]
	}

	mode, ok := parseMode(rest)
	if !ok {
		return Key{}, newUnsupportedKeyError(raw)
	}

	table, aliases := tablesFor(mode)
	if alias, found := aliases[root]; found {
		root = alias
	}
	if _, found := table[root]; !found {
		return Key{}, newUnsupportedKeyError(raw)
	}

	return Key{Root: root, Mode: mode}, nil
}

func parseMode(s string) (Mode, bool) {
	trimmed := strings.TrimSpace(strings.TrimLeft(s, " -_"))
	if trimmed == "" && s != "" {
		// separator with no mode after it, e.g. "A-"
		return "", false
	}
	s = trimmed

	// Case carries meaning for the single-letter forms.
	switch s {
	case "":
		return ModeMajor, true
	case "M":
		return ModeMajor, true
	case "m":
		return ModeMinor, true
	}

	switch strings.ToLower(s) {
	case "maj", "major":
		return ModeMajor, true
	case "min", "minor":
		return ModeMinor, true
	}
	return "", false
}

// SupportedKeys lists every key in the table, majors first.
func SupportedKeys() []Key {
	keys := make([]Key, 0, len(majorKeys)+len(minorKeys))
	for _, mode := range []Mode{ModeMajor, ModeMinor} {
		table, _ := tablesFor(mode)
		roots := make([]string, 0, len(table))
		for root := range table {
			roots = append(roots, root)
		}
		sort.Slice(roots, func(i, j int) bool {
			return circleIndex(roots[i], mode) < circleIndex(roots[j], mode)
		})
		for _, root := range roots {
			keys = append(keys, Key{Root: root, Mode: mode})
		}
	}
	return keys
}

// circleIndex orders roots around the circle of fifths starting at C / A.
func circleIndex(root string, mode Mode) int {
	order := []string{"C", "G", "D", "A", "E", "B", "F#", "Db", "Ab", "Eb", "Bb", "F"}
	if mode == ModeMinor {
		order = []string{"A", "E", "B", "F#", "C#", "G#", "Eb", "Bb", "F", "C", "G", "D"}
	}
	for i, r := range order {
		if r == root {
			return i
		}
	}
	panic(fmt.Sprintf("theory: root %q missing from circle order", root))
}
