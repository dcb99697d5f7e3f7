package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChordToMIDI(t *testing.T) {
	tests := []struct {
		name          string
		chordSymbol   string
		octave        int
		expectedNotes []int
	}{
		{"C major", "C", 4, []int{60, 64, 67}},
		{"A minor", "Am", 4, []int{69, 72, 76}},
		{"B diminished", "Bdim", 3, []int{59, 62, 65}},
		{"C major 7th", "Cmaj7", 4, []int{60, 64, 67, 71}},
		{"D minor 7th", "Dm7", 4, []int{62, 65, 69, 72}},
		{"G dominant 7th", "G7", 3, []int{55, 59, 62, 65}},
		{"B half-diminished", "Bm7b5", 3, []int{59, 62, 65, 69}},
		{"B flat minor", "Bbm", 3, []int{58, 61, 65}},
		{"F sharp", "F#", 4, []int{66, 70, 73}},
		{"C flat wraps down", "Cb", 4, []int{59, 63, 66}},
		{"E sharp", "E#", 4, []int{65, 69, 72}},
		{"octave 2", "C", 2, []int{36, 40, 43}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notes, err := ChordToMIDI(tt.chordSymbol, tt.octave)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedNotes, notes)
		})
	}
}

func TestChordToMIDI_SlashBass(t *testing.T) {
	notes, err := ChordToMIDI("C/E", 4)
	require.NoError(t, err)
	assert.Equal(t, []int{52, 60, 64, 67}, notes)
}

func TestChordToMIDI_Errors(t *testing.T) {
	for _, symbol := range []string{"", "H", "Cxyz", "C/H", "C/Em"} {
		t.Run(symbol, func(t *testing.T) {
			_, err := ChordToMIDI(symbol, 4)
			assert.Error(t, err)
		})
	}
}

func TestChordToMIDI_DropsOutOfRange(t *testing.T) {
	notes, err := ChordToMIDI("G", 9)
	require.NoError(t, err)
	assert.Equal(t, []int{127}, notes)

	_, err = ChordToMIDI("C", -3)
	assert.Error(t, err)
}

func TestProgressionVoicings(t *testing.T) {
	p := &Progression{Chords: []string{"C", "G", "Am", "F"}}
	voicings, err := p.Voicings(4)
	require.NoError(t, err)
	require.Len(t, voicings, 4)
	assert.Equal(t, Voicing{Chord: "Am", Notes: []int{69, 72, 76}}, voicings[2])
}
