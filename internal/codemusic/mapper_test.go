package codemusic

import (
	"strings"
	"testing"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJS = `import React from 'react';
// a comment line

class User {
  constructor(name) {
    this.name = name;
  }
}

function greet(user) {
  if (user.admin) {
    return "hi admin";
  }
  for (const x of items) {
    console.log(x);
  }
  const total = 3;
  return "hi";
}

const add = (a, b) => a + b;
`

func TestScan_JavaScript(t *testing.T) {
	elements := Scan(sampleJS, 0)

	want := []Element{
		{Kind: KindImport, Name: "react", Line: 1},
		{Kind: KindClass, Name: "User", Line: 4},
		{Kind: KindFunction, Name: "greet", Line: 10},
		{Kind: KindConditional, Name: "if", Line: 11},
		{Kind: KindReturn, Name: "return", Line: 12},
		{Kind: KindLoop, Name: "for", Line: 14},
		{Kind: KindVariable, Name: "total", Line: 17},
		{Kind: KindReturn, Name: "return", Line: 18},
		{Kind: KindFunction, Name: "add", Line: 21},
	}
	assert.Equal(t, want, elements)
}

func TestScan_GoAndPython(t *testing.T) {
	goSrc := "package main\n\nimport \"fmt\"\n\ntype Server struct {\n}\n\nfunc (s *Server) Start() {\n\tx := 1\n\tfor i := 0; i < x; i++ {\n\t}\n}\n"
	elements := Scan(goSrc, 0)
	require.Len(t, elements, 5)
	assert.Equal(t, Element{Kind: KindImport, Name: "fmt", Line: 3}, elements[0])
	assert.Equal(t, Element{Kind: KindClass, Name: "Server", Line: 5}, elements[1])
	assert.Equal(t, Element{Kind: KindFunction, Name: "Start", Line: 8}, elements[2])
	assert.Equal(t, Element{Kind: KindVariable, Name: "x", Line: 9}, elements[3])
	assert.Equal(t, Element{Kind: KindLoop, Name: "for", Line: 10}, elements[4])

	pySrc := "from os import path\n# comment\nclass Admin:\n    def run(self):\n        while True:\n            pass\n"
	elements = Scan(pySrc, 0)
	require.Len(t, elements, 4)
	assert.Equal(t, Element{Kind: KindImport, Name: "os", Line: 1}, elements[0])
	assert.Equal(t, Element{Kind: KindClass, Name: "Admin", Line: 3}, elements[1])
	assert.Equal(t, Element{Kind: KindFunction, Name: "run", Line: 4}, elements[2])
	assert.Equal(t, Element{Kind: KindLoop, Name: "while", Line: 5}, elements[3])
}

func TestScan_Limit(t *testing.T) {
	src := strings.Repeat("x = 1\n", 20)
	assert.Len(t, Scan(src, 5), 5)
}

func TestElementSeed(t *testing.T) {
	assert.Equal(t, "class-User-1", Element{Kind: KindClass, Name: "User", Line: 1}.Seed())
}

func TestMap_SingleClass(t *testing.T) {
	m := NewMapper(nil, 0)

	comp, err := m.Map("class User {}", Options{})
	require.NoError(t, err)

	assert.Equal(t, "C major", comp.Key)
	assert.Equal(t, theory.GenrePop, comp.Genre)
	assert.Equal(t, DefaultBPM, comp.BPM)
	assert.Equal(t, []string{"C", "G", "Am", "F"}, comp.Progression.Chords)
	require.Len(t, comp.Notes, 1)
	assert.Equal(t, models.NoteEvent{MidiNoteNumber: 36, Velocity: 88, StartBeats: 0, DurationBeats: 4}, comp.Notes[0])
	assert.Equal(t, 4.0, comp.TotalBeats)
	require.Len(t, comp.Chords, 4)
	assert.Equal(t, models.ChordEvent{ChordSymbol: "Am", StartBeats: 8, DurationBeats: 4}, comp.Chords[2])
}

func TestMap_VariationChangesOutput(t *testing.T) {
	m := NewMapper(nil, 0)

	comp, err := m.Map("class User {}", Options{Variation: 5})
	require.NoError(t, err)

	assert.Equal(t, []string{"Am", "F", "C", "G"}, comp.Progression.Chords)
	require.Len(t, comp.Notes, 1)
	assert.Equal(t, 52, comp.Notes[0].MidiNoteNumber)
	assert.Equal(t, 99, comp.Notes[0].Velocity)
}

func TestMap_Deterministic(t *testing.T) {
	m := NewMapper(nil, 0)
	opts := Options{Key: "E minor", Genre: "hiphop", BPM: 90, Variation: 2}

	first, err := m.Map(sampleJS, opts)
	require.NoError(t, err)
	second, err := m.Map(sampleJS, opts)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "E minor", first.Key)
	assert.Equal(t, 90, first.BPM)
	assert.Len(t, first.Notes, len(first.Elements))
}

func TestMap_NotesFollowChordUnderCursor(t *testing.T) {
	m := NewMapper(nil, 0)
	comp, err := m.Map(sampleJS, Options{Key: "G"})
	require.NoError(t, err)

	cursor := 0.0
	for i, note := range comp.Notes {
		assert.Equal(t, cursor, note.StartBeats, "note %d", i)
		cursor += note.DurationBeats

		chord := comp.Progression.Chords[chordIndex(note.StartBeats, len(comp.Progression.Chords))]
		tones, err := theory.ChordToMIDI(chord, voices[comp.Elements[i].Kind].octave)
		require.NoError(t, err)
		assert.Contains(t, tones, note.MidiNoteNumber)
		assert.Greater(t, note.Velocity, 0)
	}
	assert.Equal(t, cursor, comp.TotalBeats)
}

func TestMap_Errors(t *testing.T) {
	m := NewMapper(nil, 10)

	_, err := m.Map("   \n\t", Options{})
	assert.ErrorIs(t, err, ErrEmptySource)

	_, err = m.Map("class VeryLongName {}", Options{})
	assert.ErrorIs(t, err, ErrSourceTooLarge)

	_, err = m.Map("x = 1", Options{Variation: -1})
	assert.ErrorIs(t, err, ErrInvalidVariation)

	_, err = m.Map("x = 1", Options{Key: "H major"})
	assert.ErrorIs(t, err, theory.ErrUnsupportedKey)
}

func TestMap_ZeroValueLimitsUseDefaults(t *testing.T) {
	m := &Mapper{Generator: theory.NewGenerator(nil)}
	comp, err := m.Map("class User {}", Options{})
	require.NoError(t, err)
	require.Len(t, comp.Notes, 1)

	_, err = (&Mapper{}).Map("function main() {}", Options{})
	require.NoError(t, err)

	_, err = m.Map(strings.Repeat("x", DefaultMaxBytes+1), Options{})
	assert.ErrorIs(t, err, ErrSourceTooLarge)
}

func TestMap_NoRecognisedElements(t *testing.T) {
	m := NewMapper(nil, 0)
	comp, err := m.Map("}}}\n)))", Options{})
	require.NoError(t, err)
	assert.Empty(t, comp.Notes)
	assert.Len(t, comp.Chords, len(comp.Progression.Chords))
}

func TestMap_BPMClamped(t *testing.T) {
	m := NewMapper(nil, 0)
	comp, err := m.Map("x = 1", Options{BPM: 1000})
	require.NoError(t, err)
	assert.Equal(t, maxBPM, comp.BPM)
}
