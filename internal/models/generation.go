package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Generation kinds
const (
	KindProgression = "progression"
	KindCodeMusic   = "code_music"
)

// GenerationRecord is one stored generation result
type GenerationRecord struct {
	ID            uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt     time.Time `gorm:"index" json:"created_at"`
	RequestID     string    `gorm:"index" json:"request_id"`
	Kind          string    `gorm:"not null;index" json:"kind"`
	Key           string    `gorm:"not null" json:"key"`
	Genre         string    `gorm:"not null" json:"genre"`
	Chords        string    `gorm:"type:text;not null" json:"chords"`         // Comma-separated
	RomanNumerals string    `gorm:"type:text;not null" json:"roman_numerals"` // Comma-separated
	Description   string    `json:"description"`
	Fallback      bool      `gorm:"default:false" json:"fallback"`
	NoteCount     int       `gorm:"default:0" json:"note_count"`
}

// BeforeCreate assigns an ID if none was set
func (r *GenerationRecord) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ChordList splits the stored chords
func (r *GenerationRecord) ChordList() []string {
	return splitList(r.Chords)
}

// NumeralList splits the stored roman numerals
func (r *GenerationRecord) NumeralList() []string {
	return splitList(r.RomanNumerals)
}

// JoinList is the storage form for chord and numeral lists
func JoinList(items []string) string {
	return strings.Join(items, ",")
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
