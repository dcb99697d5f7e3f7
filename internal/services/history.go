package services

import (
	"context"
	"errors"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

var (
	// ErrHistoryDisabled is returned when no database is configured
	ErrHistoryDisabled = errors.New("generation history is disabled")
	// ErrRecordNotFound is returned for unknown record IDs
	ErrRecordNotFound = errors.New("generation record not found")
)

// HistoryStore persists generation results
type HistoryStore interface {
	Save(ctx context.Context, record *models.GenerationRecord) error
	Recent(ctx context.Context, limit int) ([]models.GenerationRecord, error)
	Get(ctx context.Context, id uuid.UUID) (*models.GenerationRecord, error)
}

// HistoryService stores generation records with gorm. A nil db disables it.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// Save inserts a record
func (s *HistoryService) Save(ctx context.Context, record *models.GenerationRecord) error {
	if s.db == nil {
		return ErrHistoryDisabled
	}
	return s.db.WithContext(ctx).Create(record).Error
}

// Recent returns the newest records first
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]models.GenerationRecord, error) {
	if s.db == nil {
		return nil, ErrHistoryDisabled
	}

	var records []models.GenerationRecord
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(ClampHistoryLimit(limit)).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Get loads a single record
func (s *HistoryService) Get(ctx context.Context, id uuid.UUID) (*models.GenerationRecord, error) {
	if s.db == nil {
		return nil, ErrHistoryDisabled
	}

	var record models.GenerationRecord
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ClampHistoryLimit keeps page sizes within 1..100, defaulting to 20
func ClampHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultHistoryLimit
	case limit > maxHistoryLimit:
		return maxHistoryLimit
	default:
		return limit
	}
}
