package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/logger"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HistoryHandler struct {
	store services.HistoryStore
}

func NewHistoryHandler(store services.HistoryStore) *HistoryHandler {
	return &HistoryHandler{store: store}
}

type HistoryEntry struct {
	ID            uuid.UUID `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	RequestID     string    `json:"request_id"`
	Kind          string    `json:"kind"`
	Key           string    `json:"key"`
	Genre         string    `json:"genre"`
	Chords        []string  `json:"chords"`
	RomanNumerals []string  `json:"roman_numerals"`
	Description   string    `json:"description"`
	Fallback      bool      `json:"fallback"`
	NoteCount     int       `json:"note_count,omitempty"`
}

func toHistoryEntry(r *models.GenerationRecord) HistoryEntry {
	return HistoryEntry{
		ID:            r.ID,
		CreatedAt:     r.CreatedAt,
		RequestID:     r.RequestID,
		Kind:          r.Kind,
		Key:           r.Key,
		Genre:         r.Genre,
		Chords:        r.ChordList(),
		RomanNumerals: r.NumeralList(),
		Description:   r.Description,
		Fallback:      r.Fallback,
		NoteCount:     r.NoteCount,
	}
}

// List returns recent generations, newest first
func (h *HistoryHandler) List(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}

	records, err := h.store.Recent(c.Request.Context(), limit)
	if err != nil {
		writeHistoryError(c, err)
		return
	}

	entries := make([]HistoryEntry, 0, len(records))
	for i := range records {
		entries = append(entries, toHistoryEntry(&records[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"limit":   services.ClampHistoryLimit(limit),
	})
}

// Get returns one stored generation
func (h *HistoryHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return
	}

	record, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		writeHistoryError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHistoryEntry(record))
}

func writeHistoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrHistoryDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Generation history is disabled"})
	case errors.Is(err, services.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
	default:
		logger.Error("Failed to load generation history", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load history"})
	}
}
