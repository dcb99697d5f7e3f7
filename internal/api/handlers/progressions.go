package handlers

import (
	"errors"
	"net/http"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/api/middleware"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/codemusic"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/logger"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/services"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
	"github.com/gin-gonic/gin"
)

type ProgressionHandler struct {
	service *services.ProgressionService
}

func NewProgressionHandler(service *services.ProgressionService) *ProgressionHandler {
	return &ProgressionHandler{service: service}
}

type ProgressionRequest struct {
	Key      string `json:"key" binding:"required"`
	Genre    string `json:"genre"`
	Seed     *int64 `json:"seed"`     // Optional; same seed, same template
	Voicings bool   `json:"voicings"` // Include MIDI note numbers per chord
	Octave   *int   `json:"octave"`   // Voicing octave, defaults to 4 (C4 = 60)
}

type ProgressionResponse struct {
	RequestID     string           `json:"request_id"`
	Key           string           `json:"key"`
	Genre         string           `json:"genre"`
	Chords        []string         `json:"chords"`
	RomanNumerals []string         `json:"roman_numerals"`
	Description   string           `json:"description"`
	Summary       string           `json:"summary"`
	Fallback      bool             `json:"fallback"`
	Voicings      []theory.Voicing `json:"voicings,omitempty"`
}

// Generate builds a chord progression for a key and genre
func (h *ProgressionHandler) Generate(c *gin.Context) {
	var req ProgressionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	octave := defaultVoicingOctave
	if req.Octave != nil {
		octave = *req.Octave
	}
	if req.Voicings && (octave < minVoicingOctave || octave > maxVoicingOctave) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "octave must be between -1 and 9"})
		return
	}

	requestID := c.GetString(middleware.RequestIDKey)
	p, err := h.service.Generate(c.Request.Context(), services.ProgressionRequest{
		RequestID: requestID,
		Key:       req.Key,
		Genre:     req.Genre,
		Seed:      req.Seed,
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	resp := ProgressionResponse{
		RequestID:     requestID,
		Key:           p.Key.String(),
		Genre:         p.Genre,
		Chords:        p.Chords,
		RomanNumerals: p.RomanNumerals,
		Description:   p.Description,
		Summary:       p.Summary(),
		Fallback:      p.Fallback,
	}
	if req.Voicings {
		voicings, err := p.Voicings(octave)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		resp.Voicings = voicings
	}

	c.JSON(http.StatusOK, resp)
}

// Summary returns a fresh progression as display text
func (h *ProgressionHandler) Summary(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key query parameter is required"})
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), services.ProgressionRequest{
		RequestID: c.GetString(middleware.RequestIDKey),
		Key:       key,
		Genre:     c.Query("genre"),
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// writeGenerationError maps input failures to 400 and anything else to 500
func writeGenerationError(c *gin.Context, err error) {
	var keyErr *theory.UnsupportedKeyError
	switch {
	case errors.As(err, &keyErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unsupported key",
			"key":   keyErr.Key,
		})
	case errors.Is(err, codemusic.ErrEmptySource),
		errors.Is(err, codemusic.ErrSourceTooLarge),
		errors.Is(err, codemusic.ErrInvalidVariation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Generation failed", err, logger.WithContext(c))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":      "Generation failed",
			"request_id": c.GetString(middleware.RequestIDKey),
		})
	}
}
