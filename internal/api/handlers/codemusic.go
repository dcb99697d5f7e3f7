package handlers

import (
	"fmt"
	"net/http"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/api/middleware"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/codemusic"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/services"
	"github.com/gin-gonic/gin"
)

type CodeMusicRequest struct {
	Code      string `json:"code"`
	Key       string `json:"key"`
	Genre     string `json:"genre"`
	BPM       int    `json:"bpm"`
	Variation int    `json:"variation"`
}

type CodeMusicResponse struct {
	RequestID string `json:"request_id"`
	*codemusic.Composition
}

// CodeToMusic turns source code into notes over a generated progression
func (h *ProgressionHandler) CodeToMusic(c *gin.Context) {
	var req CodeMusicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	requestID := c.GetString(middleware.RequestIDKey)
	comp, err := h.service.CodeToMusic(c.Request.Context(), services.CodeMusicRequest{
		RequestID: requestID,
		Code:      req.Code,
		Options: codemusic.Options{
			Key:       req.Key,
			Genre:     req.Genre,
			BPM:       req.BPM,
			Variation: req.Variation,
		},
	})
	if err != nil {
		writeGenerationError(c, err)
		return
	}

	c.Header("X-Note-Count", fmt.Sprintf("%d", len(comp.Notes)))
	c.JSON(http.StatusOK, CodeMusicResponse{RequestID: requestID, Composition: comp})
}

type HashRequest struct {
	Input     string `json:"input"`
	Variation int    `json:"variation"`
}

// Hash returns the deterministic hash of input plus its variation offset
func (h *ProgressionHandler) Hash(c *gin.Context) {
	var req HashRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Input) > maxHashInputBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("input exceeds %d bytes", maxHashInputBytes)})
		return
	}

	c.JSON(http.StatusOK, h.service.Hash(req.Input, req.Variation))
}
