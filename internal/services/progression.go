package services

import (
	"context"
	"errors"
	"time"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/codemusic"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/logger"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/metrics"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
)

// ProgressionRequest is a validated progression request
type ProgressionRequest struct {
	RequestID string
	Key       string
	Genre     string
	Seed      *int64 // Optional; picks the template deterministically
}

// CodeMusicRequest is a validated code-to-music request
type CodeMusicRequest struct {
	RequestID string
	Code      string
	Options   codemusic.Options
}

// ProgressionService runs the generators and reports on what they produced
type ProgressionService struct {
	generator *theory.Generator
	mapper    *codemusic.Mapper
	history   HistoryStore
	recorder  metrics.Recorder
	sentry    *metrics.SentryMetrics
}

// NewProgressionService wires the generators to history and metrics.
// history and recorder may be nil.
func NewProgressionService(history HistoryStore, recorder metrics.Recorder, codeMaxBytes int) *ProgressionService {
	s := &ProgressionService{
		history:  history,
		recorder: recorder,
		sentry:   metrics.NewSentryMetrics(),
	}
	s.generator = theory.NewGenerator(s.onFallback)
	s.mapper = codemusic.NewMapper(s.generator, codeMaxBytes)
	return s
}

func (s *ProgressionService) onFallback(f theory.Fallback) {
	logger.Debug("Generator fallback", logger.Fields{
		"kind":    f.Kind,
		"value":   f.Value,
		"default": f.Default,
	})
	if s.recorder != nil {
		s.recorder.RecordFallback(f.Kind)
	}
}

// Generate builds a chord progression
func (s *ProgressionService) Generate(ctx context.Context, req ProgressionRequest) (*theory.Progression, error) {
	start := time.Now()

	var (
		p   *theory.Progression
		err error
	)
	if req.Seed != nil {
		p, err = s.generator.GenerateSeeded(req.Key, req.Genre, *req.Seed)
	} else {
		p, err = s.generator.Generate(req.Key, req.Genre)
	}
	if err != nil {
		return nil, err
	}

	s.finish(ctx, req.RequestID, models.KindProgression, p, 0, time.Since(start))
	return p, nil
}

// Summary returns the display form of a fresh progression
func (s *ProgressionService) Summary(ctx context.Context, req ProgressionRequest) (string, error) {
	p, err := s.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return p.Summary(), nil
}

// CodeToMusic maps source code onto a composition
func (s *ProgressionService) CodeToMusic(ctx context.Context, req CodeMusicRequest) (*codemusic.Composition, error) {
	start := time.Now()

	comp, err := s.mapper.Map(req.Code, req.Options)
	if err != nil {
		return nil, err
	}

	s.finish(ctx, req.RequestID, models.KindCodeMusic, comp.Progression, len(comp.Notes), time.Since(start))
	return comp, nil
}

// HashResult is the hash of an input and its varied value
type HashResult struct {
	Hash      int64 `json:"hash"`
	Variation int   `json:"variation"`
	Value     int64 `json:"value"`
}

// Hash exposes the deterministic hash used by code-to-music
func (s *ProgressionService) Hash(input string, variation int) HashResult {
	h := codemusic.Hash(input)
	return HashResult{
		Hash:      h,
		Variation: variation,
		Value:     h + int64(variation),
	}
}

func (s *ProgressionService) finish(ctx context.Context, requestID, kind string, p *theory.Progression, noteCount int, duration time.Duration) {
	logger.LogGeneration(ctx, kind, duration, logger.Fields{
		"request_id": requestID,
		"key":        p.Key.String(),
		"genre":      p.Genre,
		"chords":     p.Summary(),
		"fallback":   p.Fallback,
	})
	s.sentry.RecordGeneration(ctx, kind, p.Genre, duration, p.Fallback)
	if s.recorder != nil {
		s.recorder.RecordGeneration(kind, p.Genre, duration, p.Fallback)
	}

	if s.history == nil {
		return
	}
	record := &models.GenerationRecord{
		RequestID:     requestID,
		Kind:          kind,
		Key:           p.Key.String(),
		Genre:         p.Genre,
		Chords:        models.JoinList(p.Chords),
		RomanNumerals: models.JoinList(p.RomanNumerals),
		Description:   p.Description,
		Fallback:      p.Fallback,
		NoteCount:     noteCount,
	}
	if err := s.history.Save(ctx, record); err != nil && !errors.Is(err, ErrHistoryDisabled) {
		logger.Error("Failed to save generation history", err, logger.Fields{
			"request_id": requestID,
			"kind":       kind,
		})
	}
}
