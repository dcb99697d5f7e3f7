package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asume21/Codedswitchmonatize-sub012/internal/codemusic"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/models"
	"github.com/asume21/Codedswitchmonatize-sub012/internal/theory"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryHistory is an in-process HistoryStore
type memoryHistory struct {
	mu      sync.Mutex
	records []models.GenerationRecord
	saveErr error
}

func (m *memoryHistory) Save(_ context.Context, r *models.GenerationRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := r.BeforeCreate(nil); err != nil {
		return err
	}
	m.records = append(m.records, *r)
	return nil
}

func (m *memoryHistory) Recent(_ context.Context, limit int) ([]models.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	limit = min(ClampHistoryLimit(limit), len(m.records))
	out := make([]models.GenerationRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *memoryHistory) Get(_ context.Context, id uuid.UUID) (*models.GenerationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, ErrRecordNotFound
}

type recordedGeneration struct {
	kind, genre string
	fallback    bool
}

type fakeRecorder struct {
	mu          sync.Mutex
	generations []recordedGeneration
	fallbacks   []string
}

func (f *fakeRecorder) RecordAPIRequest(string, int, time.Duration) {}

func (f *fakeRecorder) RecordGeneration(kind, genre string, _ time.Duration, fallback bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generations = append(f.generations, recordedGeneration{kind, genre, fallback})
}

func (f *fakeRecorder) RecordFallback(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fallbacks = append(f.fallbacks, kind)
}

func TestProgressionService_GenerateSeeded(t *testing.T) {
	history := &memoryHistory{}
	recorder := &fakeRecorder{}
	svc := NewProgressionService(history, recorder, 0)

	seed := int64(0)
	p, err := svc.Generate(context.Background(), ProgressionRequest{
		RequestID: "req-1",
		Key:       "C",
		Genre:     "pop",
		Seed:      &seed,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "G", "Am", "F"}, p.Chords)

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, "req-1", rec.RequestID)
	assert.Equal(t, models.KindProgression, rec.Kind)
	assert.Equal(t, "C major", rec.Key)
	assert.Equal(t, "C,G,Am,F", rec.Chords)
	assert.Equal(t, "I,V,vi,IV", rec.RomanNumerals)
	assert.NotEqual(t, uuid.Nil, rec.ID)

	assert.Equal(t, []recordedGeneration{{models.KindProgression, "pop", false}}, recorder.generations)
	assert.Empty(t, recorder.fallbacks)
}

func TestProgressionService_GenreFallbackIsReported(t *testing.T) {
	recorder := &fakeRecorder{}
	svc := NewProgressionService(nil, recorder, 0)

	p, err := svc.Generate(context.Background(), ProgressionRequest{Key: "G", Genre: "polka"})
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, theory.GenrePop, p.Genre)
	assert.Equal(t, []string{theory.FallbackGenre}, recorder.fallbacks)
}

func TestProgressionService_FallbackLeavesOneBreadcrumb(t *testing.T) {
	var (
		mu      sync.Mutex
		crumbed []string
	)
	require.NoError(t, sentry.Init(sentry.ClientOptions{
		BeforeBreadcrumb: func(b *sentry.Breadcrumb, _ *sentry.BreadcrumbHint) *sentry.Breadcrumb {
			mu.Lock()
			defer mu.Unlock()
			crumbed = append(crumbed, b.Message)
			return nil
		},
	}))
	t.Cleanup(func() { sentry.CurrentHub().BindClient(nil) })

	svc := NewProgressionService(nil, nil, 0)
	_, err := svc.Generate(context.Background(), ProgressionRequest{Key: "C", Genre: "polka"})
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	fallbacks := 0
	for _, msg := range crumbed {
		if strings.Contains(strings.ToLower(msg), "fallback") {
			fallbacks++
		}
	}
	assert.Equal(t, 1, fallbacks, crumbed)
}

func TestProgressionService_UnsupportedKey(t *testing.T) {
	history := &memoryHistory{}
	recorder := &fakeRecorder{}
	svc := NewProgressionService(history, recorder, 0)

	_, err := svc.Generate(context.Background(), ProgressionRequest{Key: "H major", Genre: "pop"})
	assert.ErrorIs(t, err, theory.ErrUnsupportedKey)
	assert.Empty(t, history.records)
	assert.Empty(t, recorder.generations)
}

func TestProgressionService_HistoryFailureDoesNotFail(t *testing.T) {
	history := &memoryHistory{saveErr: errors.New("db down")}
	svc := NewProgressionService(history, nil, 0)

	summary, err := svc.Summary(context.Background(), ProgressionRequest{Key: "D", Genre: "rock"})
	require.NoError(t, err)
	assert.Contains(t, summary, " - ")
}

func TestProgressionService_DisabledHistoryIsQuiet(t *testing.T) {
	svc := NewProgressionService(NewHistoryService(nil), nil, 0)

	_, err := svc.Generate(context.Background(), ProgressionRequest{Key: "D", Genre: "rock"})
	require.NoError(t, err)
}

func TestProgressionService_CodeToMusic(t *testing.T) {
	history := &memoryHistory{}
	recorder := &fakeRecorder{}
	svc := NewProgressionService(history, recorder, 0)

	comp, err := svc.CodeToMusic(context.Background(), CodeMusicRequest{
		RequestID: "req-2",
		Code:      "class User {}\nfunction main() {}\n",
		Options:   codemusic.Options{Genre: "jazz", Variation: 1},
	})
	require.NoError(t, err)
	assert.Len(t, comp.Notes, 2)
	assert.Equal(t, theory.GenreJazz, comp.Genre)

	require.Len(t, history.records, 1)
	assert.Equal(t, models.KindCodeMusic, history.records[0].Kind)
	assert.Equal(t, 2, history.records[0].NoteCount)
	assert.Equal(t, []recordedGeneration{{models.KindCodeMusic, theory.GenreJazz, false}}, recorder.generations)

	_, err = svc.CodeToMusic(context.Background(), CodeMusicRequest{Code: "  "})
	assert.ErrorIs(t, err, codemusic.ErrEmptySource)
}

func TestProgressionService_Hash(t *testing.T) {
	svc := NewProgressionService(nil, nil, 0)

	res := svc.Hash("class-User-1", 5)
	assert.Equal(t, int64(2098216764), res.Hash)
	assert.Equal(t, int64(2098216769), res.Value)
	assert.Equal(t, 5, res.Variation)
}

func TestClampHistoryLimit(t *testing.T) {
	assert.Equal(t, 20, ClampHistoryLimit(0))
	assert.Equal(t, 20, ClampHistoryLimit(-4))
	assert.Equal(t, 7, ClampHistoryLimit(7))
	assert.Equal(t, 100, ClampHistoryLimit(500))
}

func TestHistoryService_Disabled(t *testing.T) {
	svc := NewHistoryService(nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Save(ctx, &models.GenerationRecord{}), ErrHistoryDisabled)
	_, err := svc.Recent(ctx, 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
