package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics records request and generation spans in Sentry.
// It is a no-op until a Sentry client is bound to the current hub.
type SentryMetrics struct{}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{}
}

// Enabled reports whether a Sentry client is configured
func (m *SentryMetrics) Enabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.Enabled() {
		return
	}

	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordGeneration records a progression or code-to-music generation
func (m *SentryMetrics) RecordGeneration(ctx context.Context, kind, genre string, duration time.Duration, fallback bool) {
	if !m.Enabled() {
		return
	}

	span := sentry.StartSpan(ctx, "generation."+kind)
	defer span.Finish()

	span.SetTag("genre", genre)
	span.SetTag("fallback", fmt.Sprintf("%t", fallback))
	span.SetData("duration_us", duration.Microseconds())
	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Generation: %s (%s)", kind, genre)
}
