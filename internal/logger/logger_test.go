package logger

import (
	"bytes"
	"errors"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags := log.Writer(), log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
	})
	return &buf
}

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t,
		"{count=3, genre=pop, ratio=0.50}",
		formatFields(Fields{"genre": "pop", "count": 3, "ratio": 0.5}),
	)
}

func TestLevels(t *testing.T) {
	buf := captureLog(t)

	Info("hello", Fields{"a": 1})
	Warn("careful", nil)
	Debug("detail", Fields{"kind": "genre"})
	Error("boom", errors.New("bad"), Fields{"request_id": "r1"})

	out := buf.String()
	assert.Contains(t, out, "[INFO] hello {a=1}")
	assert.Contains(t, out, "[WARN] careful")
	assert.Contains(t, out, "[DEBUG] detail {kind=genre}")
	assert.Contains(t, out, "[ERROR] boom: bad {request_id=r1}")
}
