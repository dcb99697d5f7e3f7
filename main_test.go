package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterSensitiveHeaders(t *testing.T) {
	got := filterSensitiveHeaders(map[string]string{
		"Authorization": "Bearer abc",
		"cookie":        "session=1",
		"Content-Type":  "application/json",
	})

	assert.Equal(t, "[REDACTED]", got["Authorization"])
	assert.Equal(t, "[REDACTED]", got["cookie"])
	assert.Equal(t, "application/json", got["Content-Type"])
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, releaseVersion, GetVersion())
}
