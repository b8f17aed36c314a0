package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeKVsRedactsCredentials(t *testing.T) {
	got := sanitizeKVs([]interface{}{"api_token", "abc", "course_id", 7, "Authorization", "Bearer x", "dangling"})
	assert.Equal(t, []interface{}{"api_token", "[REDACTED]", "course_id", 7, "Authorization", "[REDACTED]", "dangling"}, got)
}

func TestNewTestModeIsNop(t *testing.T) {
	l, err := New("test")
	assert.NoError(t, err)
	l.Info("discarded", "token", "x")
	l.With("component", "x").Debug("discarded")
}
