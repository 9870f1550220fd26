package logging

import (
	"log/slog"
	"testing"
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestApplyAttrMapsKnownKeys(t *testing.T) {
	var entry models.SystemLog
	extra := map[string]any{}

	applyAttr(&entry, extra, slog.String("user_id", "u-1"))
	applyAttr(&entry, extra, slog.String("story_id", "s-1"))
	applyAttr(&entry, extra, slog.String("backend", "gemini"))
	applyAttr(&entry, extra, slog.String("action", "generate_story"))
	applyAttr(&entry, extra, slog.Duration("latency_ms", 1500*time.Millisecond))
	applyAttr(&entry, extra, slog.Int("images", 2))

	if assert.NotNil(t, entry.UserID) {
		assert.Equal(t, "u-1", *entry.UserID)
	}
	if assert.NotNil(t, entry.StoryID) {
		assert.Equal(t, "s-1", *entry.StoryID)
	}
	assert.Equal(t, "gemini", entry.Backend)
	assert.Equal(t, "generate_story", entry.Action)
	assert.Equal(t, 1500, entry.LatencyMs)
	assert.Equal(t, int64(2), extra["images"])
}

func TestPGHandlerOnlyAcceptsErrors(t *testing.T) {
	h := &PGHandler{}
	assert.False(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}
