package handlers

import (
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/database"
	"github.com/Anway001/AI-Memory-Space/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReadinessReporter reports whether an optional dependency is warmed up.
type ReadinessReporter interface {
	Ready() bool
}

type HealthHandler struct {
	db      *gorm.DB
	backend string
	tts     ReadinessReporter
}

// NewHealthHandler builds the health check. tts may be nil when narration is off.
func NewHealthHandler(db *gorm.DB, backend string, tts ReadinessReporter) *HealthHandler {
	return &HealthHandler{db: db, backend: backend, tts: tts}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	ttsStatus := "disabled"
	if h.tts != nil {
		ttsStatus = "cold"
		if h.tts.Ready() {
			ttsStatus = "loaded"
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Generator: h.backend,
		TTS:       ttsStatus,
	})
}
