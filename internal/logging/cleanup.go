package logging

import (
	"log/slog"
	"time"

	"github.com/Anway001/AI-Memory-Space/internal/models"
	"gorm.io/gorm"
)

// StartCleanup prunes system_logs older than retentionDays once a day until done is closed.
func StartCleanup(db *gorm.DB, retentionDays int, done <-chan struct{}) {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				pruneSystemLogs(db, retentionDays)
			case <-done:
				return
			}
		}
	}()
}

func pruneSystemLogs(db *gorm.DB, retentionDays int) int64 {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("system log cleanup failed", "action", "log_cleanup", "error", result.Error)
		return 0
	}
	if result.RowsAffected > 0 {
		slog.Info("system log cleanup completed", "deleted", result.RowsAffected, "retention_days", retentionDays)
	}
	return result.RowsAffected
}
