package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the stdout JSON logger used until the database is reachable.
func Setup(env string) {
	slog.SetDefault(slog.New(StdoutHandler(env)))
}

// StdoutHandler is the JSON handler shared by the bootstrap and the fan-out logger.
func StdoutHandler(env string) slog.Handler {
	level := slog.LevelInfo
	if strings.EqualFold(env, "development") {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}
