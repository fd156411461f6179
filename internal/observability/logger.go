package observability

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"

	"github.com/couchcryptid/et0-merge/internal/config"
)

// NewLogger builds the run logger. Logs go to w (stderr in the command) so
// that standard output carries only the merged table. LOG_FORMAT=text gives
// a colored human-readable handler; anything else is JSON.
func NewLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}

	if cfg.LogFormat == "text" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})).With("app", "et0-merge")
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})).With("app", "et0-merge")
}
