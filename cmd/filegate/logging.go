package main

import (
	"io"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/sagarc03/filegate"
	"github.com/sagarc03/filegate/config"
)

// setupLogging installs the handler for cfg as the slog default and routes
// the standard log package through it.
func setupLogging(w io.Writer, cfg *config.Config) {
	h := newLogHandler(w, cfg)
	slog.SetDefault(slog.New(h))

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(h, slog.LevelInfo).Writer())
}

// newLogHandler returns JSON records for production and colored text for
// development. An invalid env is treated as production.
func newLogHandler(w io.Writer, cfg *config.Config) slog.Handler {
	level := logLevel(cfg)

	if mode, err := cfg.Mode(); err == nil && mode == filegate.ModeDevelopment {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: time.TimeOnly + ".000",
		})
	}

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: utcTimestamp,
	}).WithAttrs([]slog.Attr{slog.String("version", version)})
}

// logLevel reads log.level; serve.debug always wins so fallthrough reasons
// are visible.
func logLevel(cfg *config.Config) slog.Level {
	if cfg.Serve.Debug {
		return slog.LevelDebug
	}

	var level slog.Level
	name := strings.TrimSpace(cfg.Log.Level)
	if name == "warning" {
		name = "warn"
	}
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func utcTimestamp(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey {
		return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}
