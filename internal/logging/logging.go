package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

const (
	FormatJSON = "json"
	FormatText = "text"

	// TextTimeFormat matches the "2024-01-02 03:04:05 INFO message" console layout.
	TextTimeFormat = "2006-01-02 15:04:05"
)

// Setup installs the default slog logger and routes the standard log
// package through it.
func Setup(format, level string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, format, ParseLevel(level))))

	log.SetFlags(0)
	log.SetOutput(
		slog.NewLogLogger(
			slog.Default().Handler(),
			slog.LevelInfo,
		).Writer(),
	)
}

// NewHandler returns a JSON handler, or a tint console handler for FormatText.
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	if strings.ToLower(format) == FormatText {
		return tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: TextTimeFormat,
			NoColor:    !isTerminal(w),
		})
	}
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
