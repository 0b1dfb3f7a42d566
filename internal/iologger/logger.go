// Package iologger provides slog-based logging initialization and configuration.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/gnames/xsdinfer/pkg/config"
	"github.com/mattn/go-isatty"
)

// LogFile is the name of the log file created in the log directory.
const LogFile = "xsdinfer.log"

// Init initializes the global slog logger with the given configuration.
// Creates a fresh log file in logDir if destination is "file".
func Init(logDir string, cfg config.LogConfig) error {
	var writer io.Writer

	switch cfg.Destination {
	case "stdout":
		writer = os.Stdout
	case "stderr":
		writer = os.Stderr
	case "file":
		logPath := filepath.Join(logDir, LogFile)
		file, err := os.Create(logPath)
		if err != nil {
			return CreateLogFileError(logPath, err)
		}
		writer = file
	default:
		writer = os.Stderr
	}

	slog.SetDefault(slog.New(NewHandler(writer, cfg)))
	return nil
}

// NewHandler creates a slog.Handler that writes to w according to the
// format and level of cfg.
func NewHandler(w io.Writer, cfg config.LogConfig) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	switch cfg.Format {
	case "json":
		return slog.NewJSONHandler(w, handlerOpts)
	case "text":
		return slog.NewTextHandler(w, handlerOpts)
	case "tint":
		if isTerminal(w) {
			handlerOpts.ReplaceAttr = tintLevel
		}
		return slog.NewTextHandler(w, handlerOpts)
	default:
		return slog.NewJSONHandler(w, handlerOpts)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

var levelColors = map[slog.Level]*color.Color{
	slog.LevelDebug: color.New(color.FgHiBlack),
	slog.LevelInfo:  color.New(color.FgGreen),
	slog.LevelWarn:  color.New(color.FgYellow),
	slog.LevelError: color.New(color.FgRed, color.Bold),
}

// tintLevel colors the level and dims the time of a text record.
func tintLevel(groups []string, a slog.Attr) slog.Attr {
	if len(groups) > 0 {
		return a
	}
	switch a.Key {
	case slog.LevelKey:
		lvl, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		c, ok := levelColors[lvl]
		if !ok {
			return a
		}
		return slog.String(a.Key, c.Sprint(lvl.String()))
	case slog.TimeKey:
		t := a.Value.Time()
		return slog.String(a.Key,
			color.New(color.Faint).Sprint(t.Format("15:04:05.000")))
	}
	return a
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
