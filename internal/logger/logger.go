package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/natefinch/lumberjack"

	"github.com/djangocon/conference-site/internal/config"
)

// New создаёт логгер: текст в консоль или JSON в файл с ротацией.
func New(c *config.LoggerSettings) (*slog.Logger, error) {
	return NewWriter(c, os.Stdout)
}

// NewWriter — то же, что New, но консольный вывод идёт в console.
func NewWriter(c *config.LoggerSettings, console io.Writer) (*slog.Logger, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	opts := &slog.HandlerOptions{Level: parseLevel(c.LogLevel)}

	switch c.LogType {
	case config.LogTypeConsole:
		return slog.New(slog.NewTextHandler(console, opts)), nil
	case config.LogTypeFile:
		var w io.Writer = &lumberjack.Logger{
			Filename:   c.FilePath,
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.MaxAge,
			Compress:   true,
		}
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log type: %s", c.LogType)
	}
}

// Discard — логгер в никуда.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func parseLevel(level string) slog.Level {
	switch level {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelInfo:
		return slog.LevelInfo
	case config.LogLevelWarning:
		return slog.LevelWarn
	case config.LogLevelError, config.LogLevelCritical:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
