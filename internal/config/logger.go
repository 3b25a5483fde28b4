package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Уровни логирования.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Куда пишет логгер.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

var ErrInvalidLoggerSettings = errors.New("invalid logger settings")

// LoggerSettings — настройки логгера из LOG_*.
// Лимиты ротации проверяются только для LOG_TYPE=file.
type LoggerSettings struct {
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=info debug error warning critical"`
	LogType    string `env:"LOG_TYPE" envDefault:"console" validate:"oneof=console file"`
	FilePath   string `env:"LOG_FILE_PATH" validate:"required_if=LogType file"`
	MaxSize    int    `env:"LOG_MAX_SIZE" envDefault:"10"` // МБ
	MaxBackups int    `env:"LOG_MAX_BACKUPS" envDefault:"3"`
	MaxAge     int    `env:"LOG_MAX_AGE" envDefault:"28"` // дни
}

var loggerValidator = newLoggerValidator()

func newLoggerValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(rotationLimits, LoggerSettings{})
	return v
}

func rotationLimits(sl validator.StructLevel) {
	s := sl.Current().Interface().(LoggerSettings)
	if s.LogType != LogTypeFile {
		return
	}
	limits := []struct {
		field    string
		value    int
		min, max int
	}{
		{"MaxSize", s.MaxSize, 1, 100},
		{"MaxBackups", s.MaxBackups, 1, 10},
		{"MaxAge", s.MaxAge, 1, 365},
	}
	for _, l := range limits {
		if l.value < l.min || l.value > l.max {
			sl.ReportError(l.value, l.field, l.field, "range", fmt.Sprintf("%d-%d", l.min, l.max))
		}
	}
}

func LoadLoggerSettings() (*LoggerSettings, error) {
	s := &LoggerSettings{}
	if err := parseEnv(s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LoggerSettings) Validate() error {
	if err := loggerValidator.Struct(s); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidLoggerSettings, err)
	}
	return nil
}
