package app

import (
	"io"
	"log/slog"

	"github.com/vk/loki/internal/settings"
)

// App encapsulates the dependencies and configuration of one invocation.
type App struct {
	outW     io.Writer
	logW     io.Writer
	config   *Config
	settings *settings.Settings
	logger   *slog.Logger
}

// NewApp creates an App writing user-facing output to outW and logs to logW.
// Logging is configured from the environment; Build reconfigures it once the
// project's .env file is known.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	s, err := settings.Load("")
	if err != nil {
		return nil, err
	}
	a := &App{
		outW:     outW,
		logW:     logW,
		config:   cfg,
		settings: s,
		logger:   newLogger(s.LogLevel, s.LogFormat, logW),
	}
	a.logger.Debug("Logger configured successfully.", "level", s.LogLevel, "format", s.LogFormat)
	return a, nil
}

// Settings returns the settings in effect. This is primarily for testing.
func (a *App) Settings() *settings.Settings {
	return a.settings
}
