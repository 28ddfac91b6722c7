// Package settings loads the tool-level knobs that are not part of a
// project's manifest: which compiler driver to run, extra flags and logging.
//
// Values come from, in decreasing priority: LOKI_* environment variables (or
// the conventional CC/CFLAGS/LDFLAGS), a .env file in the project root, and
// built-in defaults.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/vk/loki/internal/toolchain"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "LOKI"

// EnvFile is the optional dotenv file read from the project root.
const EnvFile = ".env"

// Settings are the resolved tool settings for one invocation.
type Settings struct {
	CC        string
	CFlags    []string
	LDFlags   []string
	LogLevel  string
	LogFormat string
}

// key -> environment variables consulted, first match wins.
var bindings = map[string][]string{
	"cc":         {"LOKI_CC", "CC"},
	"cflags":     {"LOKI_CFLAGS", "CFLAGS"},
	"ldflags":    {"LOKI_LDFLAGS", "LDFLAGS"},
	"log_level":  {"LOKI_LOG_LEVEL"},
	"log_format": {"LOKI_LOG_FORMAT"},
}

var defaults = map[string]string{
	"cc":         toolchain.DefaultCC,
	"log_level":  "info",
	"log_format": "text",
}

// Load resolves settings. projectDir may be empty, in which case no .env file
// is read.
func Load(projectDir string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if projectDir != "" {
		if err := applyEnvFile(v, filepath.Join(projectDir, EnvFile)); err != nil {
			return nil, err
		}
	}

	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	s := &Settings{
		CC:        v.GetString("cc"),
		CFlags:    fields(v.GetString("cflags")),
		LDFlags:   fields(v.GetString("ldflags")),
		LogLevel:  strings.ToLower(v.GetString("log_level")),
		LogFormat: strings.ToLower(v.GetString("log_format")),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// applyEnvFile layers a dotenv file between the real environment and the
// defaults. The process environment itself is left untouched.
func applyEnvFile(v *viper.Viper, path string) error {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	for key, envs := range bindings {
		for _, env := range envs {
			if value, ok := values[env]; ok {
				v.SetDefault(key, value)
				break
			}
		}
	}
	return nil
}

// Validate checks the logging options.
func (s *Settings) Validate() error {
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", s.LogLevel)
	}
	if s.LogFormat != "text" && s.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", s.LogFormat)
	}
	if s.CC == "" {
		return errors.New("compiler driver must not be empty")
	}
	return nil
}

// Toolchain returns the toolchain these settings describe, backed by runner.
// A nil runner spawns real processes.
func (s *Settings) Toolchain(runner toolchain.Runner) toolchain.Toolchain {
	if runner == nil {
		runner = toolchain.NewExecRunner()
	}
	return toolchain.Toolchain{
		CC:      s.CC,
		CFlags:  s.CFlags,
		LDFlags: s.LDFlags,
		Runner:  runner,
	}
}

// fields splits a flag string, returning nil rather than an empty slice.
func fields(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return f
}
