// Package config reads runtime settings from SPROUT_* environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Prefix is prepended to every variable name.
const Prefix = "SPROUT_"

const (
	defaultFlushInterval = 30 * time.Second
	defaultRestInterval  = 20 * time.Minute
)

// Config holds all runtime settings.
type Config struct {
	// DataDir defaults to ~/.sprout.
	DataDir       string        `env:"DATA_DIR"`
	ProgressFile  string        `env:"PROGRESS_FILE" envDefault:"progress.json"`
	JournalDB     string        `env:"JOURNAL_DB" envDefault:"journal.db"`
	FlushInterval time.Duration `env:"FLUSH_INTERVAL" envDefault:"30s"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	LogUseCases   bool          `env:"LOG_USE_CASES" envDefault:"false"`
	// MetricsAddr serves /metrics when set, e.g. "127.0.0.1:9464".
	MetricsAddr  string        `env:"METRICS_ADDR"`
	RestInterval time.Duration `env:"REST_INTERVAL" envDefault:"20m"`
	// UserName and UserAge only seed a freshly created snapshot.
	UserName string `env:"USER_NAME"`
	UserAge  int    `env:"USER_AGE" envDefault:"0"`
}

// Default returns the configuration used when no variables are set.
func Default() Config {
	cfg, _ := parse(map[string]string{})
	return cfg
}

// Load reads the process environment. Values that fail to parse or
// validate are replaced by their defaults and reported as warnings.
func Load() (Config, []string) {
	return LoadFrom(environ())
}

// LoadFrom is Load over an explicit variable set.
func LoadFrom(vars map[string]string) (Config, []string) {
	var warnings []string
	cfg, err := parse(vars)
	if err != nil {
		vars, warnings = dropInvalid(vars)
		cfg, err = parse(vars)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("configuration ignored: %v", err))
			cfg, _ = parse(map[string]string{})
		}
	}
	warnings = append(warnings, cfg.validate()...)
	return cfg, warnings
}

func parse(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix:      Prefix,
		Environment: vars,
	}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	return cfg, nil
}

// dropInvalid removes every SPROUT_ variable that fails to parse on its own.
func dropInvalid(vars map[string]string) (map[string]string, []string) {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		if strings.HasPrefix(k, Prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	kept := make(map[string]string, len(keys))
	var warnings []string
	for _, k := range keys {
		if _, err := parse(map[string]string{k: vars[k]}); err != nil {
			warnings = append(warnings, fmt.Sprintf("%s=%q is invalid, using default", k, vars[k]))
			continue
		}
		kept[k] = vars[k]
	}
	return kept, warnings
}

func (c *Config) validate() []string {
	var warnings []string
	if c.FlushInterval <= 0 {
		warnings = append(warnings, fmt.Sprintf("%sFLUSH_INTERVAL must be positive, using %s", Prefix, defaultFlushInterval))
		c.FlushInterval = defaultFlushInterval
	}
	if c.RestInterval < time.Minute {
		warnings = append(warnings, fmt.Sprintf("%sREST_INTERVAL must be at least 1m, using %s", Prefix, defaultRestInterval))
		c.RestInterval = defaultRestInterval
	}
	if c.UserAge < 0 {
		warnings = append(warnings, fmt.Sprintf("%sUSER_AGE must not be negative, using 0", Prefix))
		c.UserAge = 0
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		warnings = append(warnings, fmt.Sprintf("%sLOG_LEVEL=%q is unknown, using info", Prefix, c.LogLevel))
		c.LogLevel = "info"
	}
	if strings.TrimSpace(c.ProgressFile) == "" {
		c.ProgressFile = "progress.json"
	}
	if strings.TrimSpace(c.JournalDB) == "" {
		c.JournalDB = "journal.db"
	}
	return warnings
}

// SlogLevel returns the configured log level.
func (c Config) SlogLevel() slog.Level {
	lvl, _ := parseLevel(c.LogLevel)
	return lvl
}

func parseLevel(s string) (slog.Level, bool) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, false
	}
	return lvl, true
}

// ProgressPath is the snapshot file location.
func (c Config) ProgressPath() string {
	return c.resolve(c.ProgressFile)
}

// JournalPath is the SQLite journal location. ":memory:" passes through.
func (c Config) JournalPath() string {
	if c.JournalDB == ":memory:" {
		return c.JournalDB
	}
	return c.resolve(c.JournalDB)
}

func (c Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sprout"
	}
	return filepath.Join(home, ".sprout")
}

func environ() map[string]string {
	vars := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			vars[k] = v
		}
	}
	return vars
}
