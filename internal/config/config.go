package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment distinguishes production from everything else.
type Environment string

const (
	Production  Environment = "production"
	Development Environment = "development"
)

// IsProduction reports whether debug destinations should be left out.
func (e Environment) IsProduction() bool {
	return e == Production
}

// ColorMode controls ANSI colouring of the console destination.
type ColorMode string

const (
	ColorAlways ColorMode = "always"
	ColorAuto   ColorMode = "auto"
	ColorNever  ColorMode = "never"
)

// Config holds everything needed to set up logging for a process.
type Config struct {
	Environment Environment `yaml:"environment"`

	// Dir is the main log directory. Debug logs go to Dir/debug.
	Dir string `yaml:"logDir"`
	// MaxSavedLogs is the retention threshold for archival logs.
	// Zero or negative disables pruning.
	MaxSavedLogs int `yaml:"maxSavedLogs"`

	// Size based rotation of a single session's files. Rotated backups are
	// never archive names, so only these limits ever remove them.
	MaxSizeMB  int `yaml:"maxSizeMB"`
	MaxBackups int `yaml:"maxBackups"`
	MaxAgeDays int `yaml:"maxAgeDays"`

	Color ColorMode `yaml:"color"`

	// Port is only used by the HTTP server binary.
	Port string `yaml:"port"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Environment:  Development,
		Dir:          "./log",
		MaxSavedLogs: 10,
		MaxSizeMB:    100,
		MaxBackups:   7,
		MaxAgeDays:   7,
		Color:        ColorAlways,
		Port:         "8080",
	}
}

// Load builds the configuration from, in increasing precedence: defaults,
// the config file at path (CONFIG_FILE or config.json when path is empty),
// a .env file and the process environment.
func Load(path string) (Config, error) {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found – relying on env vars")
	}

	cfg := Default()

	if path == "" {
		path = getEnv("CONFIG_FILE", "config.json")
	}
	if err := cfg.loadFile(path); err != nil {
		return Config{}, err
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile overlays values from a JSON or YAML file. A missing file is fine.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv("APP_ENV"); ok {
		c.Environment = Environment(strings.ToLower(strings.TrimSpace(v)))
	}
	c.Dir = getEnv("LOG_DIR", c.Dir)
	c.Port = getEnv("PORT", c.Port)
	if v, ok := os.LookupEnv("LOG_COLOR"); ok {
		c.Color = ColorMode(strings.ToLower(v))
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		c.Color = ColorNever
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"LOG_MAX_SAVED", &c.MaxSavedLogs},
		{"LOG_MAX_SIZE_MB", &c.MaxSizeMB},
		{"LOG_MAX_BACKUPS", &c.MaxBackups},
		{"LOG_MAX_AGE_DAYS", &c.MaxAgeDays},
	}
	for _, e := range ints {
		v, ok := os.LookupEnv(e.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", e.key, err)
		}
		*e.dst = n
	}
	return nil
}

// Validate checks values that would otherwise fail later in odd ways.
func (c Config) Validate() error {
	if c.Dir == "" {
		return errors.New("log directory must not be empty")
	}
	switch c.Color {
	case ColorAlways, ColorAuto, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (use always, auto or never)", c.Color)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return errors.New("rotation limits must not be negative")
	}
	return nil
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
