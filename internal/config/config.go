// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/superpresidznt/jarvis/internal/dateutil"
	"github.com/superpresidznt/jarvis/internal/llm"
	"github.com/superpresidznt/jarvis/internal/review"
	"github.com/superpresidznt/jarvis/internal/tui/theme"
)

// Config holds the application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	Review  ReviewConfig  `toml:"review"`
	LLM     LLMConfig     `toml:"llm"`
	UI      UIConfig      `toml:"ui"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ReviewConfig holds review generation settings.
type ReviewConfig struct {
	Timezone   string             `toml:"timezone"`             // IANA name, "local" or "utc"
	Thresholds map[string]float64 `toml:"thresholds,omitempty"` // overrides by threshold name
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// UIConfig holds terminal output settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	Color string `toml:"color"` // "auto", "always", "never"
}


var colorModes = []string{"auto", "always", "never"}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		Review: ReviewConfig{
			Timezone: "local",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		UI: UIConfig{
			Theme: "frappe",
			Color: "auto",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "jarvis.db"
	}
	return filepath.Join(home, ".local", "share", "jarvis", "jarvis.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "jarvis", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// thresholdEnvPrefix prefixes per-threshold overrides,
// e.g. JARVIS_THRESHOLD_FOCUS_LOW_MINUTES=90.
const thresholdEnvPrefix = "JARVIS_THRESHOLD_"

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("JARVIS_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("JARVIS_TIMEZONE"); v != "" {
		cfg.Review.Timezone = v
	}
	for _, name := range review.ThresholdNames() {
		v := os.Getenv(thresholdEnvPrefix + strings.ToUpper(name))
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s%s: %w", thresholdEnvPrefix, strings.ToUpper(name), err)
		}
		if cfg.Review.Thresholds == nil {
			cfg.Review.Thresholds = map[string]float64{}
		}
		cfg.Review.Thresholds[name] = f
	}

	if v := os.Getenv("JARVIS_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("JARVIS_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("JARVIS_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("JARVIS_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("JARVIS_UI_COLOR"); v != "" {
		cfg.UI.Color = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.UI.Color = "never"
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Thresholds(); err != nil {
		return err
	}
	if _, err := llm.NormalizeProvider(c.LLM.Provider); err != nil {
		return err
	}
	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("invalid theme %q (want one of %s)", c.UI.Theme, strings.Join(theme.Available(), ", "))
	}
	if !oneOf(c.UI.Color, colorModes) {
		return fmt.Errorf("invalid color mode %q (want one of %s)", c.UI.Color, strings.Join(colorModes, ", "))
	}
	return nil
}

// Location resolves the review timezone.
func (c *Config) Location() (*time.Location, error) {
	return dateutil.LoadLocation(c.Review.Timezone)
}

// Thresholds returns the default insight thresholds with the configured
// overrides applied.
func (c *Config) Thresholds() (review.Thresholds, error) {
	return review.DefaultThresholds().WithOverrides(c.Review.Thresholds)
}

func oneOf(s string, options []string) bool {
	s = strings.ToLower(s)
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
