// internal/config/config.go
//
// This package handles configuration and the .noteboard directory structure.
// The directory lives under the base dir (the user's home by default) and
// holds config.yaml, an optional .env and the log files.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/noteboard/internal/note"
)

const (
	// Dir is the name of the directory we create under the base dir
	Dir = ".noteboard"

	// EnvViewType overrides preferences.view_type for a single run.
	EnvViewType = "NOTEBOARD_VIEW"

	defaultLogLevel = "info"
)

const defaultFileConfigYAML = `# noteboard configuration
version: 1

# Notes API. The token may also come from NOTEBOARD_API_TOKEN or .noteboard/.env.
api:
  base_url: http://127.0.0.1:5000/api
  # token: ""
  timeout: 15s

# The account notes are saved under. Filled from GET /user/me when empty.
user:
  id: ""
  username: ""

preferences:
  # grid or list
  view_type: grid

logging:
  # debug, info, warn or error
  level: info
`

// APIConfig captures how to reach the notes API.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Token   string `yaml:"token,omitempty"`
	Timeout string `yaml:"timeout,omitempty"`
}

// UserConfig pins the account used as note owner.
type UserConfig struct {
	ID       string `yaml:"id"`
	Username string `yaml:"username"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FileConfig models .noteboard/config.yaml.
type FileConfig struct {
	Version     int              `yaml:"version"`
	API         APIConfig        `yaml:"api"`
	User        UserConfig       `yaml:"user"`
	Preferences note.Preferences `yaml:"preferences"`
	Logging     LoggingConfig    `yaml:"logging"`
}

// Config holds the runtime configuration for noteboard.
type Config struct {
	// BaseDir is the directory .noteboard lives in
	BaseDir string

	// ConfigDir is BaseDir/.noteboard
	ConfigDir string

	File FileConfig
}

// InitDir creates the .noteboard directory structure in baseDir.
//
// Structure created:
// .noteboard/
// ├── config.yaml
// └── logs/
func InitDir(baseDir string) error {
	dir := filepath.Join(baseDir, Dir)
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return err
	}
	return ensureFileConfig(filepath.Join(dir, "config.yaml"))
}

// DefaultBaseDir returns the user's home directory, falling back to the
// working directory when home is unknown.
func DefaultBaseDir() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	return os.Getwd()
}

// NewConfig loads .noteboard/.env and .noteboard/config.yaml from baseDir.
// Values already present in the environment win over .env.
func NewConfig(baseDir string) (*Config, error) {
	cfg := &Config{
		BaseDir:   baseDir,
		ConfigDir: filepath.Join(baseDir, Dir),
		File:      defaultFileConfig(),
	}
	if err := cfg.loadEnvFile(); err != nil {
		return nil, err
	}
	if err := cfg.loadFileConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogsDir returns the path to the logs directory
func (c *Config) LogsDir() string {
	return filepath.Join(c.ConfigDir, "logs")
}

// LogPath returns the log file path
func (c *Config) LogPath() string {
	return filepath.Join(c.LogsDir(), "noteboard.log")
}

// FilePath returns the on-disk location for config.yaml.
func (c *Config) FilePath() string {
	return filepath.Join(c.ConfigDir, "config.yaml")
}

// EnvPath returns the optional .env file location.
func (c *Config) EnvPath() string {
	return filepath.Join(c.ConfigDir, ".env")
}

// LogLevel returns the configured log level.
func (c *Config) LogLevel() string {
	return c.File.Logging.Level
}

// User returns the configured owner account.
func (c *Config) User() note.User {
	return note.User{ID: c.File.User.ID, Username: c.File.User.Username}
}

// ViewType returns the list layout, honoring NOTEBOARD_VIEW.
func (c *Config) ViewType() note.ViewType {
	if v, ok := parseViewType(os.Getenv(EnvViewType)); ok {
		return v
	}
	return c.File.Preferences.ViewType
}

// SetViewType updates the list layout and persists it to config.yaml.
func (c *Config) SetViewType(v note.ViewType) error {
	parsed, ok := parseViewType(string(v))
	if !ok {
		return fmt.Errorf("config: unknown view type %q", v)
	}
	c.File.Preferences.ViewType = parsed
	return c.saveFileConfig()
}

// SetUser records the owner account and persists it.
func (c *Config) SetUser(u note.User) error {
	c.File.User = UserConfig{ID: strings.TrimSpace(u.ID), Username: strings.TrimSpace(u.Username)}
	return c.saveFileConfig()
}

// Timeout returns the parsed API timeout, or zero when unset.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.File.API.Timeout))
	if err != nil {
		return 0
	}
	return d
}

func (c *Config) loadEnvFile() error {
	path := c.EnvPath()
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadFileConfig() error {
	path := c.FilePath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed FileConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.File = parsed
	return nil
}

func defaultFileConfig() FileConfig {
	return FileConfig{
		Version:     1,
		Preferences: note.Preferences{ViewType: note.ViewGrid},
		Logging:     LoggingConfig{Level: defaultLogLevel},
	}
}

func (fc *FileConfig) applyDefaults() {
	if fc.Version == 0 {
		fc.Version = 1
	}
	if fc.Preferences.ViewType == "" {
		fc.Preferences.ViewType = note.ViewGrid
	}
	if fc.Logging.Level == "" {
		fc.Logging.Level = defaultLogLevel
	}
}

func (fc *FileConfig) normalize() {
	fc.API.BaseURL = strings.TrimRight(strings.TrimSpace(fc.API.BaseURL), "/")
	fc.API.Token = strings.TrimSpace(fc.API.Token)
	fc.API.Timeout = strings.TrimSpace(fc.API.Timeout)
	fc.User.ID = strings.TrimSpace(fc.User.ID)
	fc.User.Username = strings.TrimSpace(fc.User.Username)
	fc.Preferences.ViewType = note.ViewType(strings.ToLower(strings.TrimSpace(string(fc.Preferences.ViewType))))
	fc.Logging.Level = strings.ToLower(strings.TrimSpace(fc.Logging.Level))
}

func (fc *FileConfig) validate() error {
	if fc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if fc.API.BaseURL != "" {
		if err := validateBaseURL(fc.API.BaseURL); err != nil {
			return fmt.Errorf("api.base_url: %w", err)
		}
	}
	if fc.API.Timeout != "" {
		d, err := time.ParseDuration(fc.API.Timeout)
		if err != nil {
			return fmt.Errorf("api.timeout: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("api.timeout must be positive")
		}
	}
	if _, ok := parseViewType(string(fc.Preferences.ViewType)); !ok {
		return fmt.Errorf("preferences.view_type must be 'grid' or 'list'")
	}
	switch fc.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("host is required")
	}
	return nil
}

func parseViewType(value string) (note.ViewType, bool) {
	switch note.ViewType(strings.ToLower(strings.TrimSpace(value))) {
	case note.ViewGrid:
		return note.ViewGrid, true
	case note.ViewList:
		return note.ViewList, true
	}
	return "", false
}

func ensureFileConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultFileConfigYAML), 0o600)
}

func (c *Config) saveFileConfig() error {
	if c == nil {
		return fmt.Errorf("config: nil receiver")
	}
	c.File.applyDefaults()
	c.File.normalize()
	if err := c.File.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := os.MkdirAll(c.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("config: ensure config dir: %w", err)
	}
	data, err := yaml.Marshal(c.File)
	if err != nil {
		return fmt.Errorf("config: encode config: %w", err)
	}
	if err := os.WriteFile(c.FilePath(), data, 0o600); err != nil {
		return fmt.Errorf("config: write config: %w", err)
	}
	return nil
}
