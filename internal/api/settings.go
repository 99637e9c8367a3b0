package api

import (
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kingrea/noteboard/internal/config"
)

const (
	// DefaultBaseURL is used when neither config nor environment names an API.
	DefaultBaseURL = "http://127.0.0.1:5000/api"
	// DefaultTimeout bounds each request.
	DefaultTimeout = 15 * time.Second
	// DefaultMaxBodyBytes limits response payloads to 8 MB.
	DefaultMaxBodyBytes int64 = 8 << 20
	// DefaultUserAgent identifies the client to the API.
	DefaultUserAgent = "noteboard"

	EnvBaseURL = "NOTEBOARD_API_URL"
	EnvToken   = "NOTEBOARD_API_TOKEN"
	EnvTimeout = "NOTEBOARD_API_TIMEOUT"
)

// Settings captures runtime configuration for the API client.
type Settings struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	MaxBodyBytes int64
	UserAgent    string
}

// SettingsFromConfig builds Settings using config.yaml and environment overrides.
func SettingsFromConfig(cfg *config.Config) Settings {
	settings := Settings{
		BaseURL:      DefaultBaseURL,
		Timeout:      DefaultTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
		UserAgent:    DefaultUserAgent,
	}
	if cfg != nil {
		raw := cfg.File.API
		if base := strings.TrimSpace(raw.BaseURL); base != "" {
			settings.BaseURL = base
		}
		settings.Token = strings.TrimSpace(raw.Token)
		if d := cfg.Timeout(); d > 0 {
			settings.Timeout = d
		}
	}
	settings.applyEnvOverrides()
	settings.normalize()
	return settings
}

// WithBaseURL returns a copy pointed at raw, ignoring values that are not
// http(s) URLs.
func (s Settings) WithBaseURL(raw string) Settings {
	raw = strings.TrimSpace(raw)
	if raw == "" || !isValidBaseURL(raw) {
		return s
	}
	s.BaseURL = raw
	s.normalize()
	return s
}

func (s *Settings) applyEnvOverrides() {
	if s == nil {
		return
	}
	if base := strings.TrimSpace(os.Getenv(EnvBaseURL)); base != "" && isValidBaseURL(base) {
		s.BaseURL = base
	}
	if token := strings.TrimSpace(os.Getenv(EnvToken)); token != "" {
		s.Token = token
	}
	if value := strings.TrimSpace(os.Getenv(EnvTimeout)); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			s.Timeout = d
		}
	}
}

func (s *Settings) normalize() {
	if s == nil {
		return
	}
	s.BaseURL = strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if !isValidBaseURL(s.BaseURL) {
		s.BaseURL = DefaultBaseURL
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.MaxBodyBytes <= 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if strings.TrimSpace(s.UserAgent) == "" {
		s.UserAgent = DefaultUserAgent
	}
}

func isValidBaseURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
