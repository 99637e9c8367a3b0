package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kingrea/noteboard/internal/note"
)

func TestLoadFileConfigDefaultsWhenMissing(t *testing.T) {
	baseDir := t.TempDir()
	c, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.File.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.File.Version)
	}
	if c.ViewType() != note.ViewGrid {
		t.Fatalf("expected grid view by default, got %q", c.ViewType())
	}
	if c.LogLevel() != "info" {
		t.Fatalf("expected info level, got %q", c.LogLevel())
	}
}

func TestInitDirWritesTemplate(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitDir(baseDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	if _, err := os.Stat(filepath.Join(baseDir, Dir, "logs")); err != nil {
		t.Fatalf("expected logs dir: %v", err)
	}
	c, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("template must parse: %v", err)
	}
	if c.File.API.BaseURL != "http://127.0.0.1:5000/api" {
		t.Fatalf("unexpected base url %q", c.File.API.BaseURL)
	}
	if c.Timeout().Seconds() != 15 {
		t.Fatalf("unexpected timeout %s", c.Timeout())
	}
}

func TestLoadFileConfigParsesYaml(t *testing.T) {
	baseDir := t.TempDir()
	writeConfig(t, baseDir, `
version: 1
api:
  base_url: "https://notes.example.com/api/ "
  token: " secret "
  timeout: 5s
user:
  id: u-1
  username: ada
preferences:
  view_type: LIST
logging:
  level: DEBUG
`)
	c, err := NewConfig(baseDir)
	if err != nil {
		t.Fatalf("NewConfig returned error: %v", err)
	}
	if c.File.API.BaseURL != "https://notes.example.com/api" {
		t.Fatalf("base url not normalized: %q", c.File.API.BaseURL)
	}
	if c.File.API.Token != "secret" {
		t.Fatalf("token not trimmed: %q", c.File.API.Token)
	}
	if c.ViewType() != note.ViewList {
		t.Fatalf("expected list view, got %q", c.ViewType())
	}
	if c.LogLevel() != "debug" {
		t.Fatalf("expected debug level, got %q", c.LogLevel())
	}
	if u := c.User(); u.ID != "u-1" || u.Username != "ada" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestLoadFileConfigValidation(t *testing.T) {
	cases := map[string]string{
		"scheme":    "api:\n  base_url: ftp://example.com\n",
		"timeout":   "api:\n  timeout: soon\n",
		"view type": "preferences:\n  view_type: masonry\n",
		"level":     "logging:\n  level: loud\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			baseDir := t.TempDir()
			writeConfig(t, baseDir, body)
			if _, err := NewConfig(baseDir); err == nil {
				t.Fatalf("expected validation error but got none")
			}
		})
	}
}

func TestSetViewTypePersists(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitDir(baseDir); err != nil {
		t.Fatal(err)
	}
	c, err := NewConfig(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.SetViewType(note.ViewList); err != nil {
		t.Fatalf("set view type: %v", err)
	}
	reloaded, err := NewConfig(baseDir)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.ViewType() != note.ViewList {
		t.Fatalf("view type not persisted, got %q", reloaded.ViewType())
	}
	if err := c.SetViewType("masonry"); err == nil {
		t.Fatalf("expected error for unknown view type")
	}
}

func TestViewTypeEnvOverride(t *testing.T) {
	t.Setenv(EnvViewType, "list")
	c, err := NewConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if c.ViewType() != note.ViewList {
		t.Fatalf("env override ignored, got %q", c.ViewType())
	}
	if c.File.Preferences.ViewType != note.ViewGrid {
		t.Fatalf("env override must not leak into the file config")
	}
}

func TestEnvFileLoaded(t *testing.T) {
	baseDir := t.TempDir()
	if err := InitDir(baseDir); err != nil {
		t.Fatal(err)
	}
	key := "NOTEBOARD_TEST_ENV_FILE"
	t.Setenv(key, "")
	os.Unsetenv(key)
	envFile := filepath.Join(baseDir, Dir, ".env")
	if err := os.WriteFile(envFile, []byte(key+"=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewConfig(baseDir); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv(key); got != "from-dotenv" {
		t.Fatalf("expected .env value, got %q", got)
	}
}

func writeConfig(t *testing.T, baseDir, body string) {
	t.Helper()
	dir := filepath.Join(baseDir, Dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(strings.TrimSpace(body)+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
}
