package tui

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/config"
	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
)

func TestLoadOverHTTPWithoutConfiguredTimeout(t *testing.T) {
	t.Setenv(config.EnvViewType, "")
	t.Setenv(api.EnvBaseURL, "")
	t.Setenv(api.EnvToken, "")
	t.Setenv(api.EnvTimeout, "")

	reply := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/note", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []note.Note{{ID: "n1", UserID: "u1", Title: "Plan trip", Type: note.TypeNote}})
	})
	mux.HandleFunc("GET /api/label", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []note.Label{{ID: "l1", Name: "Work"}})
	})
	mux.HandleFunc("GET /api/folder", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []note.Folder{})
	})
	mux.HandleFunc("GET /api/user/me", func(w http.ResponseWriter, r *http.Request) {
		reply(w, note.User{ID: "u1", Username: "ada"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	baseDir := t.TempDir()
	configDir := filepath.Join(baseDir, config.Dir)
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	raw := "version: 1\napi:\n  base_url: " + srv.URL + "/api\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if err := config.InitDir(baseDir); err != nil {
		t.Fatalf("init dir: %v", err)
	}
	cfg, err := config.NewConfig(baseDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Timeout() != 0 {
		t.Fatalf("expected config without a timeout, got %s", cfg.Timeout())
	}

	client := api.NewClient(api.SettingsFromConfig(cfg), api.WithHTTPClient(srv.Client()))
	st := store.New(client, cfg.User(), cfg.File.Preferences)
	app := NewApp(cfg, st, WithClock(func() time.Time { return testNow }), WithToastTTL(0))
	if app.timeout != api.DefaultTimeout {
		t.Fatalf("expected default request timeout, got %s", app.timeout)
	}
	app = runCommands(t, app, app.Init())

	if app.loadErr != nil {
		t.Fatalf("expected load to succeed, got %v", app.loadErr)
	}
	if app.state != stateBoard || len(app.store.Notes()) != 1 {
		t.Fatalf("expected board with one note, got state %d and %d notes", app.state, len(app.store.Notes()))
	}
	if app.store.User().Username != "ada" {
		t.Fatalf("expected user from the API, got %+v", app.store.User())
	}
}

func TestWithTimeoutOverridesDefault(t *testing.T) {
	app, _ := newTestApp(t)
	if app.timeout <= 0 {
		t.Fatalf("expected a positive default timeout, got %s", app.timeout)
	}
	app = NewApp(app.config, app.store, WithTimeout(3*time.Second), WithTimeout(0))
	if app.timeout != 3*time.Second {
		t.Fatalf("expected 3s timeout, got %s", app.timeout)
	}
}
