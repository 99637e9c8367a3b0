package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/config"
	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
	"github.com/kingrea/noteboard/internal/store/storetest"
)

// fakeAPI answers the notes API from memory and records POST bodies.
type fakeAPI struct {
	mu      sync.Mutex
	notes   []note.Note
	created []note.Note
}

func (f *fakeAPI) handler() http.Handler {
	reply := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/note", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		reply(w, f.notes)
	})
	mux.HandleFunc("POST /api/note", func(w http.ResponseWriter, r *http.Request) {
		var n note.Note
		if err := json.NewDecoder(r.Body).Decode(&n); err != nil {
			http.Error(w, `{"message":"bad body"}`, http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.created = append(f.created, n)
		n.ID = "created"
		f.notes = append(f.notes, n)
		reply(w, f.notes)
	})
	mux.HandleFunc("GET /api/label", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []note.Label{{ID: "l1", Name: "Work"}})
	})
	mux.HandleFunc("GET /api/folder", func(w http.ResponseWriter, r *http.Request) {
		reply(w, []note.Folder{{ID: "f1", Name: "Projects"}})
	})
	mux.HandleFunc("GET /api/user/me", func(w http.ResponseWriter, r *http.Request) {
		reply(w, note.User{ID: "u1", Username: "ada"})
	})
	return mux
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	baseDir, apiURL, verbose = "", "", false
	listSection, listLabel, listFolder, listUpcoming, listJSON = "home", "", "", false, false
	addOpts = addOptions{}
	t.Setenv(api.EnvBaseURL, "")
	t.Setenv(api.EnvToken, "")
	t.Setenv(api.EnvTimeout, "")
	t.Setenv(config.EnvViewType, "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestAddCreatesChecklist(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	dir := t.TempDir()

	out, err := runCLI(t, "add", "--dir", dir, "--api", srv.URL+"/api",
		"--title", "Trip", "--task", "passport", "--task", "tickets",
		"--label", "work", "--pin", "--remind", "2026-10-21 09:30")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Trip"`)

	require.Len(t, fake.created, 1)
	sent := fake.created[0]
	assert.Equal(t, note.TypeChecklist, sent.Type)
	assert.Equal(t, "u1", sent.UserID)
	assert.Equal(t, []string{"l1"}, sent.Labels)
	assert.True(t, sent.Pinned)
	require.Len(t, sent.Tasks, 2)
	assert.Equal(t, "tickets", sent.Tasks[1].Text)
	require.NotNil(t, sent.DueDateTime)
	assert.True(t, sent.DueDateTime.Equal(time.Date(2026, 10, 21, 9, 30, 0, 0, time.Local)))

	cfg, err := config.NewConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "u1", cfg.File.User.ID, "resolved user is remembered")
}

func TestAddWithoutConfiguredTimeout(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, config.Dir), 0o755))
	raw := "version: 1\napi:\n  base_url: " + srv.URL + "/api\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.Dir, "config.yaml"), []byte(raw), 0o644))

	out, err := runCLI(t, "add", "--dir", dir, "--title", "Call home")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Call home"`)
	require.Len(t, fake.created, 1)

	ws, err := func() (*workspace, error) {
		baseDir = dir
		defer func() { baseDir = "" }()
		return openWorkspace()
	}()
	require.NoError(t, err)
	defer ws.Close()
	assert.Equal(t, api.DefaultTimeout, ws.timeout)
}

func TestAddWithoutContentFails(t *testing.T) {
	fake := &fakeAPI{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	_, err := runCLI(t, "add", "--dir", t.TempDir(), "--api", srv.URL+"/api", "--title", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to save")
	assert.Empty(t, fake.created)
}

func TestListJSON(t *testing.T) {
	fake := &fakeAPI{notes: []note.Note{
		{ID: "a", Title: "Alpha", Type: note.TypeNote},
		{ID: "b", Title: "Beta", Type: note.TypeNote, Pinned: true},
		{ID: "c", Title: "Gone", Type: note.TypeNote, Deleted: true},
	}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	out, err := runCLI(t, "list", "--dir", t.TempDir(), "--api", srv.URL+"/api", "--json")
	require.NoError(t, err)
	var got []note.Note
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "pinned first")
	assert.Equal(t, "a", got[1].ID)
}

func TestListFolder(t *testing.T) {
	fake := &fakeAPI{notes: []note.Note{
		{ID: "a", Title: "Alpha", Type: note.TypeNote},
		note.Note{ID: "b", Title: "Roadmap", Type: note.TypeNote}.MoveToFolder("f1"),
	}}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	out, err := runCLI(t, "list", "--dir", t.TempDir(), "--api", srv.URL+"/api", "--folder", "projects")
	require.NoError(t, err)
	assert.Contains(t, out, "Roadmap")
	assert.NotContains(t, out, "Alpha")

	_, err = runCLI(t, "list", "--dir", t.TempDir(), "--api", srv.URL+"/api", "--folder", "attic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown folder "attic"`)
}

func TestSelectNotesUpcoming(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	backend := storetest.New(
		note.Note{ID: "later", Title: "later", Type: note.TypeNote}.SetReminder(now.Add(72*time.Hour)),
		note.Note{ID: "missed", Title: "missed", Type: note.TypeNote}.SetReminder(now.Add(-time.Hour)),
		note.Note{ID: "next", Title: "next", Type: note.TypeNote}.SetReminder(now.Add(2*time.Hour)),
		note.Note{ID: "plain", Title: "plain", Type: note.TypeNote},
	)
	st := store.New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, st.Load(context.Background()))

	notes, empty, err := selectNotes(st, listQuery{section: "home", upcoming: true}, now)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "next", notes[0].ID)
	assert.Equal(t, "later", notes[1].ID)
	assert.Equal(t, "No upcoming reminders", empty.Title)
}

func TestListUnknownSection(t *testing.T) {
	srv := httptest.NewServer((&fakeAPI{}).handler())
	defer srv.Close()

	_, err := runCLI(t, "list", "--dir", t.TempDir(), "--api", srv.URL+"/api", "--section", "attic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown section")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "noteboard version dev\n", out)
}

func TestBuildDraft(t *testing.T) {
	backend := storetest.New()
	backend.Labels = []note.Label{{ID: "l1", Name: "Work"}}
	st := store.New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, st.Load(context.Background()))

	draft, err := buildDraft(addOptions{title: " Plan ", description: "body", color: "Mint", archive: true}, st, time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "Plan", draft.Title)
	assert.Equal(t, note.TypeNote, draft.Type)
	assert.Equal(t, "mint", draft.ColorKey())
	assert.True(t, draft.Archived)

	_, err = buildDraft(addOptions{title: "x", labels: []string{"nope"}}, st, time.UTC)
	assert.ErrorContains(t, err, `unknown label "nope"`)

	_, err = buildDraft(addOptions{title: "x", color: "plaid"}, st, time.UTC)
	assert.ErrorContains(t, err, "unknown color")

	_, err = buildDraft(addOptions{title: "x", remind: "someday"}, st, time.UTC)
	assert.Error(t, err)
}

func TestWriteNotes(t *testing.T) {
	due := time.Date(2026, 10, 21, 9, 30, 0, 0, time.UTC)
	notes := []note.Note{
		{ID: "a", Title: "Alpha", Type: note.TypeNote, Pinned: true, Labels: []string{"l1"}, DueDateTime: &due},
		{ID: "b", Description: "first line\nsecond", Type: note.TypeChecklist, Tasks: []note.Task{{Text: "x", Completed: true}, {Text: "y"}}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeNotes(&buf, notes, map[string]string{"l1": "Work"}, due))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "pinned")
	assert.Contains(t, lines[1], "#Work")
	assert.Contains(t, lines[1], "2026-10-21 09:30")
	assert.Contains(t, lines[2], "1/2")
	assert.Contains(t, lines[2], "first line")
}
