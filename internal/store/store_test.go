package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store/storetest"
)

func seeded() *storetest.Backend {
	b := storetest.New(
		note.Note{ID: "a", Title: "home note", Type: note.TypeNote, Labels: []string{"l1"}},
		note.Note{ID: "b", Title: "archived", Type: note.TypeNote, Archived: true},
		note.Note{ID: "c", Title: "trashed", Type: note.TypeNote, Deleted: true, Labels: []string{"l1"}},
	)
	b.Labels = []note.Label{{ID: "l1", Name: "Work"}}
	b.Folders = []note.Folder{{ID: "f1", Name: "Projects"}}
	b.Me = note.User{ID: "u1", Username: "ada"}
	return b
}

func TestLoadFetchesWorkspace(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{}, note.Preferences{})
	require.NoError(t, s.Load(context.Background()))

	assert.Len(t, s.Notes(), 3)
	assert.Equal(t, "Work", s.LabelNames()["l1"])
	assert.Equal(t, "Projects", s.FolderNames()["f1"])
	assert.Equal(t, "ada", s.User().Username)
	assert.Equal(t, note.ViewGrid, s.Preferences().ViewType)
	assert.ElementsMatch(t, []string{"GET /note", "GET /label", "GET /folder", "GET /user/me"}, backend.Methods())
}

func TestLoadSkipsUserWhenConfigured(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "cfg", Username: "cfg-user"}, note.Preferences{ViewType: note.ViewList})
	require.NoError(t, s.Load(context.Background()))
	assert.NotContains(t, backend.Methods(), "GET /user/me")
	assert.Equal(t, "cfg", s.User().ID)
}

func TestLoadFailureInstallsNothing(t *testing.T) {
	backend := seeded()
	backend.Err = errors.New("boom")
	s := New(backend, note.User{}, note.Preferences{})
	err := s.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	assert.Empty(t, s.Notes())
	assert.Zero(t, s.Revision())
}

func TestCreateWithoutContentSkipsAPI(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	err := s.Create(context.Background(), note.NewDraft().WithTitle("   "))
	assert.ErrorIs(t, err, note.ErrNoContent)
	assert.Empty(t, backend.Calls)
}

func TestCreateStampsOwnerAndReplaces(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Create(context.Background(), note.NewDraft().WithDescription("milk")))

	require.Len(t, backend.Calls, 1)
	assert.Equal(t, "u1", backend.Calls[0].Note.UserID)
	assert.Len(t, s.Notes(), 4)
	assert.Equal(t, uint64(1), s.Revision())
}

func TestUpdateRequiresIDAndContent(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	assert.ErrorIs(t, s.Update(context.Background(), note.NewDraft().WithTitle("x")), note.ErrNotPersisted)
	assert.ErrorIs(t, s.Update(context.Background(), note.Note{ID: "a"}), note.ErrNoContent)
	assert.Empty(t, backend.Calls)
}

func TestApplyPersistsCardAction(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Apply(context.Background(), "a", note.Note.ToggleArchive))
	assert.Empty(t, s.Section(note.SectionHome))
	assert.Len(t, s.Section(note.SectionArchived), 2)

	err := s.Apply(context.Background(), "missing", note.Note.TogglePin)
	assert.ErrorContains(t, err, "not found")
}

func TestUpdateOfNoteDeletedElsewhereIsNotFound(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Refresh(context.Background()))
	backend.Forget("a")

	err := s.Apply(context.Background(), "a", note.Note.TogglePin)
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err), "404 survives wrapping: %v", err)
	_, ok := s.Note("a")
	assert.True(t, ok, "failed save keeps the collection")
}

func TestCopyAndPurge(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Refresh(context.Background()))

	require.NoError(t, s.Copy(context.Background(), "a"))
	home := s.Section(note.SectionHome)
	require.Len(t, home, 2)
	assert.Equal(t, "home note", home[1].Title)
	assert.NotEqual(t, "a", home[1].ID)

	require.NoError(t, s.Purge(context.Background(), "c"))
	assert.Empty(t, s.Section(note.SectionTrash))
}

func TestFailedSaveKeepsCollection(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Refresh(context.Background()))
	before := s.Revision()

	backend.Err = errors.New("offline")
	err := s.Apply(context.Background(), "a", note.Note.TogglePin)
	assert.ErrorContains(t, err, "offline")
	assert.Equal(t, before, s.Revision())
	n, _ := s.Note("a")
	assert.False(t, n.Pinned)
}

func TestNotesAreCopies(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{}, note.Preferences{})
	require.NoError(t, s.Refresh(context.Background()))
	notes := s.Notes()
	notes[0].Labels[0] = "mutated"
	n, ok := s.Note("a")
	require.True(t, ok)
	assert.Equal(t, []string{"l1"}, n.Labels)
}

func TestLabeledAndLabelByName(t *testing.T) {
	backend := seeded()
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Load(context.Background()))

	labeled := s.Labeled("l1")
	require.Len(t, labeled, 1)
	assert.Equal(t, "a", labeled[0].ID)

	l, ok := s.LabelByName(" work ")
	assert.True(t, ok)
	assert.Equal(t, "l1", l.ID)
	_, ok = s.LabelByName("nope")
	assert.False(t, ok)
}

func TestFolderViews(t *testing.T) {
	backend := storetest.New(
		note.Note{ID: "a", Title: "loose", Type: note.TypeNote},
		note.Note{ID: "d", Title: "plan", Type: note.TypeNote}.MoveToFolder("f1"),
		note.Note{ID: "e", Title: "old plan", Type: note.TypeNote, Deleted: true}.MoveToFolder("f1"),
	)
	backend.Folders = []note.Folder{{ID: "f1", Name: "Projects"}}
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Load(context.Background()))

	f, ok := s.FolderByName("projects ")
	require.True(t, ok)
	assert.Equal(t, "f1", f.ID)
	_, ok = s.FolderByName("attic")
	assert.False(t, ok)

	inFolder := s.InFolder(f.ID)
	require.Len(t, inFolder, 1)
	assert.Equal(t, "d", inFolder[0].ID)
}

func TestUpcomingReminders(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	backend := storetest.New(
		note.Note{ID: "late", Title: "late", Type: note.TypeNote}.SetReminder(now.Add(48*time.Hour)),
		note.Note{ID: "past", Title: "past", Type: note.TypeNote}.SetReminder(now.Add(-time.Hour)),
		note.Note{ID: "soon", Title: "soon", Type: note.TypeNote}.SetReminder(now.Add(time.Hour)),
	)
	s := New(backend, note.User{ID: "u1"}, note.Preferences{})
	require.NoError(t, s.Load(context.Background()))

	var ids []string
	for _, n := range s.Upcoming(now) {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"soon", "late"}, ids)
}
