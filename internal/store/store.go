// Package store holds the client-side copy of the user's workspace. The note
// collection is only ever replaced wholesale with what the API returned.
package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kingrea/noteboard/internal/note"
)

// Backend is the subset of the API the store drives. api.Client satisfies it.
type Backend interface {
	ListNotes(ctx context.Context) ([]note.Note, error)
	CreateNote(ctx context.Context, n note.Note) ([]note.Note, error)
	UpdateNote(ctx context.Context, n note.Note) ([]note.Note, error)
	DeleteNote(ctx context.Context, id string) ([]note.Note, error)
	ListLabels(ctx context.Context) ([]note.Label, error)
	ListFolders(ctx context.Context) ([]note.Folder, error)
	CurrentUser(ctx context.Context) (note.User, error)
}

// Store is safe for concurrent use.
type Store struct {
	backend Backend

	mu          sync.RWMutex
	notes       []note.Note
	labels      []note.Label
	folders     []note.Folder
	user        note.User
	preferences note.Preferences
	revision    uint64
}

// New returns an empty store bound to backend. user may be zero; Load then
// asks the API who the token belongs to.
func New(backend Backend, user note.User, prefs note.Preferences) *Store {
	if prefs.ViewType == "" {
		prefs.ViewType = note.ViewGrid
	}
	return &Store{backend: backend, user: user, preferences: prefs}
}

// Load fetches notes, labels, folders and (when unknown) the current user
// concurrently. The first failure cancels the rest and nothing is installed.
func (s *Store) Load(ctx context.Context) error {
	var (
		notes   []note.Note
		labels  []note.Label
		folders []note.Folder
		user    note.User
	)
	needUser := s.User().ID == ""

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		notes, err = s.backend.ListNotes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		labels, err = s.backend.ListLabels(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = s.backend.ListFolders(gctx)
		return err
	})
	if needUser {
		g.Go(func() error {
			var err error
			user, err = s.backend.CurrentUser(gctx)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("store: load workspace: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.labels = labels
	s.folders = folders
	if needUser {
		s.user = user
	}
	s.revision++
	return nil
}

// Refresh refetches only the note collection.
func (s *Store) Refresh(ctx context.Context) error {
	notes, err := s.backend.ListNotes(ctx)
	if err != nil {
		return fmt.Errorf("store: refresh notes: %w", err)
	}
	s.ReplaceNotes(notes)
	return nil
}

// Create persists a draft owned by the current user. Drafts without content
// return note.ErrNoContent without touching the API.
func (s *Store) Create(ctx context.Context, draft note.Note) error {
	if !draft.HasContent() {
		return note.ErrNoContent
	}
	draft = draft.WithOwner(s.User().ID)
	notes, err := s.backend.CreateNote(ctx, draft)
	if err != nil {
		return fmt.Errorf("store: create note: %w", err)
	}
	s.ReplaceNotes(notes)
	return nil
}

// Update saves an edited note. Drafts without content return
// note.ErrNoContent without touching the API.
func (s *Store) Update(ctx context.Context, n note.Note) error {
	if strings.TrimSpace(n.ID) == "" {
		return note.ErrNotPersisted
	}
	if !n.HasContent() {
		return note.ErrNoContent
	}
	n = n.WithOwner(s.User().ID)
	notes, err := s.backend.UpdateNote(ctx, n)
	if err != nil {
		return fmt.Errorf("store: update note: %w", err)
	}
	s.ReplaceNotes(notes)
	return nil
}

// Apply runs mutate on the stored note id and saves the result. It is the
// path for card actions (pin, archive, trash, color...) that persist at once.
func (s *Store) Apply(ctx context.Context, id string, mutate func(note.Note) note.Note) error {
	current, ok := s.Note(id)
	if !ok {
		return fmt.Errorf("store: note %s not found", id)
	}
	return s.Update(ctx, mutate(current))
}

// Copy saves a duplicate of the stored note id.
func (s *Store) Copy(ctx context.Context, id string) error {
	current, ok := s.Note(id)
	if !ok {
		return fmt.Errorf("store: note %s not found", id)
	}
	return s.Create(ctx, current.Duplicate())
}

// Purge deletes a note permanently.
func (s *Store) Purge(ctx context.Context, id string) error {
	notes, err := s.backend.DeleteNote(ctx, id)
	if err != nil {
		return fmt.Errorf("store: delete note: %w", err)
	}
	s.ReplaceNotes(notes)
	return nil
}

// ReplaceNotes installs a new collection.
func (s *Store) ReplaceNotes(notes []note.Note) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = notes
	s.revision++
}

// Revision increments on every collection change.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Notes returns a copy of the collection.
func (s *Store) Notes() []note.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n.Clone())
	}
	return out
}

// Note looks up a note by id.
func (s *Store) Note(id string) (note.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.ID == id {
			return n.Clone(), true
		}
	}
	return note.Note{}, false
}

// Section returns the notes shown in a section.
func (s *Store) Section(section note.Section) []note.Note {
	return note.Partition(s.Notes()).In(section)
}

// Labeled returns non-deleted notes carrying labelID.
func (s *Store) Labeled(labelID string) []note.Note {
	return note.WithLabel(s.Notes(), labelID)
}

// Labels returns the user's labels.
func (s *Store) Labels() []note.Label {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]note.Label(nil), s.labels...)
}

// LabelByName finds a label case-insensitively.
func (s *Store) LabelByName(name string) (note.Label, bool) {
	name = strings.TrimSpace(name)
	for _, l := range s.Labels() {
		if strings.EqualFold(l.Name, name) {
			return l, true
		}
	}
	return note.Label{}, false
}

// LabelNames maps label ids to names.
func (s *Store) LabelNames() map[string]string {
	return note.LabelNames(s.Labels())
}

// Folders returns the user's folders.
func (s *Store) Folders() []note.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]note.Folder(nil), s.folders...)
}

// InFolder returns non-deleted notes placed in folderID.
func (s *Store) InFolder(folderID string) []note.Note {
	return note.InFolder(s.Notes(), folderID)
}

// FolderByName finds a folder case-insensitively.
func (s *Store) FolderByName(name string) (note.Folder, bool) {
	name = strings.TrimSpace(name)
	for _, f := range s.Folders() {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return note.Folder{}, false
}

// Upcoming returns reminders due at or after now, soonest first.
func (s *Store) Upcoming(now time.Time) []note.Note {
	return note.Upcoming(s.Notes(), now)
}

// FolderNames maps folder ids to names.
func (s *Store) FolderNames() map[string]string {
	return note.FolderNames(s.Folders())
}

// User returns the current user.
func (s *Store) User() note.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// Preferences returns display preferences.
func (s *Store) Preferences() note.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

// SetViewType switches grid/list layout.
func (s *Store) SetViewType(v note.ViewType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences.ViewType = v
}
