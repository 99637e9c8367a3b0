// Package storetest provides an in-memory store.Backend for tests.
package storetest

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/note"
)

// Call records one backend invocation.
type Call struct {
	Method string
	Note   note.Note
	ID     string
}

// Backend keeps notes in memory and answers like the API: every mutation
// returns the full refreshed collection.
type Backend struct {
	mu      sync.Mutex
	notes   []note.Note
	Labels  []note.Label
	Folders []note.Folder
	Me      note.User
	Calls   []Call
	// Err, when set, is returned by every call.
	Err    error
	nextID int
}

// New seeds a backend with notes.
func New(notes ...note.Note) *Backend {
	return &Backend{notes: notes}
}

// Methods returns the recorded call methods in order.
func (b *Backend) Methods() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.Calls))
	for _, c := range b.Calls {
		out = append(out, c.Method)
	}
	return out
}

func (b *Backend) record(c Call) error {
	b.Calls = append(b.Calls, c)
	return b.Err
}

func (b *Backend) snapshot() []note.Note {
	out := make([]note.Note, 0, len(b.notes))
	for _, n := range b.notes {
		out = append(out, n.Clone())
	}
	return out
}

func (b *Backend) ListNotes(ctx context.Context) ([]note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "GET /note"}); err != nil {
		return nil, err
	}
	return b.snapshot(), nil
}

func (b *Backend) CreateNote(ctx context.Context, n note.Note) ([]note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "POST /note", Note: n}); err != nil {
		return nil, err
	}
	b.nextID++
	n = n.Clone()
	n.ID = fmt.Sprintf("new-%d", b.nextID)
	b.notes = append(b.notes, n)
	return b.snapshot(), nil
}

func (b *Backend) UpdateNote(ctx context.Context, n note.Note) ([]note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "PUT /note", Note: n, ID: n.ID}); err != nil {
		return nil, err
	}
	for i := range b.notes {
		if b.notes[i].ID == n.ID {
			b.notes[i] = n.Clone()
			return b.snapshot(), nil
		}
	}
	return nil, notFound(http.MethodPut, n.ID)
}

func (b *Backend) DeleteNote(ctx context.Context, id string) ([]note.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "DELETE /note", ID: id}); err != nil {
		return nil, err
	}
	if !b.drop(id) {
		return nil, notFound(http.MethodDelete, id)
	}
	return b.snapshot(), nil
}

// Forget removes a note without recording a call, as if another client
// deleted it.
func (b *Backend) Forget(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.drop(id)
}

func (b *Backend) drop(id string) bool {
	kept := b.notes[:0:0]
	for _, n := range b.notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	found := len(kept) != len(b.notes)
	b.notes = kept
	return found
}

func notFound(method, id string) error {
	return &api.Error{Method: method, Path: "/note/" + id, Status: http.StatusNotFound, Message: "note not found"}
}

func (b *Backend) ListLabels(ctx context.Context) ([]note.Label, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "GET /label"}); err != nil {
		return nil, err
	}
	return append([]note.Label(nil), b.Labels...), nil
}

func (b *Backend) ListFolders(ctx context.Context) ([]note.Folder, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "GET /folder"}); err != nil {
		return nil, err
	}
	return append([]note.Folder(nil), b.Folders...), nil
}

func (b *Backend) CurrentUser(ctx context.Context) (note.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.record(Call{Method: "GET /user/me"}); err != nil {
		return note.User{}, err
	}
	return b.Me, nil
}
