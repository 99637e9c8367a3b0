// internal/note/note.go
//
// Records exchanged with the notes API. Field names on the wire follow the
// API's JSON (underscore ids, camelCase flags).

package note

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Type distinguishes plain notes from checklists.
type Type string

const (
	TypeNote      Type = "NOTE"
	TypeChecklist Type = "CHECKLIST"
)

var (
	// ErrNoContent is returned when a draft has no title, description or tasks.
	ErrNoContent = errors.New("note: nothing to save")
	// ErrNotPersisted is returned when an operation needs a server id.
	ErrNotPersisted = errors.New("note: note has no id")
)

// Task is one checklist entry.
type Task struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"isCompleted"`
}

// NewTask returns an unchecked task with a client-side id.
func NewTask(text string) Task {
	return Task{ID: uuid.NewString(), Text: text}
}

// Note is a user-authored record with plain or checklist content.
type Note struct {
	ID          string     `json:"_id,omitempty"`
	UserID      string     `json:"userId,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        Type       `json:"type"`
	Tasks       []Task     `json:"tasks"`
	DueDateTime *time.Time `json:"dueDateTime"`
	Color       *string    `json:"color"`
	Labels      []string   `json:"labels"`
	FolderID    *string    `json:"folderId"`
	Pinned      bool       `json:"isPinned"`
	Archived    bool       `json:"isArchived"`
	Deleted     bool       `json:"isDeleted"`
}

// Label is a user-defined tag.
type Label struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Folder is a user-defined grouping bucket.
type Folder struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// User is the account the client acts on behalf of.
type User struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
}

// ViewType controls how lists are laid out.
type ViewType string

const (
	ViewGrid ViewType = "grid"
	ViewList ViewType = "list"
)

// Preferences holds per-user display settings.
type Preferences struct {
	ViewType ViewType `json:"viewType" yaml:"view_type"`
}

// NewDraft returns the empty creation form.
func NewDraft() Note {
	return Note{Type: TypeNote}
}

// NewChecklistDraft returns an empty checklist draft.
func NewChecklistDraft() Note {
	return Note{Type: TypeChecklist}
}

// HasContent reports whether the note is worth persisting.
func (n Note) HasContent() bool {
	return strings.TrimSpace(n.Title) != "" ||
		strings.TrimSpace(n.Description) != "" ||
		len(n.Tasks) > 0
}

// IsChecklist reports whether the note carries a task list.
func (n Note) IsChecklist() bool {
	return n.Type == TypeChecklist
}

// HasLabel reports whether labelID is attached.
func (n Note) HasLabel(labelID string) bool {
	for _, id := range n.Labels {
		if id == labelID {
			return true
		}
	}
	return false
}

// ColorKey returns the palette key or "" when the note is uncolored.
func (n Note) ColorKey() string {
	if n.Color == nil {
		return ""
	}
	return *n.Color
}

// Folder returns the folder id or "".
func (n Note) Folder() string {
	if n.FolderID == nil {
		return ""
	}
	return *n.FolderID
}

// Clone returns a deep copy so callers can mutate without aliasing.
func (n Note) Clone() Note {
	out := n
	if n.Tasks != nil {
		out.Tasks = make([]Task, len(n.Tasks))
		copy(out.Tasks, n.Tasks)
	}
	if n.Labels != nil {
		out.Labels = make([]string, len(n.Labels))
		copy(out.Labels, n.Labels)
	}
	if n.DueDateTime != nil {
		due := *n.DueDateTime
		out.DueDateTime = &due
	}
	if n.Color != nil {
		c := *n.Color
		out.Color = &c
	}
	if n.FolderID != nil {
		f := *n.FolderID
		out.FolderID = &f
	}
	return out
}

// CompletedTasks counts checked entries.
func (n Note) CompletedTasks() int {
	done := 0
	for _, t := range n.Tasks {
		if t.Completed {
			done++
		}
	}
	return done
}

// LabelNames maps label ids to display names. Labels without an id are skipped.
func LabelNames(labels []Label) map[string]string {
	names := make(map[string]string, len(labels))
	for _, l := range labels {
		if l.ID == "" {
			continue
		}
		names[l.ID] = l.Name
	}
	return names
}

// FolderNames maps folder ids to display names.
func FolderNames(folders []Folder) map[string]string {
	names := make(map[string]string, len(folders))
	for _, f := range folders {
		if f.ID == "" {
			continue
		}
		names[f.ID] = f.Name
	}
	return names
}
