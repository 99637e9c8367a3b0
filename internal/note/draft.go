package note

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Every mutation below works on a copy and returns it; the receiver is left
// untouched so a draft never aliases the store's collection.

// WithTitle replaces the title.
func (n Note) WithTitle(title string) Note {
	out := n.Clone()
	out.Title = title
	return out
}

// WithDescription replaces the description.
func (n Note) WithDescription(description string) Note {
	out := n.Clone()
	out.Description = description
	return out
}

// WithTasks replaces the checklist.
func (n Note) WithTasks(tasks []Task) Note {
	out := n.Clone()
	out.Tasks = nil
	if tasks != nil {
		out.Tasks = make([]Task, len(tasks))
		copy(out.Tasks, tasks)
	}
	return out
}

// WithOwner stamps the owning user id.
func (n Note) WithOwner(userID string) Note {
	out := n.Clone()
	out.UserID = userID
	return out
}

// TogglePin flips the pinned flag.
func (n Note) TogglePin() Note {
	out := n.Clone()
	out.Pinned = !n.Pinned
	return out
}

// ToggleArchive flips the archived flag.
func (n Note) ToggleArchive() Note {
	out := n.Clone()
	out.Archived = !n.Archived
	return out
}

// ToggleDelete flips the deleted flag (trash / restore).
func (n Note) ToggleDelete() Note {
	out := n.Clone()
	out.Deleted = !n.Deleted
	return out
}

// SetReminder sets the due date. A zero time clears it.
func (n Note) SetReminder(at time.Time) Note {
	if at.IsZero() {
		return n.ClearReminder()
	}
	out := n.Clone()
	out.DueDateTime = &at
	return out
}

// ClearReminder removes the due date.
func (n Note) ClearReminder() Note {
	out := n.Clone()
	out.DueDateTime = nil
	return out
}

// ToggleColor sets color, or clears it when it is already selected.
func (n Note) ToggleColor(color string) Note {
	out := n.Clone()
	if n.Color != nil && *n.Color == color {
		out.Color = nil
		return out
	}
	out.Color = &color
	return out
}

// ClearColor removes the background color.
func (n Note) ClearColor() Note {
	out := n.Clone()
	out.Color = nil
	return out
}

// ToggleLabel removes labelID when attached and appends it otherwise.
func (n Note) ToggleLabel(labelID string) Note {
	if n.Labels == nil {
		out := n.Clone()
		out.Labels = []string{labelID}
		return out
	}
	if n.HasLabel(labelID) {
		return n.RemoveLabel(labelID)
	}
	out := n.Clone()
	out.Labels = append(out.Labels, labelID)
	return out
}

// RemoveLabel filters labelID out of the label set.
func (n Note) RemoveLabel(labelID string) Note {
	out := n.Clone()
	if n.Labels == nil {
		return out
	}
	kept := make([]string, 0, len(n.Labels))
	for _, id := range n.Labels {
		if id != labelID {
			kept = append(kept, id)
		}
	}
	out.Labels = kept
	return out
}

// MoveToFolder places the note in folderID. An empty id removes it from any folder.
func (n Note) MoveToFolder(folderID string) Note {
	out := n.Clone()
	if strings.TrimSpace(folderID) == "" {
		out.FolderID = nil
		return out
	}
	out.FolderID = &folderID
	return out
}

// Duplicate returns an unsaved copy of the note.
func (n Note) Duplicate() Note {
	out := n.Clone()
	out.ID = ""
	for i := range out.Tasks {
		out.Tasks[i].ID = uuid.NewString()
	}
	return out
}

// AddTask appends an unchecked task. Blank text is ignored.
func (n Note) AddTask(text string) Note {
	text = strings.TrimSpace(text)
	if text == "" {
		return n.Clone()
	}
	out := n.Clone()
	out.Tasks = append(out.Tasks, NewTask(text))
	return out
}

// ToggleTask flips completion of the task at idx.
func (n Note) ToggleTask(idx int) Note {
	out := n.Clone()
	if idx < 0 || idx >= len(out.Tasks) {
		return out
	}
	out.Tasks[idx].Completed = !out.Tasks[idx].Completed
	return out
}

// EditTask replaces the text of the task at idx.
func (n Note) EditTask(idx int, text string) Note {
	out := n.Clone()
	if idx < 0 || idx >= len(out.Tasks) {
		return out
	}
	out.Tasks[idx].Text = text
	return out
}

// RemoveTask drops the task at idx. The last removal leaves an empty, non-nil list.
func (n Note) RemoveTask(idx int) Note {
	out := n.Clone()
	if idx < 0 || idx >= len(out.Tasks) {
		return out
	}
	out.Tasks = append(out.Tasks[:idx:idx], out.Tasks[idx+1:]...)
	return out
}

// AsChecklist converts a plain note into a checklist, one task per
// non-blank description line.
func (n Note) AsChecklist() Note {
	out := n.Clone()
	if n.Type == TypeChecklist {
		return out
	}
	out.Type = TypeChecklist
	for _, line := range strings.Split(n.Description, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out.Tasks = append(out.Tasks, NewTask(strings.TrimSpace(line)))
	}
	out.Description = ""
	return out
}

// AsPlain converts a checklist back into a plain note, one line per task.
func (n Note) AsPlain() Note {
	out := n.Clone()
	if n.Type != TypeChecklist {
		return out
	}
	lines := make([]string, 0, len(n.Tasks))
	for _, t := range n.Tasks {
		lines = append(lines, t.Text)
	}
	desc := strings.Join(lines, "\n")
	if strings.TrimSpace(n.Description) != "" {
		desc = strings.TrimRight(n.Description, "\n") + "\n" + desc
	}
	out.Type = TypeNote
	out.Description = desc
	out.Tasks = nil
	return out
}
