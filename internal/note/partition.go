package note

import (
	"sort"
	"time"
)

// Section names a filtered view of the collection.
type Section string

const (
	SectionHome      Section = "home"
	SectionReminders Section = "reminders"
	SectionArchived  Section = "archived"
	SectionTrash     Section = "trash"
)

// Sections lists the fixed sections in navigation order.
var Sections = []Section{SectionHome, SectionReminders, SectionArchived, SectionTrash}

// ParseSection resolves a section name, defaulting to home.
func ParseSection(value string) (Section, bool) {
	for _, s := range Sections {
		if string(s) == value {
			return s, true
		}
	}
	return SectionHome, false
}

// Title is the heading shown above a section.
func (s Section) Title() string {
	switch s {
	case SectionReminders:
		return "Reminders"
	case SectionArchived:
		return "Archived"
	case SectionTrash:
		return "Trash"
	default:
		return "Home"
	}
}

// Subtitle is the line under the heading.
func (s Section) Subtitle() string {
	switch s {
	case SectionReminders:
		return "Notes with upcoming reminders appear here!"
	case SectionArchived:
		return "Your archived notes appear here!"
	case SectionTrash:
		return "Your deleted notes appear here!"
	default:
		return "Keep all your notes organized here!"
	}
}

// EmptyState is the card shown when a section has no notes.
type EmptyState struct {
	Icon     string
	Title    string
	Subtitle string
}

// Empty returns the empty-state card for the section.
func (s Section) Empty() EmptyState {
	switch s {
	case SectionReminders:
		return EmptyState{Icon: "⏰", Title: "No upcoming reminders", Subtitle: "Notes with a reminder show up here"}
	case SectionArchived:
		return EmptyState{Icon: "▤", Title: "No archived notes", Subtitle: "Archive a note to tuck it away"}
	case SectionTrash:
		return EmptyState{Icon: "🗑", Title: "No notes in Trash"}
	default:
		return EmptyState{Icon: "✎", Title: "Notes you add appear here", Subtitle: "Press n to take a note"}
	}
}

// Buckets is the single-pass split of a collection.
type Buckets struct {
	Unarchived []Note
	Archived   []Note
	Reminders  []Note
	Trashed    []Note
}

// Partition splits notes into buckets. Deleted notes only land in Trashed;
// every other note lands in exactly one of Unarchived/Archived and, when it
// has a due date, also in Reminders. Input order is preserved.
func Partition(notes []Note) Buckets {
	var b Buckets
	for _, n := range notes {
		if n.Deleted {
			b.Trashed = append(b.Trashed, n)
			continue
		}
		if n.Archived {
			b.Archived = append(b.Archived, n)
		} else {
			b.Unarchived = append(b.Unarchived, n)
		}
		if n.DueDateTime != nil {
			b.Reminders = append(b.Reminders, n)
		}
	}
	return b
}

// In returns the bucket for a section.
func (b Buckets) In(s Section) []Note {
	switch s {
	case SectionReminders:
		return b.Reminders
	case SectionArchived:
		return b.Archived
	case SectionTrash:
		return b.Trashed
	default:
		return b.Unarchived
	}
}

// SplitPinned separates pinned notes from the rest, preserving order.
func SplitPinned(notes []Note) (pinned, others []Note) {
	for _, n := range notes {
		if n.Pinned {
			pinned = append(pinned, n)
		} else {
			others = append(others, n)
		}
	}
	return pinned, others
}

// WithLabel selects non-deleted notes carrying labelID.
func WithLabel(notes []Note, labelID string) []Note {
	var out []Note
	for _, n := range notes {
		if !n.Deleted && n.HasLabel(labelID) {
			out = append(out, n)
		}
	}
	return out
}

// InFolder selects non-deleted notes placed in folderID.
func InFolder(notes []Note, folderID string) []Note {
	var out []Note
	for _, n := range notes {
		if !n.Deleted && n.Folder() == folderID {
			out = append(out, n)
		}
	}
	return out
}

// Upcoming returns reminder notes due at or after now, soonest first.
func Upcoming(notes []Note, now time.Time) []Note {
	var out []Note
	for _, n := range notes {
		if n.Deleted || n.DueDateTime == nil || n.DueDateTime.Before(now) {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDateTime.Before(*out[j].DueDateTime)
	})
	return out
}
