package note

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ids(notes []Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestPartition(t *testing.T) {
	due := time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC)
	notes := []Note{
		{ID: "plain"},
		{ID: "archived", Archived: true},
		{ID: "trashed", Deleted: true, DueDateTime: &due},
		{ID: "trashed-archived", Deleted: true, Archived: true},
		{ID: "reminder", DueDateTime: &due},
		{ID: "archived-reminder", Archived: true, DueDateTime: &due},
	}
	b := Partition(notes)
	assert.Equal(t, []string{"plain", "reminder"}, ids(b.Unarchived))
	assert.Equal(t, []string{"archived", "archived-reminder"}, ids(b.Archived))
	assert.Equal(t, []string{"reminder", "archived-reminder"}, ids(b.Reminders))
	assert.Equal(t, []string{"trashed", "trashed-archived"}, ids(b.Trashed))

	assert.Equal(t, b.Unarchived, b.In(SectionHome))
	assert.Equal(t, b.Trashed, b.In(SectionTrash))
}

func TestPartitionEmpty(t *testing.T) {
	b := Partition(nil)
	assert.Empty(t, b.In(SectionHome))
	assert.Empty(t, b.In(SectionReminders))
}

func TestSplitPinned(t *testing.T) {
	pinned, others := SplitPinned([]Note{{ID: "a"}, {ID: "b", Pinned: true}, {ID: "c"}})
	assert.Equal(t, []string{"b"}, ids(pinned))
	assert.Equal(t, []string{"a", "c"}, ids(others))
}

func TestLabelAndFolderFilters(t *testing.T) {
	folder := "f1"
	notes := []Note{
		{ID: "a", Labels: []string{"x"}},
		{ID: "b", Labels: []string{"x"}, Deleted: true},
		{ID: "c", FolderID: &folder},
	}
	assert.Equal(t, []string{"a"}, ids(WithLabel(notes, "x")))
	assert.Equal(t, []string{"c"}, ids(InFolder(notes, "f1")))
	assert.Empty(t, InFolder(notes, "missing"))
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	soon := now.Add(time.Hour)
	later := now.Add(48 * time.Hour)
	notes := []Note{
		{ID: "later", DueDateTime: &later},
		{ID: "past", DueDateTime: &past},
		{ID: "soon", DueDateTime: &soon},
		{ID: "none"},
	}
	assert.Equal(t, []string{"soon", "later"}, ids(Upcoming(notes, now)))
}

func TestParseSection(t *testing.T) {
	s, ok := ParseSection("trash")
	assert.True(t, ok)
	assert.Equal(t, SectionTrash, s)

	s, ok = ParseSection("bogus")
	assert.False(t, ok)
	assert.Equal(t, SectionHome, s)
}
