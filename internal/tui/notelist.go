package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/noteboard/internal/note"
)

const (
	gridColumns       = 3
	cardBodyLines     = 6
	cardChecklistRows = 5
)

// noteList renders a set of notes as cards in a grid or a single column.
type noteList struct {
	notes      []note.Note
	empty      note.EmptyState
	viewType   note.ViewType
	selected   int
	width      int
	labelNames map[string]string
	folders    map[string]string
	now        time.Time
}

func (l noteList) columns() int {
	if l.viewType == note.ViewList {
		return 1
	}
	return gridColumns
}

func (l noteList) View() string {
	if len(l.notes) == 0 {
		return l.renderEmpty()
	}
	cols := l.columns()
	cardWidth := max(16, (l.width-(cols-1))/cols-4)
	var rows []string
	for start := 0; start < len(l.notes); start += cols {
		end := min(start+cols, len(l.notes))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cards = append(cards, l.renderCard(l.notes[i], cardWidth, i == l.selected))
			if i < end-1 {
				cards = append(cards, " ")
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (l noteList) renderEmpty() string {
	lines := []string{}
	if l.empty.Icon != "" {
		lines = append(lines, l.empty.Icon)
	}
	lines = append(lines, cardTitleStyle.Render(l.empty.Title))
	if l.empty.Subtitle != "" {
		lines = append(lines, subtitleStyle.Render(l.empty.Subtitle))
	}
	return panelStyle.
		Width(max(20, l.width-4)).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func (l noteList) renderCard(n note.Note, width int, selected bool) string {
	var lines []string
	title := strings.TrimSpace(n.Title)
	if n.Pinned {
		title = "★ " + title
	}
	if strings.TrimSpace(title) != "" {
		lines = append(lines, cardTitleStyle.Render(truncate(title, width)))
	}
	if n.IsChecklist() {
		lines = append(lines, checklistLines(n, width)...)
	} else if body := strings.TrimSpace(n.Description); body != "" {
		lines = append(lines, wrapLines(body, width, cardBodyLines)...)
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("Empty note"))
	}
	if chips := noteChips(n, l.labelNames, l.folders, l.now); len(chips) > 0 {
		lines = append(lines, mutedStyle.Render(truncate(strings.Join(chips, " · "), width)))
	}
	return cardStyle(n, width, selected).Render(strings.Join(lines, "\n"))
}

func checklistLines(n note.Note, width int) []string {
	var lines []string
	for i, t := range n.Tasks {
		if i == cardChecklistRows {
			lines = append(lines, mutedStyle.Render(fmt.Sprintf("+ %d more", len(n.Tasks)-cardChecklistRows)))
			break
		}
		lines = append(lines, truncate(taskLine(t), width))
	}
	if len(n.Tasks) > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("%d/%d done", n.CompletedTasks(), len(n.Tasks))))
	}
	return lines
}

func taskLine(t note.Task) string {
	if t.Completed {
		return "☑ " + t.Text
	}
	return "☐ " + t.Text
}

// noteChips lists label, reminder and folder chips in display order. Labels
// the user no longer has are skipped.
func noteChips(n note.Note, labelNames, folders map[string]string, now time.Time) []string {
	var chips []string
	for _, id := range n.Labels {
		if name, ok := labelNames[id]; ok && name != "" {
			chips = append(chips, "#"+name)
		}
	}
	if n.DueDateTime != nil {
		chips = append(chips, "⏰ "+formatReminder(*n.DueDateTime, now))
	}
	if name, ok := folders[n.Folder()]; ok && name != "" {
		chips = append(chips, "▸ "+name)
	}
	return chips
}

// formatReminder prints a due date relative to now.
func formatReminder(at, now time.Time) string {
	at = at.In(now.Location())
	days := int(math.Round(startOfDay(at).Sub(startOfDay(now)).Hours() / 24))
	switch {
	case days == 0:
		return "Today, " + at.Format("15:04")
	case days == 1:
		return "Tomorrow, " + at.Format("15:04")
	case days == -1:
		return "Yesterday, " + at.Format("15:04")
	case at.Year() == now.Year():
		return at.Format("Jan 2, 15:04")
	default:
		return at.Format("Jan 2 2006, 15:04")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func truncate(s string, width int) string {
	if width <= 1 || lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes)) > width-1 {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

func wrapLines(body string, width, limit int) []string {
	wrapped := lipgloss.NewStyle().Width(max(1, width)).Render(body)
	lines := strings.Split(wrapped, "\n")
	if len(lines) > limit {
		lines = append(lines[:limit-1], "…")
	}
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}
