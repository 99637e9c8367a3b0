package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/noteboard/internal/note"
)

type editorMode int

const (
	modeCompose editorMode = iota // new note, saved with POST on close
	modeEdit                      // existing note, saved with PUT on close
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldBody
	fieldChips
)

// editorIntent is what the editor asks the app to do after a key press.
type editorIntent int

const (
	intentNone editorIntent = iota
	intentClose
	intentRemind
	intentColor
	intentLabel
	intentFolder
)

type chipKind int

const (
	chipLabel chipKind = iota
	chipReminder
	chipFolder
)

type chip struct {
	kind chipKind
	id   string
	text string
}

// editor is the shared form behind the composer and the edit dialog. The
// draft is the source of truth; the inputs mirror it.
type editor struct {
	mode  editorMode
	draft note.Note
	focus editorField

	title     textinput.Model
	body      textarea.Model
	taskInput textinput.Model
	// taskCursor indexes draft.Tasks; len(draft.Tasks) is the new-task input.
	taskCursor  int
	editingTask int
	chipCursor  int

	keys  editorKeys
	help  help.Model
	width int
}

func newEditor(mode editorMode, draft note.Note, width int) *editor {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.SetValue(draft.Title)

	body := textarea.New()
	body.Placeholder = "Take a note..."
	body.ShowLineNumbers = false
	body.CharLimit = 0
	body.SetHeight(6)
	body.SetValue(draft.Description)

	taskInput := textinput.New()
	taskInput.Placeholder = "List item"
	taskInput.Prompt = "+ "

	e := &editor{
		mode:        mode,
		draft:       draft.Clone(),
		title:       title,
		body:        body,
		taskInput:   taskInput,
		taskCursor:  len(draft.Tasks),
		editingTask: -1,
		keys:        newEditorKeys(),
		help:        help.New(),
	}
	if mode == modeEdit {
		e.keys.Folder.SetEnabled(false)
	}
	e.setWidth(width)
	e.setFocus(fieldTitle)
	return e
}

// detach turns an edit dialog into a composer for a copy of the draft, so
// the next close creates the note again.
func (e *editor) detach() {
	e.mode = modeCompose
	e.draft = e.draft.Duplicate()
	e.keys.Folder.SetEnabled(true)
}

func (e *editor) setWidth(width int) {
	e.width = max(30, width)
	inner := e.width - 6
	e.title.Width = inner
	e.body.SetWidth(inner)
	e.taskInput.Width = inner - 4
	e.help.Width = inner
}

func (e *editor) setFocus(f editorField) tea.Cmd {
	e.focus = f
	e.title.Blur()
	e.body.Blur()
	e.taskInput.Blur()
	switch f {
	case fieldTitle:
		return e.title.Focus()
	case fieldBody:
		if e.draft.IsChecklist() {
			if e.taskCursor >= len(e.draft.Tasks) {
				return e.taskInput.Focus()
			}
			return nil
		}
		return e.body.Focus()
	}
	return nil
}

func (e *editor) nextField(step int) tea.Cmd {
	fields := []editorField{fieldTitle, fieldBody}
	if len(e.chips()) > 0 {
		fields = append(fields, fieldChips)
	}
	idx := 0
	for i, f := range fields {
		if f == e.focus {
			idx = i
		}
	}
	idx = (idx + step + len(fields)) % len(fields)
	return e.setFocus(fields[idx])
}

// replace swaps the draft (after a popover pick or a toggle) and keeps the
// inputs in sync.
func (e *editor) replace(n note.Note) {
	e.draft = n
	if e.title.Value() != n.Title {
		e.title.SetValue(n.Title)
	}
	if e.body.Value() != n.Description {
		e.body.SetValue(n.Description)
	}
	if e.taskCursor > len(n.Tasks) {
		e.taskCursor = len(n.Tasks)
	}
	if chips := e.chips(); e.chipCursor >= len(chips) {
		e.chipCursor = max(0, len(chips)-1)
		if len(chips) == 0 && e.focus == fieldChips {
			e.setFocus(fieldTitle)
		}
	}
}

// result is the draft as it should be saved, including a list item still
// sitting in the task input.
func (e *editor) result() note.Note {
	out := e.draft.Clone()
	if !out.IsChecklist() {
		return out
	}
	pending := strings.TrimSpace(e.taskInput.Value())
	switch {
	case e.editingTask >= 0 && pending != "":
		out = out.EditTask(e.editingTask, pending)
	case e.editingTask < 0:
		out = out.AddTask(pending)
	}
	return out
}

func (e *editor) update(msg tea.KeyMsg) (editorIntent, tea.Cmd) {
	switch {
	case key.Matches(msg, e.keys.Close):
		return intentClose, nil
	case key.Matches(msg, e.keys.NextField):
		return intentNone, e.nextField(1)
	case key.Matches(msg, e.keys.PrevField):
		return intentNone, e.nextField(-1)
	case key.Matches(msg, e.keys.Pin):
		e.replace(e.draft.TogglePin())
		return intentNone, nil
	case key.Matches(msg, e.keys.Archive):
		e.replace(e.draft.ToggleArchive())
		return intentNone, nil
	case key.Matches(msg, e.keys.Checklist):
		if e.draft.IsChecklist() {
			e.replace(e.draft.AsPlain())
		} else {
			e.replace(e.draft.AsChecklist())
			e.taskCursor = len(e.draft.Tasks)
		}
		if e.focus == fieldBody {
			return intentNone, e.setFocus(fieldBody)
		}
		return intentNone, nil
	case key.Matches(msg, e.keys.Remind):
		return intentRemind, nil
	case key.Matches(msg, e.keys.Color):
		return intentColor, nil
	case key.Matches(msg, e.keys.Label):
		return intentLabel, nil
	case key.Matches(msg, e.keys.Folder):
		return intentFolder, nil
	}

	var cmd tea.Cmd
	switch e.focus {
	case fieldTitle:
		if msg.String() == "enter" || msg.String() == "down" {
			return intentNone, e.setFocus(fieldBody)
		}
		e.title, cmd = e.title.Update(msg)
		e.draft = e.draft.WithTitle(e.title.Value())
	case fieldBody:
		if e.draft.IsChecklist() {
			return intentNone, e.updateTasks(msg)
		}
		e.body, cmd = e.body.Update(msg)
		e.draft = e.draft.WithDescription(e.body.Value())
	case fieldChips:
		e.updateChips(msg)
	}
	return intentNone, cmd
}

// forward hands non-key messages such as cursor blinks to the focused input.
func (e *editor) forward(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case e.focus == fieldTitle:
		e.title, cmd = e.title.Update(msg)
	case e.focus == fieldBody && e.draft.IsChecklist():
		e.taskInput, cmd = e.taskInput.Update(msg)
	case e.focus == fieldBody:
		e.body, cmd = e.body.Update(msg)
	}
	return cmd
}

func (e *editor) updateTasks(msg tea.KeyMsg) tea.Cmd {
	onInput := e.taskCursor >= len(e.draft.Tasks)
	switch msg.String() {
	case "up":
		if e.taskCursor > 0 {
			e.taskCursor--
		}
		return e.setFocus(fieldBody)
	case "down":
		if e.taskCursor < len(e.draft.Tasks) {
			e.taskCursor++
		}
		return e.setFocus(fieldBody)
	}
	if !onInput {
		switch msg.String() {
		case " ", "x":
			e.replace(e.draft.ToggleTask(e.taskCursor))
		case "backspace", "delete":
			e.replace(e.draft.RemoveTask(e.taskCursor))
			switch {
			case e.editingTask == e.taskCursor:
				e.editingTask = -1
				e.taskInput.SetValue("")
			case e.editingTask > e.taskCursor:
				e.editingTask--
			}
		case "enter":
			e.editingTask = e.taskCursor
			e.taskInput.SetValue(e.draft.Tasks[e.taskCursor].Text)
			e.taskCursor = len(e.draft.Tasks)
			return e.setFocus(fieldBody)
		}
		return nil
	}
	if msg.String() == "enter" {
		text := strings.TrimSpace(e.taskInput.Value())
		if e.editingTask >= 0 {
			if text == "" {
				e.replace(e.draft.RemoveTask(e.editingTask))
			} else {
				e.replace(e.draft.EditTask(e.editingTask, text))
			}
			e.editingTask = -1
		} else {
			e.replace(e.draft.AddTask(text))
		}
		e.taskInput.SetValue("")
		e.taskCursor = len(e.draft.Tasks)
		return nil
	}
	var cmd tea.Cmd
	e.taskInput, cmd = e.taskInput.Update(msg)
	return cmd
}

func (e *editor) updateChips(msg tea.KeyMsg) {
	chips := e.chips()
	if len(chips) == 0 {
		return
	}
	switch msg.String() {
	case "left", "h":
		if e.chipCursor > 0 {
			e.chipCursor--
		}
	case "right", "l":
		if e.chipCursor < len(chips)-1 {
			e.chipCursor++
		}
	case "backspace", "delete", "x":
		c := chips[min(e.chipCursor, len(chips)-1)]
		switch c.kind {
		case chipLabel:
			e.replace(e.draft.RemoveLabel(c.id))
		case chipReminder:
			e.replace(e.draft.ClearReminder())
		case chipFolder:
			e.replace(e.draft.MoveToFolder(""))
		}
	}
}

// chipsWith lists the removable chips under the body with display names.
func (e *editor) chipsWith(labelNames, folderNames map[string]string, now time.Time) []chip {
	var out []chip
	for _, id := range e.draft.Labels {
		name, ok := labelNames[id]
		if !ok {
			name = id
		}
		out = append(out, chip{kind: chipLabel, id: id, text: "#" + name})
	}
	if e.draft.DueDateTime != nil {
		out = append(out, chip{kind: chipReminder, text: "⏰ " + formatReminder(*e.draft.DueDateTime, now)})
	}
	if id := e.draft.Folder(); id != "" {
		name, ok := folderNames[id]
		if !ok {
			name = id
		}
		out = append(out, chip{kind: chipFolder, id: id, text: "▸ " + name})
	}
	return out
}

// chips is chipsWith without names, for cursor bookkeeping.
func (e *editor) chips() []chip {
	return e.chipsWith(nil, nil, time.Now())
}

func (e *editor) view(labelNames, folderNames map[string]string, now time.Time) string {
	heading := "Take a note"
	if e.mode == modeEdit {
		heading = "Edit note"
	}
	var flags []string
	if e.draft.Pinned {
		flags = append(flags, "★ pinned")
	}
	if e.draft.Archived {
		flags = append(flags, "archived")
	}
	if colorKey := e.draft.ColorKey(); colorKey != "" {
		flags = append(flags, "● "+colorKey)
	}
	head := sectionTitleStyle.Render(heading)
	if len(flags) > 0 {
		head += "  " + mutedStyle.Render(strings.Join(flags, " · "))
	}

	lines := []string{head, e.title.View(), ""}
	if e.draft.IsChecklist() {
		lines = append(lines, e.renderTasks()...)
	} else {
		lines = append(lines, e.body.View())
	}

	if chips := e.chipsWith(labelNames, folderNames, now); len(chips) > 0 {
		rendered := make([]string, 0, len(chips))
		for i, c := range chips {
			style := chipStyle
			if e.focus == fieldChips && i == e.chipCursor {
				style = activeChipStyle
			}
			rendered = append(rendered, style.Render(c.text))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	lines = append(lines, "", e.help.View(e.keys))

	style := dialogStyle.Width(e.width - 2)
	if hex, ok := note.ColorHex(e.draft.ColorKey()); ok {
		style = style.BorderForeground(lipgloss.Color(hex))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (e *editor) renderTasks() []string {
	lines := make([]string, 0, len(e.draft.Tasks)+1)
	for i, t := range e.draft.Tasks {
		box := "[ ]"
		text := t.Text
		if t.Completed {
			box = "[x]"
			text = mutedStyle.Strikethrough(true).Render(text)
		}
		line := fmt.Sprintf("%s %s", box, text)
		if e.focus == fieldBody && i == e.taskCursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	input := e.taskInput.View()
	if e.editingTask >= 0 {
		input += mutedStyle.Render(fmt.Sprintf("  (editing item %d)", e.editingTask+1))
	}
	return append(lines, "  "+input)
}
