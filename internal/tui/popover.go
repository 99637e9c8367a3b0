package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/kingrea/noteboard/internal/note"
)

type popoverKind int

const (
	popMore popoverKind = iota
	popColor
	popLabel
	popFolder
	popReminder
)

// More-menu option ids.
const (
	optAddLabel      = "add-label"
	optMoveToFolder  = "move-to-folder"
	optMakeCopy      = "make-copy"
	optDeleteNote    = "delete-note"
	optRestoreNote   = "restore-note"
	optDeleteForever = "delete-forever"
)

// pick is what a popover hands back when the user chooses something.
type pick struct {
	kind  popoverKind
	value string
	at    time.Time
}

// popover is a small modal anchored over the board or the editor.
// update returns a pick (or nil) and whether the popover should close.
type popover interface {
	kind() popoverKind
	update(msg tea.KeyMsg) (*pick, bool, tea.Cmd)
	view() string
}

// menuItem implements list.Item interface for popover menus
type menuItem struct {
	id    string
	title string
	desc  string
}

func (i menuItem) Title() string       { return i.title }
func (i menuItem) Description() string { return i.desc }
func (i menuItem) FilterValue() string { return i.title }

// menuPopover is a bubbles list of options: the more menu and the folder picker.
type menuPopover struct {
	which popoverKind
	list  list.Model
}

func newMenuPopover(which popoverKind, title string, items []list.Item, selected int) *menuPopover {
	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)
	menu := list.New(items, delegate, 32, len(items)+4)
	menu.Title = title
	menu.SetShowStatusBar(false)
	menu.SetShowHelp(false)
	menu.SetShowPagination(false)
	menu.SetFilteringEnabled(false)
	menu.DisableQuitKeybindings()
	if selected >= 0 && selected < len(items) {
		menu.Select(selected)
	}
	return &menuPopover{which: which, list: menu}
}

func newMoreMenu(trashed bool) *menuPopover {
	items := []list.Item{
		menuItem{id: optAddLabel, title: "Add label"},
		menuItem{id: optMoveToFolder, title: "Move to folder"},
		menuItem{id: optMakeCopy, title: "Make a copy"},
		menuItem{id: optDeleteNote, title: "Delete note"},
	}
	if trashed {
		items = []list.Item{
			menuItem{id: optRestoreNote, title: "Restore"},
			menuItem{id: optDeleteForever, title: "Delete forever"},
		}
	}
	return newMenuPopover(popMore, "More", items, 0)
}

func newFolderPopover(folders []note.Folder, current string) *menuPopover {
	items := make([]list.Item, 0, len(folders)+1)
	selected := 0
	noFolder := "No folder"
	if current == "" {
		noFolder = "✓ " + noFolder
	}
	items = append(items, menuItem{id: "", title: noFolder})
	for i, f := range folders {
		title := f.Name
		if f.ID == current {
			title = "✓ " + title
			selected = i + 1
		}
		items = append(items, menuItem{id: f.ID, title: title})
	}
	return newMenuPopover(popFolder, "Move to folder", items, selected)
}

func (p *menuPopover) kind() popoverKind { return p.which }

func (p *menuPopover) update(msg tea.KeyMsg) (*pick, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "enter":
		item, ok := p.list.SelectedItem().(menuItem)
		if !ok {
			return nil, true, nil
		}
		return &pick{kind: p.which, value: item.id}, true, nil
	}
	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return nil, false, cmd
}

func (p *menuPopover) view() string {
	return popoverStyle.Render(p.list.View())
}

// colorPopover is the background options row. Index 0 is "no color".
type colorPopover struct {
	selected string
	cursor   int
}

func newColorPopover(selected string) *colorPopover {
	p := &colorPopover{selected: selected}
	for i, c := range note.Palette {
		if c.Key == selected {
			p.cursor = i + 1
		}
	}
	return p
}

func (p *colorPopover) kind() popoverKind { return popColor }

func (p *colorPopover) update(msg tea.KeyMsg) (*pick, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "left", "h", "shift+tab":
		if p.cursor > 0 {
			p.cursor--
		}
	case "right", "l", "tab":
		if p.cursor < len(note.Palette) {
			p.cursor++
		}
	case "enter", " ":
		value := ""
		if p.cursor > 0 {
			value = note.Palette[p.cursor-1].Key
		}
		return &pick{kind: popColor, value: value}, true, nil
	}
	return nil, false, nil
}

func (p *colorPopover) view() string {
	cells := make([]string, 0, len(note.Palette)+1)
	names := []string{"none"}
	cells = append(cells, swatch("", p.cursor == 0, p.selected == ""))
	for i, c := range note.Palette {
		cells = append(cells, swatch(c.Hex, p.cursor == i+1, p.selected == c.Key))
		names = append(names, c.Key)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	body := lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render("Background options"),
		row,
		mutedStyle.Render(fmt.Sprintf("%s  ←/→ choose · enter apply · esc close", names[p.cursor])),
	)
	return popoverStyle.Render(body)
}

func swatch(hex string, focused, selected bool) string {
	mark := "  "
	if selected {
		mark = "✓ "
	}
	style := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(borderColor)
	if hex != "" {
		style = style.Background(lipgloss.Color(hex))
	} else if !selected {
		mark = "∅ "
	}
	if focused {
		style = style.BorderForeground(accentColor)
	}
	return style.Render(mark)
}

// labelPopover lists user labels with check marks and a fuzzy filter.
// Choosing a label toggles it and keeps the popover open.
type labelPopover struct {
	labels   []note.Label
	selected map[string]bool
	filter   textinput.Model
	matches  []int
	cursor   int
}

func newLabelPopover(labels []note.Label, selected []string) *labelPopover {
	filter := textinput.New()
	filter.Placeholder = "Filter labels"
	filter.Prompt = "⌕ "
	filter.Focus()
	p := &labelPopover{
		labels:   labels,
		selected: map[string]bool{},
		filter:   filter,
	}
	for _, id := range selected {
		p.selected[id] = true
	}
	p.refresh()
	return p
}

func (p *labelPopover) kind() popoverKind { return popLabel }

func (p *labelPopover) refresh() {
	query := strings.TrimSpace(p.filter.Value())
	p.matches = p.matches[:0]
	if query == "" {
		for i := range p.labels {
			p.matches = append(p.matches, i)
		}
	} else {
		names := make([]string, len(p.labels))
		for i, l := range p.labels {
			names[i] = l.Name
		}
		for _, m := range fuzzy.Find(query, names) {
			p.matches = append(p.matches, m.Index)
		}
	}
	if p.cursor >= len(p.matches) {
		p.cursor = max(0, len(p.matches)-1)
	}
}

func (p *labelPopover) update(msg tea.KeyMsg) (*pick, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "up", "ctrl+p":
		if p.cursor > 0 {
			p.cursor--
		}
		return nil, false, nil
	case "down", "ctrl+n":
		if p.cursor < len(p.matches)-1 {
			p.cursor++
		}
		return nil, false, nil
	case "enter":
		if len(p.matches) == 0 {
			return nil, false, nil
		}
		l := p.labels[p.matches[p.cursor]]
		p.selected[l.ID] = !p.selected[l.ID]
		return &pick{kind: popLabel, value: l.ID}, false, nil
	}
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	p.refresh()
	return nil, false, cmd
}

func (p *labelPopover) view() string {
	lines := []string{sectionTitleStyle.Render("Label note"), p.filter.View()}
	if len(p.labels) == 0 {
		lines = append(lines, mutedStyle.Render("No labels yet"))
	} else if len(p.matches) == 0 {
		lines = append(lines, mutedStyle.Render("No matching labels"))
	}
	for i, idx := range p.matches {
		l := p.labels[idx]
		box := "[ ]"
		if p.selected[l.ID] {
			box = "[x]"
		}
		line := fmt.Sprintf("%s %s", box, l.Name)
		if i == p.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, mutedStyle.Render("enter toggle · esc close"))
	return popoverStyle.Render(strings.Join(lines, "\n"))
}

// reminderPreset is a one-key reminder choice.
type reminderPreset struct {
	label string
	at    time.Time
}

// reminderPresets offers later today (when there is time left), tomorrow
// morning and next Monday morning.
func reminderPresets(now time.Time) []reminderPreset {
	day := startOfDay(now)
	var presets []reminderPreset
	evening := day.Add(18 * time.Hour)
	if now.Before(evening.Add(-time.Hour)) {
		presets = append(presets, reminderPreset{label: "Later today", at: evening})
	}
	presets = append(presets, reminderPreset{label: "Tomorrow", at: day.AddDate(0, 0, 1).Add(8 * time.Hour)})
	untilMonday := (8 - int(now.Weekday())) % 7
	if untilMonday == 0 {
		untilMonday = 7
	}
	presets = append(presets, reminderPreset{label: "Next week", at: day.AddDate(0, 0, untilMonday).Add(8 * time.Hour)})
	return presets
}

// reminderPopover picks a due date from presets or free-form input.
type reminderPopover struct {
	now     time.Time
	presets []reminderPreset
	cursor  int
	input   textinput.Model
	err     string
}

func newReminderPopover(now time.Time) *reminderPopover {
	input := textinput.New()
	input.Placeholder = "e.g. 2026-10-21 09:30"
	input.Prompt = "Pick date & time: "
	return &reminderPopover{now: now, presets: reminderPresets(now), input: input}
}

func (p *reminderPopover) kind() popoverKind { return popReminder }

func (p *reminderPopover) custom() bool { return p.cursor == len(p.presets) }

func (p *reminderPopover) setCursor(c int) {
	p.cursor = c
	if p.custom() {
		p.input.Focus()
	} else {
		p.input.Blur()
	}
}

func (p *reminderPopover) update(msg tea.KeyMsg) (*pick, bool, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return nil, true, nil
	case "up", "shift+tab":
		if p.cursor > 0 {
			p.setCursor(p.cursor - 1)
		}
		return nil, false, nil
	case "down", "tab":
		if p.cursor < len(p.presets) {
			p.setCursor(p.cursor + 1)
		}
		return nil, false, nil
	case "enter":
		if !p.custom() {
			return &pick{kind: popReminder, at: p.presets[p.cursor].at}, true, nil
		}
		at, err := note.ParseDue(p.input.Value(), p.now.Location())
		if err != nil {
			p.err = err.Error()
			return nil, false, nil
		}
		return &pick{kind: popReminder, at: at}, true, nil
	}
	if !p.custom() {
		return nil, false, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.err = ""
	return nil, false, cmd
}

func (p *reminderPopover) view() string {
	lines := []string{sectionTitleStyle.Render("Remind me later")}
	for i, preset := range p.presets {
		line := fmt.Sprintf("%-12s %s", preset.label, preset.at.Format("Mon 15:04"))
		if i == p.cursor {
			line = cursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	custom := p.input.View()
	if p.custom() {
		custom = cursorStyle.Render("> ") + custom
	} else {
		custom = "  " + custom
	}
	lines = append(lines, custom)
	if p.err != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(errorColor).Render(p.err))
	}
	lines = append(lines, mutedStyle.Render("↑/↓ choose · enter save · esc close"))
	return popoverStyle.Render(strings.Join(lines, "\n"))
}
