package tui

import "github.com/charmbracelet/bubbles/key"

// boardKeys are active while browsing a section.
type boardKeys struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	NextSection key.Binding
	PrevSection key.Binding
	NewNote     key.Binding
	NewList     key.Binding
	Open        key.Binding
	Pin         key.Binding
	Archive     key.Binding
	Delete      key.Binding
	Purge       key.Binding
	Remind      key.Binding
	Unremind    key.Binding
	Color       key.Binding
	Label       key.Binding
	More        key.Binding
	Copy        key.Binding
	View        key.Binding
	Refresh     key.Binding
	Log         key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		NextSection: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		PrevSection: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev section")),
		NewNote:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "take a note")),
		NewList:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "new list")),
		Open:        key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "open")),
		Pin:         key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pin")),
		Archive:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive")),
		Delete:      key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete/restore")),
		Purge:       key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete forever")),
		Remind:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "remind me")),
		Unremind:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove reminder")),
		Color:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "background")),
		Label:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "labels")),
		More:        key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "make a copy")),
		View:        key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "grid/list")),
		Refresh:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
		Log:         key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NewNote, k.Open, k.Pin, k.Archive, k.Delete, k.More, k.Help, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.NextSection, k.PrevSection},
		{k.NewNote, k.NewList, k.Open, k.Copy, k.View, k.Refresh},
		{k.Pin, k.Archive, k.Delete, k.Purge, k.Remind, k.Unremind},
		{k.Color, k.Label, k.More, k.Log, k.Help, k.Quit},
	}
}

// editorKeys are active inside the composer and the edit dialog.
type editorKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Pin       key.Binding
	Remind    key.Binding
	Color     key.Binding
	Archive   key.Binding
	Label     key.Binding
	Folder    key.Binding
	Checklist key.Binding
	Close     key.Binding
}

func newEditorKeys() editorKeys {
	return editorKeys{
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Pin:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "pin")),
		Remind:    key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "remind me")),
		Color:     key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "background")),
		Archive:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "archive")),
		Label:     key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "add label")),
		Folder:    key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "move to folder")),
		Checklist: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "checklist")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}

func (k editorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Pin, k.Remind, k.Color, k.Archive, k.Label, k.Folder, k.Close}
}

func (k editorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField, k.Close},
		{k.Pin, k.Remind, k.Color, k.Archive},
		{k.Label, k.Folder, k.Checklist},
	}
}
