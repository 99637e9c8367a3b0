// internal/tui/app.go
//
// This is the dashboard for noteboard. It uses bubbletea, which follows The
// Elm Architecture: the App holds all state and only Update changes it.
//
// Network calls never run inside Update. They are tea.Cmds that report back
// with a message, and every response replaces the store's note collection.

package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/noteboard/internal/api"
	"github.com/kingrea/noteboard/internal/config"
	"github.com/kingrea/noteboard/internal/logging"
	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
)

// appState represents which screen we're on
type appState int

const (
	stateLoading appState = iota // waiting for the first workspace load
	stateBoard                   // browsing a section
	stateEditor                  // composer or edit dialog open
)

const (
	defaultToastTTL  = 4 * time.Second
	detailPanelWidth = 110
	logPanelLines    = 8
)

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithClock overrides the time source used for reminders and chips.
func WithClock(now func() time.Time) AppOption {
	return func(a *App) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger attaches the file logger shown in the log panel.
func WithLogger(logger *logging.Logger) AppOption {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithTimeout sets the deadline for each API call. Non-positive values keep
// the default.
func WithTimeout(timeout time.Duration) AppOption {
	return func(a *App) {
		if timeout > 0 {
			a.timeout = timeout
		}
	}
}

// WithToastTTL sets how long toasts stay up. Zero keeps them until replaced.
func WithToastTTL(ttl time.Duration) AppOption {
	return func(a *App) {
		a.toastTTL = ttl
	}
}

// tab is a section, or a per-label or per-folder view when that id is set.
type tab struct {
	section note.Section
	label   note.Label
	folder  note.Folder
}

func (t tab) title() string {
	switch {
	case t.label.ID != "":
		return "#" + t.label.Name
	case t.folder.ID != "":
		return "/" + t.folder.Name
	}
	return t.section.Title()
}

func (t tab) isSection() bool {
	return t.label.ID == "" && t.folder.ID == ""
}

type detailKey struct {
	id       string
	revision uint64
	width    int
}

// App is the main application model.
type App struct {
	state    appState
	config   *config.Config
	store    *store.Store
	logger   *logging.Logger
	now      func() time.Time
	timeout  time.Duration
	toastTTL time.Duration

	tabs     []tab
	tabIndex int
	selected int

	editor *editor
	saving bool

	// popTarget is the note id a board popover acts on. Popovers opened
	// from the editor leave it empty and change the draft instead.
	popover   popover
	popTarget string

	keys     boardKeys
	help     help.Model
	showHelp bool
	showLog  bool

	toast    toast
	toastSeq int
	loadErr  error

	detailKey  detailKey
	detailView string

	width  int
	height int
}

// NewApp creates the dashboard over a store that has not been loaded yet.
func NewApp(cfg *config.Config, st *store.Store, opts ...AppOption) *App {
	app := &App{
		state:    stateLoading,
		config:   cfg,
		store:    st,
		logger:   logging.Nop(),
		now:      time.Now,
		timeout:  api.SettingsFromConfig(cfg).Timeout,
		toastTTL: defaultToastTTL,
		keys:     newBoardKeys(),
		help:     help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	app.rebuildTabs()
	return app
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return a.loadWorkspace()
}

func (a *App) loadWorkspace() tea.Cmd {
	return a.call(a.store.Load, func(err error) tea.Msg {
		return workspaceLoadedMsg{err: err}
	})
}

func (a *App) rebuildTabs() {
	current := a.currentTab()
	tabs := make([]tab, 0, len(note.Sections))
	for _, s := range note.Sections {
		tabs = append(tabs, tab{section: s})
	}
	for _, l := range a.store.Labels() {
		tabs = append(tabs, tab{label: l})
	}
	for _, f := range a.store.Folders() {
		tabs = append(tabs, tab{folder: f})
	}
	a.tabs = tabs
	a.tabIndex = 0
	for i, t := range tabs {
		if t == current {
			a.tabIndex = i
		}
	}
}

func (a *App) currentTab() tab {
	if a.tabIndex < 0 || a.tabIndex >= len(a.tabs) {
		return tab{section: note.SectionHome}
	}
	return a.tabs[a.tabIndex]
}

func (a *App) inTrash() bool {
	t := a.currentTab()
	return t.isSection() && t.section == note.SectionTrash
}

// visibleNotes is the current tab in display order. Home lists pinned
// notes before the others.
func (a *App) visibleNotes() []note.Note {
	t := a.currentTab()
	switch {
	case t.label.ID != "":
		return a.store.Labeled(t.label.ID)
	case t.folder.ID != "":
		return a.store.InFolder(t.folder.ID)
	}
	notes := a.store.Section(t.section)
	if t.section == note.SectionHome {
		pinned, others := note.SplitPinned(notes)
		return append(pinned, others...)
	}
	return notes
}

func (a *App) selectedNote() (note.Note, bool) {
	notes := a.visibleNotes()
	if a.selected < 0 || a.selected >= len(notes) {
		return note.Note{}, false
	}
	return notes[a.selected], true
}

func (a *App) clampSelection() {
	count := len(a.visibleNotes())
	if a.selected >= count {
		a.selected = count - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

// gridSizes lists the separately drawn grids of the current tab in order.
// Home draws pinned notes above the others.
func (a *App) gridSizes() []int {
	t := a.currentTab()
	if !t.isSection() || t.section != note.SectionHome {
		return []int{len(a.visibleNotes())}
	}
	pinned, others := note.SplitPinned(a.store.Section(note.SectionHome))
	if len(pinned) == 0 || len(others) == 0 {
		return []int{len(pinned) + len(others)}
	}
	return []int{len(pinned), len(others)}
}

// moveVertical steps one row up (step -1) or down (step 1) in the grid
// holding the selection. From a grid's edge row it enters the neighbouring
// grid in the same column, or its last card when that row is shorter.
func (a *App) moveVertical(step int) {
	cols := a.columns()
	sizes := a.gridSizes()
	start := 0
	for i, size := range sizes {
		if a.selected >= start+size {
			start += size
			continue
		}
		pos := a.selected - start
		col := pos % cols
		next := pos + step*cols
		switch {
		case next >= 0 && next < size:
			a.selected = start + next
		case step > 0 && pos/cols == (size-1)/cols && i+1 < len(sizes):
			a.selected = start + size + min(col, sizes[i+1]-1)
		case step < 0 && next < 0 && i > 0:
			prev := sizes[i-1]
			lastRow := (prev - 1) / cols * cols
			a.selected = start - prev + min(lastRow+col, prev-1)
		}
		return
	}
}

func (a *App) columns() int {
	if a.store.Preferences().ViewType == note.ViewList {
		return 1
	}
	return gridColumns
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		if a.editor != nil {
			a.editor.setWidth(a.editorWidth())
		}
		return a, nil

	case workspaceLoadedMsg:
		a.state = stateBoard
		a.loadErr = msg.err
		if msg.err != nil {
			a.logger.Errorw("workspace load failed", "error", msg.err)
			return a, a.notify(fmt.Sprintf("Could not load notes: %v", msg.err), true)
		}
		a.logger.Infow("workspace loaded", "notes", len(a.store.Notes()), "labels", len(a.store.Labels()))
		a.rebuildTabs()
		a.clampSelection()
		return a, nil

	case editorSavedMsg:
		a.saving = false
		if msg.err != nil {
			a.logger.Errorw("save note failed", "mode", msg.mode, "error", msg.err)
			if api.IsNotFound(msg.err) && a.editor != nil {
				a.editor.detach()
				return a, tea.Batch(
					a.notify("This note was deleted elsewhere. Close again to save it as a new note.", true),
					a.refreshQuietly(),
				)
			}
			return a, a.notify(fmt.Sprintf("Could not save note: %v", msg.err), true)
		}
		a.closeEditor()
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			a.logger.Errorw("note action failed", "action", msg.label, "error", msg.err)
			if api.IsNotFound(msg.err) {
				return a, tea.Batch(
					a.notify(fmt.Sprintf("%s failed: the note was deleted elsewhere", msg.label), true),
					a.refreshQuietly(),
				)
			}
			return a, a.notify(fmt.Sprintf("%s failed: %v", msg.label, msg.err), true)
		}
		a.logger.Infow("note action", "action", msg.label)
		a.clampSelection()
		return a, a.notify(msg.label, false)

	case notesRefreshedMsg:
		if msg.err != nil {
			a.logger.Warnw("refresh after missing note failed", "error", msg.err)
			return a, nil
		}
		a.clampSelection()
		return a, nil

	case toastExpiredMsg:
		if msg.id == a.toast.id {
			a.toast = toast{}
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.popover != nil {
			return a.handlePopoverKey(msg)
		}
		switch a.state {
		case stateEditor:
			return a.handleEditorKey(msg)
		case stateBoard:
			return a.handleBoardKey(msg)
		}
		if key.Matches(msg, a.keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}

	if a.state == stateEditor && a.editor != nil {
		return a, a.editor.forward(msg)
	}
	return a, nil
}

func (a *App) handleBoardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(a.visibleNotes())
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.showHelp = !a.showHelp
	case key.Matches(msg, a.keys.Log):
		a.showLog = !a.showLog
	case key.Matches(msg, a.keys.NextSection):
		a.tabIndex = (a.tabIndex + 1) % len(a.tabs)
		a.selected = 0
	case key.Matches(msg, a.keys.PrevSection):
		a.tabIndex = (a.tabIndex - 1 + len(a.tabs)) % len(a.tabs)
		a.selected = 0
	case key.Matches(msg, a.keys.Up):
		a.moveVertical(-1)
	case key.Matches(msg, a.keys.Down):
		a.moveVertical(1)
	case key.Matches(msg, a.keys.Left):
		if a.selected > 0 {
			a.selected--
		}
	case key.Matches(msg, a.keys.Right):
		if a.selected < count-1 {
			a.selected++
		}
	case key.Matches(msg, a.keys.NewNote):
		return a, a.openComposer(note.NewDraft())
	case key.Matches(msg, a.keys.NewList):
		return a, a.openComposer(note.NewChecklistDraft())
	case key.Matches(msg, a.keys.View):
		return a, a.toggleViewType()
	case key.Matches(msg, a.keys.Refresh):
		if a.loadErr != nil {
			return a, a.loadWorkspace()
		}
		return a, a.call(a.store.Refresh, func(err error) tea.Msg {
			return actionDoneMsg{label: "Notes refreshed", err: err}
		})
	default:
		return a.handleCardKey(msg)
	}
	return a, nil
}

// handleCardKey runs actions on the selected card.
func (a *App) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n, ok := a.selectedNote()
	if !ok {
		return a, nil
	}
	trash := a.inTrash()
	switch {
	case key.Matches(msg, a.keys.Open):
		if trash || n.Deleted {
			return a, a.notify("Restore the note to edit it", false)
		}
		a.editor = newEditor(modeEdit, n, a.editorWidth())
		a.state = stateEditor
		return a, nil
	case key.Matches(msg, a.keys.More):
		a.openPopover(newMoreMenu(trash), n.ID)
	case key.Matches(msg, a.keys.Delete):
		if trash || n.Deleted {
			return a, a.apply(n.ID, "Note restored", note.Note.ToggleDelete)
		}
		return a, a.apply(n.ID, "Note moved to trash", note.Note.ToggleDelete)
	case key.Matches(msg, a.keys.Purge):
		if !trash {
			return a, nil
		}
		return a, a.purge(n.ID)
	case trash:
		// Everything below edits a live note.
		return a, nil
	case key.Matches(msg, a.keys.Pin):
		label := "Note pinned"
		if n.Pinned {
			label = "Note unpinned"
		}
		return a, a.apply(n.ID, label, note.Note.TogglePin)
	case key.Matches(msg, a.keys.Archive):
		label := "Note archived"
		if n.Archived {
			label = "Note unarchived"
		}
		return a, a.apply(n.ID, label, note.Note.ToggleArchive)
	case key.Matches(msg, a.keys.Remind):
		a.openPopover(newReminderPopover(a.now()), n.ID)
	case key.Matches(msg, a.keys.Unremind):
		if n.DueDateTime == nil {
			return a, nil
		}
		return a, a.apply(n.ID, "Reminder removed", note.Note.ClearReminder)
	case key.Matches(msg, a.keys.Color):
		a.openPopover(newColorPopover(n.ColorKey()), n.ID)
	case key.Matches(msg, a.keys.Label):
		a.openPopover(newLabelPopover(a.store.Labels(), n.Labels), n.ID)
	case key.Matches(msg, a.keys.Copy):
		return a, a.copyNote(n.ID)
	}
	return a, nil
}

func (a *App) apply(id, label string, mutate func(note.Note) note.Note) tea.Cmd {
	return a.call(func(ctx context.Context) error {
		return a.store.Apply(ctx, id, mutate)
	}, func(err error) tea.Msg {
		return actionDoneMsg{label: label, err: err}
	})
}

// refreshQuietly re-fetches the collection without replacing the toast.
func (a *App) refreshQuietly() tea.Cmd {
	return a.call(a.store.Refresh, func(err error) tea.Msg {
		return notesRefreshedMsg{err: err}
	})
}

func (a *App) copyNote(id string) tea.Cmd {
	return a.call(func(ctx context.Context) error {
		return a.store.Copy(ctx, id)
	}, func(err error) tea.Msg {
		return actionDoneMsg{label: "Note copied", err: err}
	})
}

func (a *App) purge(id string) tea.Cmd {
	return a.call(func(ctx context.Context) error {
		return a.store.Purge(ctx, id)
	}, func(err error) tea.Msg {
		return actionDoneMsg{label: "Note deleted forever", err: err}
	})
}

func (a *App) toggleViewType() tea.Cmd {
	next := note.ViewList
	if a.store.Preferences().ViewType == note.ViewList {
		next = note.ViewGrid
	}
	if err := a.config.SetViewType(next); err != nil {
		a.logger.Errorw("save view preference failed", "error", err)
		return a.notify(fmt.Sprintf("Could not save view: %v", err), true)
	}
	a.store.SetViewType(next)
	return nil
}

func (a *App) editorWidth() int {
	width := a.width
	if width <= 0 {
		width = 100
	}
	return min(width-2, 90)
}

func (a *App) openComposer(draft note.Note) tea.Cmd {
	t := a.currentTab()
	if t.label.ID != "" {
		draft = draft.ToggleLabel(t.label.ID)
	}
	if t.folder.ID != "" {
		draft = draft.MoveToFolder(t.folder.ID)
	}
	a.editor = newEditor(modeCompose, draft, a.editorWidth())
	a.state = stateEditor
	return nil
}

func (a *App) closeEditor() {
	a.editor = nil
	a.state = stateBoard
	a.clampSelection()
}

func (a *App) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.editor == nil || a.saving {
		return a, nil
	}
	intent, cmd := a.editor.update(msg)
	draft := a.editor.draft
	switch intent {
	case intentClose:
		return a, a.saveEditor()
	case intentRemind:
		a.openPopover(newReminderPopover(a.now()), "")
	case intentColor:
		a.openPopover(newColorPopover(draft.ColorKey()), "")
	case intentLabel:
		a.openPopover(newLabelPopover(a.store.Labels(), draft.Labels), "")
	case intentFolder:
		a.openPopover(newFolderPopover(a.store.Folders(), draft.Folder()), "")
	}
	return a, cmd
}

// saveEditor persists the draft when it has content and closes either way.
// The editor stays open if the call fails.
func (a *App) saveEditor() tea.Cmd {
	draft := a.editor.result()
	mode := a.editor.mode
	if !draft.HasContent() {
		a.logger.Debugw("closing empty editor without saving", "mode", mode)
		a.closeEditor()
		return nil
	}
	a.saving = true
	return a.call(func(ctx context.Context) error {
		if mode == modeCompose || draft.ID == "" {
			return a.store.Create(ctx, draft)
		}
		return a.store.Update(ctx, draft)
	}, func(err error) tea.Msg {
		if errors.Is(err, note.ErrNoContent) {
			err = nil
		}
		return editorSavedMsg{mode: mode, err: err}
	})
}

func (a *App) openPopover(p popover, target string) {
	a.popover = p
	a.popTarget = target
}

func (a *App) handlePopoverKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	chosen, done, cmd := a.popover.update(msg)
	target := a.popTarget
	if done {
		a.popover = nil
		a.popTarget = ""
	}
	if chosen == nil {
		return a, cmd
	}
	return a, tea.Batch(cmd, a.applyPick(*chosen, target))
}

// applyPick routes a popover choice to the editor draft or, for board
// popovers, to an immediate save of the target note.
func (a *App) applyPick(p pick, target string) tea.Cmd {
	if p.kind == popMore {
		return a.applyMoreOption(p.value, target)
	}
	var (
		mutate func(note.Note) note.Note
		label  string
	)
	switch p.kind {
	case popColor:
		value := p.value
		if value == "" {
			mutate, label = note.Note.ClearColor, "Background removed"
		} else {
			mutate = func(n note.Note) note.Note { return n.ToggleColor(value) }
			label = "Background updated"
		}
	case popLabel:
		id := p.value
		mutate, label = func(n note.Note) note.Note { return n.ToggleLabel(id) }, "Labels updated"
	case popFolder:
		id := p.value
		mutate, label = func(n note.Note) note.Note { return n.MoveToFolder(id) }, "Note moved"
	case popReminder:
		at := p.at
		mutate, label = func(n note.Note) note.Note { return n.SetReminder(at) }, "Reminder set"
	default:
		return nil
	}
	if target == "" {
		if a.editor != nil {
			a.editor.replace(mutate(a.editor.draft))
		}
		return nil
	}
	return a.apply(target, label, mutate)
}

func (a *App) applyMoreOption(option, target string) tea.Cmd {
	n, ok := a.store.Note(target)
	if !ok {
		return nil
	}
	switch option {
	case optAddLabel:
		a.openPopover(newLabelPopover(a.store.Labels(), n.Labels), target)
	case optMoveToFolder:
		a.openPopover(newFolderPopover(a.store.Folders(), n.Folder()), target)
	case optMakeCopy:
		return a.copyNote(target)
	case optDeleteNote:
		return a.apply(target, "Note moved to trash", note.Note.ToggleDelete)
	case optRestoreNote:
		return a.apply(target, "Note restored", note.Note.ToggleDelete)
	case optDeleteForever:
		return a.purge(target)
	}
	return nil
}

// View renders the current state to a string.
func (a *App) View() string {
	width := a.width
	if width <= 0 {
		width = 100
	}
	header := headerStyle.Render("▦ NOTEBOARD")
	if a.state == stateLoading {
		return lipgloss.JoinVertical(lipgloss.Left, header, mutedStyle.Render("Loading your notes..."))
	}

	parts := []string{header, a.renderTabs(), a.renderHeading()}
	switch {
	case a.state == stateEditor && a.editor != nil:
		parts = append(parts, a.editor.view(a.store.LabelNames(), a.store.FolderNames(), a.now()))
	case a.loadErr != nil:
		parts = append(parts, panelStyle.Render(fmt.Sprintf("Could not load notes: %v\nPress ctrl+r to retry.", a.loadErr)))
	default:
		parts = append(parts, a.renderBoard(width))
	}
	if a.popover != nil {
		parts = append(parts, a.popover.view())
	}
	if a.toast.text != "" {
		style := infoToastStyle
		if a.toast.isErr {
			style = toastStyle
		}
		parts = append(parts, style.Render(a.toast.text))
	}
	if a.showLog {
		if panel := a.renderLogPanel(); panel != "" {
			parts = append(parts, panel)
		}
	}
	if a.state == stateBoard {
		a.help.ShowAll = a.showHelp
		parts = append(parts, a.help.View(a.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (a *App) renderTabs() string {
	rendered := make([]string, 0, len(a.tabs))
	for i, t := range a.tabs {
		style := tabStyle
		if i == a.tabIndex {
			style = activeTabStyle
		}
		rendered = append(rendered, style.Render(t.title()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (a *App) renderHeading() string {
	t := a.currentTab()
	if t.label.ID != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			sectionTitleStyle.Render("#"+t.label.Name),
			subtitleStyle.Render(fmt.Sprintf("Notes labeled %q", t.label.Name)),
		)
	}
	if t.folder.ID != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			sectionTitleStyle.Render(t.folder.Name),
			subtitleStyle.Render(fmt.Sprintf("Notes in the %q folder", t.folder.Name)),
		)
	}
	title := t.section.Title()
	if t.section == note.SectionHome {
		if name := strings.TrimSpace(a.store.User().Username); name != "" {
			title = fmt.Sprintf("Welcome home, %s!", name)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		sectionTitleStyle.Render(title),
		subtitleStyle.Render(t.section.Subtitle()),
	)
}

func (a *App) renderBoard(width int) string {
	listWidth := width
	showDetail := width >= detailPanelWidth
	if showDetail {
		listWidth = width * 2 / 3
	}
	t := a.currentTab()
	base := noteList{
		viewType:   a.store.Preferences().ViewType,
		width:      listWidth,
		labelNames: a.store.LabelNames(),
		folders:    a.store.FolderNames(),
		now:        a.now(),
	}
	var board string
	switch {
	case t.label.ID != "":
		base.notes = a.store.Labeled(t.label.ID)
		base.selected = a.selected
		base.empty = note.EmptyState{Icon: "🏷", Title: "No notes with this label yet", Subtitle: "Add a label to a note to see it here."}
		board = base.View()
	case t.folder.ID != "":
		base.notes = a.store.InFolder(t.folder.ID)
		base.selected = a.selected
		base.empty = note.EmptyState{Icon: "📁", Title: "This folder is empty", Subtitle: "Move a note here from its more menu."}
		board = base.View()
	case t.section == note.SectionHome:
		board = a.renderHome(base)
	default:
		base.notes = a.store.Section(t.section)
		base.selected = a.selected
		base.empty = t.section.Empty()
		board = base.View()
	}
	if !showDetail {
		return board
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, board, " ", a.renderDetail(width-listWidth-1))
}

// renderHome lists pinned notes above the others.
func (a *App) renderHome(base noteList) string {
	pinned, others := note.SplitPinned(a.store.Section(note.SectionHome))
	if len(pinned) == 0 {
		base.notes = others
		base.selected = a.selected
		base.empty = note.SectionHome.Empty()
		return base.View()
	}
	top := base
	top.notes = pinned
	top.selected = a.selected
	parts := []string{mutedStyle.Render("PINNED"), top.View()}
	if len(others) > 0 {
		rest := base
		rest.notes = others
		rest.selected = a.selected - len(pinned)
		parts = append(parts, mutedStyle.Render("OTHERS"), rest.View())
	}
	return strings.Join(parts, "\n")
}

// renderDetail shows the selected note's description as markdown. The
// rendered text is cached per note, store revision and width.
func (a *App) renderDetail(width int) string {
	n, ok := a.selectedNote()
	if !ok {
		return ""
	}
	k := detailKey{id: n.ID, revision: a.store.Revision(), width: width}
	if k == a.detailKey && a.detailView != "" {
		return a.detailView
	}
	body := n.Description
	if n.IsChecklist() {
		lines := make([]string, 0, len(n.Tasks))
		for _, t := range n.Tasks {
			box := "[ ]"
			if t.Completed {
				box = "[x]"
			}
			lines = append(lines, fmt.Sprintf("- %s %s", box, t.Text))
		}
		body = strings.Join(lines, "\n")
	}
	rendered := body
	if r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(max(20, width-4))); err == nil {
		if out, err := r.Render(body); err == nil {
			rendered = strings.TrimSpace(out)
		}
	}
	title := strings.TrimSpace(n.Title)
	if title == "" {
		title = "Untitled"
	}
	a.detailKey = k
	a.detailView = panelStyle.Width(max(20, width-2)).Render(cardTitleStyle.Render(title) + "\n" + rendered)
	return a.detailView
}

func (a *App) renderLogPanel() string {
	lines := a.logger.Tail(logPanelLines)
	if len(lines) == 0 {
		return ""
	}
	fileName := filepath.Base(a.logger.Path())
	if fileName == "." || fileName == "" {
		fileName = "log"
	}
	head := sectionTitleStyle.Render(fmt.Sprintf("LOG · %s", fileName))
	body := subtitleStyle.Render(strings.Join(lines, "\n"))
	return panelStyle.Render(fmt.Sprintf("%s\n%s", head, body))
}
