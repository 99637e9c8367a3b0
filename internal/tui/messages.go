package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/noteboard/internal/api"
)

// workspaceLoadedMsg reports the initial (or retried) workspace load.
type workspaceLoadedMsg struct {
	err error
}

// editorSavedMsg reports the POST/PUT issued when the editor closed.
type editorSavedMsg struct {
	mode editorMode
	err  error
}

// actionDoneMsg reports a card action persisted from the board.
type actionDoneMsg struct {
	label string
	err   error
}

// notesRefreshedMsg reports a quiet re-fetch after the API reported a note
// missing.
type notesRefreshedMsg struct {
	err error
}

// toastExpiredMsg hides toast id unless a newer one replaced it.
type toastExpiredMsg struct {
	id int
}

type toast struct {
	id    int
	text  string
	isErr bool
}

// call runs fn off the update loop with the configured request timeout and
// turns its error into a message.
func (a *App) call(fn func(ctx context.Context) error, done func(error) tea.Msg) tea.Cmd {
	timeout := a.timeout
	if timeout <= 0 {
		timeout = api.DefaultTimeout
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return done(fn(ctx))
	}
}

func (a *App) notify(text string, isErr bool) tea.Cmd {
	a.toastSeq++
	a.toast = toast{id: a.toastSeq, text: text, isErr: isErr}
	if a.toastTTL <= 0 {
		return nil
	}
	id := a.toastSeq
	return tea.Tick(a.toastTTL, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}
