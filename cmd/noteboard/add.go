package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
)

type addOptions struct {
	title       string
	description string
	tasks       []string
	pin         bool
	archive     bool
	labels      []string
	color       string
	remind      string
}

var addOpts addOptions

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a note or, with --task, a checklist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()
		if err := ws.load(cmd.Context()); err != nil {
			return err
		}

		draft, err := buildDraft(addOpts, ws.store, time.Local)
		if err != nil {
			return err
		}
		ctx, cancel := ws.withTimeout(cmd.Context())
		defer cancel()
		if err := ws.store.Create(ctx, draft); err != nil {
			if errors.Is(err, note.ErrNoContent) {
				return fmt.Errorf("nothing to save: give a --title, --description or --task")
			}
			ws.logger.Errorw("create note failed", "error", err)
			return err
		}
		ws.logger.Infow("note created", "title", draft.Title, "type", draft.Type)
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%d notes)\n", displayTitle(draft), len(ws.store.Notes()))
		return nil
	},
}

// buildDraft turns flags into a new note. Label names resolve against the
// loaded labels and reminders parse in loc.
func buildDraft(opts addOptions, st *store.Store, loc *time.Location) (note.Note, error) {
	draft := note.NewDraft()
	if len(opts.tasks) > 0 {
		draft = note.NewChecklistDraft()
		for _, task := range opts.tasks {
			draft = draft.AddTask(task)
		}
	}
	draft = draft.WithTitle(strings.TrimSpace(opts.title)).WithDescription(opts.description)
	if opts.pin {
		draft = draft.TogglePin()
	}
	if opts.archive {
		draft = draft.ToggleArchive()
	}
	for _, name := range opts.labels {
		label, ok := st.LabelByName(name)
		if !ok {
			return note.Note{}, fmt.Errorf("unknown label %q", name)
		}
		if !draft.HasLabel(label.ID) {
			draft = draft.ToggleLabel(label.ID)
		}
	}
	if color := strings.ToLower(strings.TrimSpace(opts.color)); color != "" {
		if _, ok := note.ColorHex(color); !ok {
			return note.Note{}, fmt.Errorf("unknown color %q", opts.color)
		}
		draft = draft.ToggleColor(color)
	}
	if strings.TrimSpace(opts.remind) != "" {
		at, err := note.ParseDue(opts.remind, loc)
		if err != nil {
			return note.Note{}, err
		}
		draft = draft.SetReminder(at)
	}
	return draft, nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addOpts.title, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&addOpts.description, "description", "d", "", "Note body")
	addCmd.Flags().StringArrayVar(&addOpts.tasks, "task", nil, "Checklist item (repeatable); makes the note a checklist")
	addCmd.Flags().BoolVar(&addOpts.pin, "pin", false, "Pin the note")
	addCmd.Flags().BoolVar(&addOpts.archive, "archive", false, "Archive the note right away")
	addCmd.Flags().StringArrayVarP(&addOpts.labels, "label", "l", nil, "Label name (repeatable)")
	addCmd.Flags().StringVar(&addOpts.color, "color", "", "Background color key")
	addCmd.Flags().StringVar(&addOpts.remind, "remind", "", `Reminder date/time, e.g. "2026-10-21 09:30"`)
}
