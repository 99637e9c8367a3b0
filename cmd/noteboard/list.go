package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/kingrea/noteboard/internal/note"
	"github.com/kingrea/noteboard/internal/store"
)

var (
	listSection  string
	listLabel    string
	listFolder   string
	listUpcoming bool
	listJSON     bool
)

// listQuery is what the list flags select.
type listQuery struct {
	section  string
	label    string
	folder   string
	upcoming bool
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes in a section, under a label or in a folder",
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

		now := time.Now()
		query := listQuery{section: listSection, label: listLabel, folder: listFolder, upcoming: listUpcoming}
		notes, empty, err := selectNotes(ws.store, query, now)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if listJSON {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			return encoder.Encode(notes)
		}
		if len(notes) == 0 {
			fmt.Fprintln(out, empty.Title)
			return nil
		}
		return writeNotes(out, notes, ws.store.LabelNames(), now)
	},
}

// selectNotes resolves the list flags into the notes to print. --upcoming
// wins over --label, which wins over --folder and then --section. Home lists
// pinned notes first.
func selectNotes(st *store.Store, q listQuery, now time.Time) ([]note.Note, note.EmptyState, error) {
	if q.upcoming {
		return st.Upcoming(now), note.EmptyState{Title: "No upcoming reminders"}, nil
	}
	if label := strings.TrimSpace(q.label); label != "" {
		l, ok := st.LabelByName(label)
		if !ok {
			return nil, note.EmptyState{}, fmt.Errorf("unknown label %q", label)
		}
		return st.Labeled(l.ID), note.EmptyState{Title: fmt.Sprintf("No notes labeled %q", l.Name)}, nil
	}
	if folder := strings.TrimSpace(q.folder); folder != "" {
		f, ok := st.FolderByName(folder)
		if !ok {
			return nil, note.EmptyState{}, fmt.Errorf("unknown folder %q", folder)
		}
		return st.InFolder(f.ID), note.EmptyState{Title: fmt.Sprintf("No notes in %q", f.Name)}, nil
	}
	section := strings.TrimSpace(q.section)
	s, ok := note.ParseSection(strings.ToLower(section))
	if !ok && section != "" {
		return nil, note.EmptyState{}, fmt.Errorf("unknown section %q (want home, reminders, archived or trash)", q.section)
	}
	notes := st.Section(s)
	if s == note.SectionHome {
		pinned, others := note.SplitPinned(notes)
		notes = append(pinned, others...)
	}
	return notes, s.Empty(), nil
}

func writeNotes(w io.Writer, notes []note.Note, labelNames map[string]string, now time.Time) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFLAGS\tTITLE\tLABELS\tREMINDER")
	for _, n := range notes {
		var flags []string
		if n.Pinned {
			flags = append(flags, "pinned")
		}
		if n.Archived {
			flags = append(flags, "archived")
		}
		if n.IsChecklist() {
			flags = append(flags, fmt.Sprintf("%d/%d", n.CompletedTasks(), len(n.Tasks)))
		}
		if key := n.ColorKey(); key != "" {
			flags = append(flags, key)
		}
		labels := make([]string, 0, len(n.Labels))
		for _, id := range n.Labels {
			if name, ok := labelNames[id]; ok {
				labels = append(labels, "#"+name)
			}
		}
		reminder := ""
		if n.DueDateTime != nil {
			reminder = n.DueDateTime.In(now.Location()).Format("2006-01-02 15:04")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", n.ID, strings.Join(flags, ","), displayTitle(n), strings.Join(labels, " "), reminder)
	}
	return tw.Flush()
}

func displayTitle(n note.Note) string {
	if title := strings.TrimSpace(n.Title); title != "" {
		return title
	}
	first, _, _ := strings.Cut(strings.TrimSpace(n.Description), "\n")
	if first != "" {
		return first
	}
	return "(untitled)"
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSection, "section", "home", "Section to list: home, reminders, archived or trash")
	listCmd.Flags().StringVar(&listLabel, "label", "", "List notes carrying this label instead of a section")
	listCmd.Flags().StringVar(&listFolder, "folder", "", "List notes in this folder instead of a section")
	listCmd.Flags().BoolVar(&listUpcoming, "upcoming", false, "List reminders that are still ahead, soonest first")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
