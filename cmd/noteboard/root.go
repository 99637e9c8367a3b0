package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kingrea/noteboard/internal/tui"
)

var (
	baseDir string
	apiURL  string
	verbose bool
)

// rootCmd opens the dashboard when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "noteboard",
	Short: "Notes and checklists from the terminal",
	Long: `noteboard is a client for the notes API. It lets you create, edit, pin,
label, color, archive, trash and set reminders on notes and checklists.`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ws, err := openWorkspace()
		if err != nil {
			return err
		}
		defer ws.Close()

		app := tui.NewApp(ws.cfg, ws.store, tui.WithLogger(ws.logger), tui.WithTimeout(ws.timeout))
		p := tea.NewProgram(app, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run dashboard: %w", err)
		}
		ws.rememberUser()
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.PersistentFlags().StringVar(&baseDir, "dir", "", "Directory holding .noteboard (defaults to your home directory)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "Notes API base URL (overrides config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}
