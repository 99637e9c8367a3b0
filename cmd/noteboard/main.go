// cmd/noteboard/main.go
//
// This is the entry point for the noteboard CLI. With no subcommand it opens
// the dashboard TUI; list and add work against the API without a terminal UI.

package main

func main() {
	Execute()
}
