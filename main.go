package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/boomerbill/internal/store"
	"github.com/sadopc/boomerbill/internal/tui"
)

func main() {
	// If the database cannot be opened the app still runs, it just
	// keeps everything in memory for the lifetime of the process.
	var kv *store.KV
	if dbPath, err := store.DefaultDBPath(); err == nil {
		if opened, err := store.OpenKV(dbPath); err == nil {
			kv = opened
		} else {
			fmt.Fprintf(os.Stderr, "warning: running without persistence: %v\n", err)
		}
	}
	if kv != nil {
		defer kv.Close()
	}

	s := store.New(kv)
	if err := s.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not restore saved data: %v\n", err)
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
