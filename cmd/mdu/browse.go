package main

import (
	"fmt"

	"github.com/coursework/mdu/internal/db"
	"github.com/coursework/mdu/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse recorded scan history interactively",
	Long:  `Open an interactive browser over every root mdu has scanned and its recorded history.`,
	RunE:  runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open scan database: %w", err)
	}
	defer database.Close()

	model := tui.NewModel(database)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browse error: %w", err)
	}

	return nil
}
