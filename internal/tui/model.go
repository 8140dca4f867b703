// Package tui renders the recorded scan history through bubbletea, the
// same Elm-architecture split dug's browser used (Model/Update/View plus
// lipgloss styling). dug browsed a live per-entry tree pulled from one
// scan's rollups; this browser has no entry tree to walk — internal/db
// only ever records one row per finished root scan — so it instead lists
// the roots mdu has scanned and, per root, their recorded history.
package tui

import (
	"database/sql"

	"github.com/coursework/mdu/internal/db"
	"github.com/coursework/mdu/internal/entry"

	tea "github.com/charmbracelet/bubbletea"
)

// viewMode selects which list the model is currently displaying.
type viewMode int

const (
	viewRoots viewMode = iota
	viewHistory
)

// Model holds the TUI state.
type Model struct {
	db   *sql.DB
	mode viewMode

	roots        []string
	selectedRoot string
	history      []entry.RunRecord

	cursor int
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model over database.
func NewModel(database *sql.DB) *Model {
	return &Model{db: database, mode: viewRoots}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadRoots
}

type rootsLoadedMsg struct {
	roots []string
	err   error
}

type historyLoadedMsg struct {
	root    string
	records []entry.RunRecord
	err     error
}

func (m *Model) loadRoots() tea.Msg {
	roots, err := db.ListRoots(m.db)
	return rootsLoadedMsg{roots: roots, err: err}
}

func (m *Model) loadHistory(root string) tea.Cmd {
	return func() tea.Msg {
		records, err := db.ListScans(m.db, root, 100)
		return historyLoadedMsg{root: root, records: records, err: err}
	}
}

func (m *Model) helpLine() string {
	if m.mode == viewHistory {
		return "↑/↓ move | Backspace: back to roots | q: quit"
	}
	return "↑/↓ move | Enter: view history | q: quit"
}

func (m *Model) currentLen() int {
	if m.mode == viewHistory {
		return len(m.history)
	}
	return len(m.roots)
}
