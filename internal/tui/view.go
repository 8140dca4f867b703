package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/coursework/mdu/internal/entry"
)

const (
	barBlockWidth = 20
	barPctWidth   = 4
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("mdu - Scan History Browser"))
	b.WriteString("\n")

	switch m.mode {
	case viewHistory:
		m.renderHistory(&b)
	default:
		m.renderRoots(&b)
	}

	b.WriteString("\n")
	help := m.helpLine()
	if m.currentLen() > 0 {
		help = fmt.Sprintf("%s [%d/%d]", help, m.cursor+1, m.currentLen())
	}
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m *Model) renderRoots(b *strings.Builder) {
	if len(m.roots) == 0 {
		b.WriteString(statusStyle.Render("No scans recorded yet.\n"))
		return
	}

	b.WriteString(statusStyle.Render(fmt.Sprintf("Roots: %s\n", FormatCount(int64(len(m.roots))))))
	for i, root := range m.roots {
		line := root
		if i == m.cursor {
			b.WriteString(selectedStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
}

func (m *Model) renderHistory(b *strings.Builder) {
	b.WriteString(breadcrumbStyle.Render(fmt.Sprintf("Root: %s\n", m.selectedRoot)))

	if len(m.history) == 0 {
		b.WriteString(statusStyle.Render("No scans recorded for this root.\n"))
		return
	}

	var maxBlocks int64
	for _, rec := range m.history {
		if rec.Blocks > maxBlocks {
			maxBlocks = rec.Blocks
		}
	}

	for i, rec := range m.history {
		b.WriteString(formatHistoryRow(rec, maxBlocks, i == m.cursor))
		b.WriteString("\n")
	}
}

func formatHistoryRow(rec entry.RunRecord, maxBlocks int64, selected bool) string {
	when := rec.StartTime.Format("2006-01-02 15:04")
	dur := rec.EndTime.Sub(rec.StartTime).Round(1_000_000) // round to ms precision
	size := FormatSize(rec.Blocks)
	bar := formatBar(rec.Blocks, maxBlocks)

	line := fmt.Sprintf("%s  %10s  %8s  %s", when, size, dur, bar)
	if rec.HadError {
		line += "  " + warnBadge.Render("errors")
	}

	if selected {
		return selectedStyle.Render(line)
	}
	if rec.HadError {
		return errorRowStyle.Render(line)
	}
	return rowStyle.Render(line)
}

func formatBar(value, max int64) string {
	if max <= 0 || value <= 0 {
		empty := strings.Repeat("░", barBlockWidth)
		return barEmptyStyle.Render(empty) + fmt.Sprintf("  %3d%%", 0)
	}

	pct := float64(value) / float64(max) * 100
	if pct > 100 {
		pct = 100
	}

	filled := int(math.Round(pct / 100 * float64(barBlockWidth)))
	if filled < 1 {
		filled = 1
	}
	if filled > barBlockWidth {
		filled = barBlockWidth
	}

	filledStr := barFilledStyle.Render(strings.Repeat("█", filled))
	emptyStr := barEmptyStyle.Render(strings.Repeat("░", barBlockWidth-filled))
	return filledStr + emptyStr + fmt.Sprintf("  %3d%%", int(math.Round(pct)))
}
