// Package restorepicker provides the backup selection overlay with a
// change preview against the current document.
package restorepicker

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/launchpad/internal/infrastructure/jsonstore"
	"github.com/zjrosen/launchpad/internal/ui/overlay"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

// RestoreMsg is sent when the user picks a backup to restore.
type RestoreMsg struct {
	Generation int
}

// CancelMsg is sent when the user cancels.
type CancelMsg struct{}

// Model holds the picker state.
type Model struct {
	backups  []jsonstore.Backup
	current  string
	selected int
	width    int
	height   int
	readFile func(string) ([]byte, error)
}

// New creates a picker over the given backups. current is the present
// document text used for the change preview.
func New(backups []jsonstore.Backup, current string) Model {
	return Model{
		backups:  backups,
		current:  current,
		readFile: os.ReadFile,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// WithReader overrides how backup files are read. Used in tests.
func (m Model) WithReader(read func(string) ([]byte, error)) Model {
	m.readFile = read
	return m
}

// Selected returns the backup under the cursor, if any.
func (m Model) Selected() (jsonstore.Backup, bool) {
	if m.selected < 0 || m.selected >= len(m.backups) {
		return jsonstore.Backup{}, false
	}
	return m.backups[m.selected], true
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return CancelMsg{} }
		case "j", "down":
			if m.selected < len(m.backups)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "enter":
			if b, ok := m.Selected(); ok {
				return m, func() tea.Msg { return RestoreMsg{Generation: b.Generation} }
			}
		}
	}
	return m, nil
}

// View renders the picker box with the preview pane.
func (m Model) View() string {
	width := 56

	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render("Restore Backup"))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	b.WriteString(divider.Render(strings.Repeat("─", width-2)))
	b.WriteString("\n")

	if len(m.backups) == 0 {
		b.WriteString(styles.StatusInfoStyle.Render("No backups yet."))
		return styles.OverlayBoxStyle.Width(width).Render(b.String())
	}

	for i, bk := range m.backups {
		line := fmt.Sprintf("#%-2d  %s  %s",
			bk.Generation,
			bk.ModTime.Format("2006-01-02 15:04"),
			humanSize(bk.Size))
		if i == m.selected {
			b.WriteString(styles.SelectionIndicatorStyle.Render(">") + " " + styles.EntryNameStyle.Render(line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	b.WriteString(divider.Render(strings.Repeat("─", width-2)))
	b.WriteString("\n")
	b.WriteString(m.preview())
	b.WriteString("\n")
	b.WriteString(styles.StatusInfoStyle.Render("enter restore · esc cancel"))

	return styles.OverlayBoxStyle.Width(width).Render(b.String())
}

// preview summarizes what restoring the selected backup would change.
func (m Model) preview() string {
	bk, ok := m.Selected()
	if !ok {
		return ""
	}

	data, err := m.readFile(bk.Path)
	if err != nil {
		return styles.StatusErrorStyle.Render("preview unavailable: " + err.Error())
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(m.current, string(data), false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var added, removed int
	for _, d := range diffs {
		n := len(strings.TrimSpace(d.Text))
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}

	if added == 0 && removed == 0 {
		return styles.StatusInfoStyle.Render("identical to current state")
	}
	return styles.StatusWarnStyle.Render(
		fmt.Sprintf("restoring changes %d chars (+%d / -%d vs current)", added+removed, added, removed))
}

func humanSize(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%dB", n)
	}
	return fmt.Sprintf("%.1fKB", float64(n)/1024)
}

// Overlay renders the picker on top of a background view.
func (m Model) Overlay(background string) string {
	box := m.View()
	if background == "" {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, box, background)
}
