// Package logoverlay shows the tail of the application log inside the TUI.
package logoverlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/launchpad/internal/ui/styles"
)

// maxLines bounds the in-memory ring buffer.
const maxLines = 200

// CloseMsg is sent when the user dismisses the overlay.
type CloseMsg struct{}

// Model holds the overlay state.
type Model struct {
	lines  []string
	offset int // rows scrolled up from the tail
	width  int
	height int
}

// New creates an empty log overlay.
func New() Model {
	return Model{}
}

// SetSize sets the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Append adds a formatted log line, trimming the buffer to maxLines.
func (m Model) Append(line string) Model {
	line = strings.TrimRight(line, "\n")
	m.lines = append(m.lines, line)
	if len(m.lines) > maxLines {
		m.lines = m.lines[len(m.lines)-maxLines:]
	}
	return m
}

// Len returns the number of buffered lines.
func (m Model) Len() int {
	return len(m.lines)
}

// Update handles scrolling and dismissal.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "L":
			return m, func() tea.Msg { return CloseMsg{} }
		case "k", "up":
			if m.offset < len(m.lines)-1 {
				m.offset++
			}
		case "j", "down":
			if m.offset > 0 {
				m.offset--
			}
		case "G", "end":
			m.offset = 0
		}
	}
	return m, nil
}

// View renders the visible log tail.
func (m Model) View() string {
	visible := m.height - 3
	if visible < 1 {
		visible = 10
	}

	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render("Log"))
	b.WriteString("\n")

	if len(m.lines) == 0 {
		b.WriteString(styles.StatusInfoStyle.Render("nothing logged yet"))
	} else {
		end := len(m.lines) - m.offset
		if end < 1 {
			end = 1
		}
		start := end - visible
		if start < 0 {
			start = 0
		}
		for i := start; i < end; i++ {
			line := m.lines[i]
			if m.width > 4 {
				line = truncate.StringWithTail(line, uint(m.width-4), "…")
			}
			b.WriteString(line)
			if i < end-1 {
				b.WriteString("\n")
			}
		}
	}

	width := m.width - 2
	if width < 20 {
		width = 60
	}
	return styles.OverlayBoxStyle.Width(width).Render(b.String())
}
