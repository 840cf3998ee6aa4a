// Package confirm provides a yes/no confirmation dialog.
package confirm

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/launchpad/internal/ui/overlay"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

// ConfirmMsg is sent when the user confirms.
type ConfirmMsg struct{}

// CancelMsg is sent when the user cancels.
type CancelMsg struct{}

// Model holds the dialog state.
type Model struct {
	title   string
	message string
	yes     bool
	width   int
	height  int
}

// New creates a confirmation dialog. The cursor starts on "No".
func New(title, message string) Model {
	return Model{title: title, message: message}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// YesSelected reports whether the cursor is on the confirm button.
func (m Model) YesSelected() bool {
	return m.yes
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return CancelMsg{} }
		case "y":
			return m, func() tea.Msg { return ConfirmMsg{} }
		case "left", "right", "h", "l", "tab":
			m.yes = !m.yes
		case "enter":
			if m.yes {
				return m, func() tea.Msg { return ConfirmMsg{} }
			}
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}
	return m, nil
}

// View renders the dialog box.
func (m Model) View() string {
	width := 40
	if w := lipgloss.Width(m.message) + 4; w > width {
		width = w
	}

	buttonStyle := lipgloss.NewStyle().Padding(0, 2).Foreground(styles.TextMutedColor)
	focusedStyle := buttonStyle.Bold(true).
		Foreground(styles.SelectionIndicatorColor).
		Underline(true)

	yesBtn := buttonStyle.Render("Yes")
	noBtn := focusedStyle.Render("No")
	if m.yes {
		yesBtn = focusedStyle.Render("Yes")
		noBtn = buttonStyle.Render("No")
	}
	buttons := lipgloss.JoinHorizontal(lipgloss.Top, yesBtn, "  ", noBtn)

	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)

	content := styles.OverlayTitleStyle.Render(m.title) + "\n" +
		divider.Render(strings.Repeat("─", width-2)) + "\n\n" +
		m.message + "\n\n" +
		lipgloss.PlaceHorizontal(width-2, lipgloss.Center, buttons)

	return styles.OverlayBoxStyle.Width(width).Render(content)
}

// Overlay renders the dialog on top of a background view.
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
