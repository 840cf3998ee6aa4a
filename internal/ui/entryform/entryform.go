// Package entryform provides the add/edit modal for entries.
package entryform

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/ui/overlay"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

// Field identifies which input is focused.
type Field int

const (
	FieldName Field = iota
	FieldPath
	FieldDescription
)

// SubmitMsg is sent when the user confirms the form.
type SubmitMsg struct {
	EditID      string // empty when adding
	Name        string
	Path        string
	Description string
	Kind        entry.Kind
}

// CancelMsg is sent when the user cancels.
type CancelMsg struct{}

// Model holds the form state.
type Model struct {
	title       string
	editID      string
	kind        entry.Kind
	nameInput   textinput.Model
	pathInput   textinput.Model
	descInput   textinput.Model
	focused     Field
	width       int
	height      int
	submitError string
}

// New creates an empty form for adding an entry of the given kind.
func New(kind entry.Kind) Model {
	m := build("Add Entry", kind)
	if kind == entry.KindCategory {
		m.title = "Add Category"
	}
	return m
}

// NewEdit creates a form pre-filled from an existing entry.
func NewEdit(e entry.Entry) Model {
	m := build("Edit Entry", e.Kind())
	if e.IsCategory() {
		m.title = "Edit Category"
	}
	m.editID = e.ID()
	m.nameInput.SetValue(e.Name())
	m.pathInput.SetValue(e.Path())
	m.descInput.SetValue(e.Description())
	return m
}

func build(title string, kind entry.Kind) Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.CharLimit = 80
	name.Width = 40
	name.Prompt = ""
	name.Focus()

	path := textinput.New()
	path.Placeholder = "/path/to/target"
	path.CharLimit = 512
	path.Width = 40
	path.Prompt = ""

	desc := textinput.New()
	desc.Placeholder = "optional"
	desc.CharLimit = 200
	desc.Width = 40
	desc.Prompt = ""

	return Model{
		title:     title,
		kind:      kind,
		nameInput: name,
		pathInput: path,
		descInput: desc,
		focused:   FieldName,
	}
}

// SetSize sets the viewport dimensions for overlay rendering.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// Init satisfies tea.Model-ish callers that want a blink cursor.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Focused returns the currently focused field.
func (m Model) Focused() Field {
	return m.focused
}

// HasError reports whether the last submit attempt failed validation.
func (m Model) HasError() bool {
	return m.submitError != ""
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return CancelMsg{} }

		case "tab", "ctrl+n":
			return m.cycleField(false), nil

		case "shift+tab", "ctrl+p":
			return m.cycleField(true), nil

		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	switch m.focused {
	case FieldName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case FieldPath:
		m.pathInput, cmd = m.pathInput.Update(msg)
	case FieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	}
	return m, cmd
}

func (m Model) fields() []Field {
	if m.kind == entry.KindCategory {
		// categories have no target path
		return []Field{FieldName, FieldDescription}
	}
	return []Field{FieldName, FieldPath, FieldDescription}
}

func (m Model) cycleField(reverse bool) Model {
	fields := m.fields()
	current := 0
	for i, f := range fields {
		if f == m.focused {
			current = i
			break
		}
	}

	if reverse {
		current--
		if current < 0 {
			current = len(fields) - 1
		}
	} else {
		current = (current + 1) % len(fields)
	}
	m.focused = fields[current]

	m.nameInput.Blur()
	m.pathInput.Blur()
	m.descInput.Blur()
	switch m.focused {
	case FieldName:
		m.nameInput.Focus()
	case FieldPath:
		m.pathInput.Focus()
	case FieldDescription:
		m.descInput.Focus()
	}
	return m
}

// submit validates input and returns a SubmitMsg command.
func (m Model) submit() (Model, tea.Cmd) {
	m.submitError = ""

	name := strings.TrimSpace(m.nameInput.Value())
	if name == "" {
		m.submitError = "Name is required"
		return m, nil
	}

	path := strings.TrimSpace(m.pathInput.Value())
	if m.kind == entry.KindApplication && path == "" {
		m.submitError = "Path is required"
		return m, nil
	}

	msg := SubmitMsg{
		EditID:      m.editID,
		Name:        name,
		Path:        path,
		Description: strings.TrimSpace(m.descInput.Value()),
		Kind:        m.kind,
	}
	return m, func() tea.Msg { return msg }
}

// View renders the form box.
func (m Model) View() string {
	width := 48

	var b strings.Builder
	b.WriteString(styles.OverlayTitleStyle.Render(m.title))
	b.WriteString("\n")
	divider := lipgloss.NewStyle().Foreground(styles.OverlayBorderColor)
	b.WriteString(divider.Render(strings.Repeat("─", width-2)))
	b.WriteString("\n\n")

	b.WriteString(m.renderField("Name", m.nameInput.View(), m.focused == FieldName))
	if m.kind == entry.KindApplication {
		b.WriteString("\n")
		b.WriteString(m.renderField("Path", m.pathInput.View(), m.focused == FieldPath))
	}
	b.WriteString("\n")
	b.WriteString(m.renderField("Description", m.descInput.View(), m.focused == FieldDescription))

	if m.submitError != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusErrorStyle.Render(m.submitError))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.StatusInfoStyle.Render("enter save · tab next · esc cancel"))

	return styles.OverlayBoxStyle.Width(width).Render(b.String())
}

func (m Model) renderField(label, input string, focused bool) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	if focused {
		labelStyle = labelStyle.Foreground(styles.OverlayTitleColor).Bold(true)
	}
	return labelStyle.Render(label) + "\n" + input + "\n"
}

// Overlay renders the form on top of a background view.
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
