// Package entrylist renders the ordered entry list with selection.
package entrylist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/ui/styles"
)

// Checker reports whether an entry's target exists on disk.
type Checker func(path string) bool

// Model holds the entry list state.
type Model struct {
	entries          []entry.Entry
	selected         int
	width            int
	height           int
	showDescriptions bool
	showMissingBadge bool
	checker          Checker
}

// New creates an entry list over the given entries.
func New(entries []entry.Entry) Model {
	return Model{entries: entries}
}

// WithChecker sets the target existence check used for the missing badge.
func (m Model) WithChecker(c Checker) Model {
	m.checker = c
	return m
}

// WithDescriptions toggles rendering of entry descriptions.
func (m Model) WithDescriptions(show bool) Model {
	m.showDescriptions = show
	return m
}

// WithMissingBadge toggles the badge shown next to entries whose target
// no longer exists.
func (m Model) WithMissingBadge(show bool) Model {
	m.showMissingBadge = show
	return m
}

// SetSize sets the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetEntries replaces the list contents, clamping the selection.
func (m Model) SetEntries(entries []entry.Entry) Model {
	m.entries = entries
	if m.selected >= len(entries) {
		m.selected = len(entries) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
	return m
}

// Entries returns the current list contents.
func (m Model) Entries() []entry.Entry {
	return m.entries
}

// Len returns the number of rows.
func (m Model) Len() int {
	return len(m.entries)
}

// Selected returns the entry under the cursor, if any.
func (m Model) Selected() (entry.Entry, bool) {
	if m.selected < 0 || m.selected >= len(m.entries) {
		return entry.Entry{}, false
	}
	return m.entries[m.selected], true
}

// SelectedIndex returns the cursor position.
func (m Model) SelectedIndex() int {
	return m.selected
}

// SelectByID moves the cursor to the entry with the given id, if present.
func (m Model) SelectByID(id string) Model {
	for i, e := range m.entries {
		if e.ID() == id {
			m.selected = i
			break
		}
	}
	return m
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.selected < len(m.entries)-1 {
				m.selected++
			}
		case "k", "up":
			if m.selected > 0 {
				m.selected--
			}
		case "g", "home":
			m.selected = 0
		case "G", "end":
			if len(m.entries) > 0 {
				m.selected = len(m.entries) - 1
			}
		}
	}
	return m, nil
}

// View renders the list with the selection indicator and scrolling window.
func (m Model) View() string {
	if len(m.entries) == 0 {
		return styles.StatusInfoStyle.Render("  No entries. Press 'a' to add one.")
	}

	start, end := m.window()

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(i))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// window computes the visible row range so the cursor stays in view.
func (m Model) window() (start, end int) {
	visible := m.height
	if visible <= 0 || visible > len(m.entries) {
		return 0, len(m.entries)
	}

	start = m.selected - visible/2
	if start < 0 {
		start = 0
	}
	end = start + visible
	if end > len(m.entries) {
		end = len(m.entries)
		start = end - visible
	}
	return start, end
}

func (m Model) renderRow(i int) string {
	e := m.entries[i]
	prefix := "  "
	if i == m.selected {
		prefix = styles.SelectionIndicatorStyle.Render(">") + " "
	}

	if e.IsCategory() {
		return prefix + m.renderCategory(e)
	}
	return prefix + m.renderApplication(e, i == m.selected)
}

func (m Model) renderCategory(e entry.Entry) string {
	label := fmt.Sprintf("── %s ", e.Name())
	if m.width > 0 {
		fill := m.width - len([]rune(label)) - 2
		if fill > 0 {
			label += strings.Repeat("─", fill)
		}
	}
	return styles.CategoryStyle.Render(label)
}

func (m Model) renderApplication(e entry.Entry, selected bool) string {
	nameStyle := styles.EntryNameStyle
	if selected {
		nameStyle = nameStyle.Underline(true)
	}
	line := nameStyle.Render(e.Name())

	if m.showMissingBadge && m.checker != nil && !m.checker(e.Path()) {
		line += " " + styles.MissingBadgeStyle.Render("[missing]")
	}

	if m.showDescriptions && e.Description() != "" {
		line += "  " + styles.EntryDescriptionStyle.Render(e.Description())
	}

	if m.width > 2 {
		line = truncate.StringWithTail(line, uint(m.width-2), "…")
	}
	return line
}
