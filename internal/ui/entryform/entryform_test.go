package entryform

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/testutil"
)

func typeText(m Model, s string) Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func press(m Model, key tea.KeyType) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: key})
}

func TestForm_SubmitApplication(t *testing.T) {
	m := New(entry.KindApplication)

	m = typeText(m, "Editor")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "/usr/bin/editor")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "my editor")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd, "valid form should produce a submit command")

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "Editor", msg.Name)
	assert.Equal(t, "/usr/bin/editor", msg.Path)
	assert.Equal(t, "my editor", msg.Description)
	assert.Equal(t, entry.KindApplication, msg.Kind)
	assert.Empty(t, msg.EditID, "add form carries no edit id")
}

func TestForm_RequiresName(t *testing.T) {
	m := New(entry.KindApplication)

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd, "empty name should not submit")
	assert.True(t, m.HasError())
	assert.Contains(t, m.View(), "Name is required")
}

func TestForm_RequiresPathForApplications(t *testing.T) {
	m := typeText(New(entry.KindApplication), "Editor")

	m, cmd := press(m, tea.KeyEnter)
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "Path is required")
}

func TestForm_CategorySkipsPathField(t *testing.T) {
	m := New(entry.KindCategory)
	assert.NotContains(t, m.View(), "Path", "category form has no path field")

	m = typeText(m, "Games")
	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd, "category needs only a name")

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, "Games", msg.Name)
	assert.Equal(t, entry.KindCategory, msg.Kind)
}

func TestForm_TabCyclesFields(t *testing.T) {
	m := New(entry.KindApplication)
	assert.Equal(t, FieldName, m.Focused())

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, FieldPath, m.Focused())

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, FieldDescription, m.Focused())

	m, _ = press(m, tea.KeyTab)
	assert.Equal(t, FieldName, m.Focused(), "tab wraps around")

	m, _ = press(m, tea.KeyShiftTab)
	assert.Equal(t, FieldDescription, m.Focused(), "shift+tab cycles backwards")
}

func TestForm_EditPrefillsValues(t *testing.T) {
	e := testutil.App(t, "Browser",
		testutil.WithPath("/usr/bin/browser"),
		testutil.WithDescription("web"))

	m := NewEdit(e)
	assert.Contains(t, m.View(), "Edit Entry")

	m, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd, "prefilled form submits as-is")

	msg, ok := cmd().(SubmitMsg)
	require.True(t, ok)
	assert.Equal(t, e.ID(), msg.EditID)
	assert.Equal(t, "Browser", msg.Name)
	assert.Equal(t, "/usr/bin/browser", msg.Path)
	assert.Equal(t, "web", msg.Description)
}

func TestForm_EscapeCancels(t *testing.T) {
	m := New(entry.KindApplication)
	_, cmd := press(m, tea.KeyEsc)
	require.NotNil(t, cmd)

	_, ok := cmd().(CancelMsg)
	assert.True(t, ok)
}

func TestForm_TrimsWhitespace(t *testing.T) {
	m := New(entry.KindApplication)
	m = typeText(m, "  Editor  ")
	m, _ = press(m, tea.KeyTab)
	m = typeText(m, "  /usr/bin/editor  ")

	_, cmd := press(m, tea.KeyEnter)
	require.NotNil(t, cmd)

	msg := cmd().(SubmitMsg)
	assert.Equal(t, "Editor", msg.Name)
	assert.Equal(t, "/usr/bin/editor", msg.Path)
}
