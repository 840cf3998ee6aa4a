package entrylist

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/launchpad/internal/domain/entry"
	"github.com/zjrosen/launchpad/internal/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Navigation(t *testing.T) {
	m := New([]entry.Entry{
		testutil.App(t, "Editor"),
		testutil.App(t, "Browser"),
		testutil.App(t, "Terminal"),
	})

	assert.Equal(t, 0, m.SelectedIndex(), "cursor starts at the first row")

	m, _ = m.Update(keyMsg("j"))
	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.SelectedIndex())

	m, _ = m.Update(keyMsg("j"))
	assert.Equal(t, 2, m.SelectedIndex(), "cursor should not move past the last row")

	m, _ = m.Update(keyMsg("k"))
	assert.Equal(t, 1, m.SelectedIndex())

	m, _ = m.Update(keyMsg("g"))
	assert.Equal(t, 0, m.SelectedIndex())

	m, _ = m.Update(keyMsg("G"))
	assert.Equal(t, 2, m.SelectedIndex())
}

func TestModel_SelectedReturnsEntryUnderCursor(t *testing.T) {
	editor := testutil.App(t, "Editor")
	browser := testutil.App(t, "Browser")
	m := New([]entry.Entry{editor, browser})

	m, _ = m.Update(keyMsg("j"))
	got, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, browser.ID(), got.ID())
}

func TestModel_SelectedOnEmptyList(t *testing.T) {
	m := New(nil)
	_, ok := m.Selected()
	assert.False(t, ok, "empty list has no selection")
}

func TestModel_SetEntriesClampsSelection(t *testing.T) {
	m := New([]entry.Entry{
		testutil.App(t, "One"),
		testutil.App(t, "Two"),
		testutil.App(t, "Three"),
	})
	m, _ = m.Update(keyMsg("G"))
	require.Equal(t, 2, m.SelectedIndex())

	m = m.SetEntries([]entry.Entry{testutil.App(t, "Only")})
	assert.Equal(t, 0, m.SelectedIndex(), "selection clamps when the list shrinks")
}

func TestModel_SelectByID(t *testing.T) {
	a := testutil.App(t, "A")
	b := testutil.App(t, "B")
	c := testutil.App(t, "C")
	m := New([]entry.Entry{a, b, c})

	m = m.SelectByID(c.ID())
	assert.Equal(t, 2, m.SelectedIndex())

	m = m.SelectByID("unknown")
	assert.Equal(t, 2, m.SelectedIndex(), "unknown id leaves the cursor alone")
}

func TestView_RendersCategoryAsSeparator(t *testing.T) {
	m := New([]entry.Entry{
		testutil.Category(t, "Games"),
		testutil.App(t, "Chess"),
	}).SetSize(40, 10)

	view := m.View()
	assert.Contains(t, view, "── Games")
	assert.Contains(t, view, "Chess")
}

func TestView_MissingBadge(t *testing.T) {
	m := New([]entry.Entry{testutil.App(t, "Ghost", testutil.WithPath("/nonexistent/app"))}).
		WithMissingBadge(true).
		WithChecker(func(string) bool { return false })

	assert.Contains(t, m.View(), "[missing]")

	m = m.WithChecker(func(string) bool { return true })
	assert.NotContains(t, m.View(), "[missing]", "existing target gets no badge")
}

func TestView_Descriptions(t *testing.T) {
	e := testutil.App(t, "Editor", testutil.WithDescription("code editing"))

	hidden := New([]entry.Entry{e})
	assert.NotContains(t, hidden.View(), "code editing")

	shown := New([]entry.Entry{e}).WithDescriptions(true)
	assert.Contains(t, shown.View(), "code editing")
}

func TestView_EmptyListHint(t *testing.T) {
	m := New(nil)
	assert.Contains(t, m.View(), "No entries")
}

func TestWindow_KeepsCursorVisible(t *testing.T) {
	entries := make([]entry.Entry, 20)
	for i := range entries {
		entries[i] = testutil.App(t, strings.Repeat("x", i+1))
	}
	m := New(entries).SetSize(40, 5)
	m, _ = m.Update(keyMsg("G"))

	start, end := m.window()
	assert.Equal(t, 20, end, "window should reach the last row")
	assert.Equal(t, 15, start)
	assert.LessOrEqual(t, end-start, 5, "window never exceeds the viewport height")
}
