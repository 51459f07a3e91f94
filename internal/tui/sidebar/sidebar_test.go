package sidebar

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/state"
)

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()

	home := t.TempDir()
	cfg := config.Default(home)
	cfg.SearchDebounce = 10 * time.Millisecond
	require.NoError(t, cfg.EnsureRoot())

	root := cfg.RootFolder
	write := func(rel, body string) {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	write("Work/notes.md", "meeting agenda")
	write("Work/todo.md", "buy milk")
	write("inbox.md", "loose ends")
	write(".private/secret.md", "hidden")

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	s, err := state.New(home, cfg, logrus.NewEntry(logger))
	require.NoError(t, err)

	m := New(s)
	t.Cleanup(m.Close)
	return m, root
}

func names(m *Model) []string {
	out := make([]string, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r.entry.Name())
	}
	return out
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func nextEvent[T any](t *testing.T, m *Model) T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-m.events:
			if typed, ok := msg.(T); ok {
				return typed
			}
			m.Update(msg)
		case <-deadline:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestInitialRowsListFoldersFirst(t *testing.T) {
	m, _ := newTestModel(t)

	assert.Equal(t, []string{"Work", "inbox"}, names(m))
	assert.Equal(t, 0, m.cursor)
}

func TestOpenExpandsFolderAndSelectsIt(t *testing.T) {
	m, root := newTestModel(t)

	press(m, "enter")

	assert.Equal(t, []string{"Work", "notes", "todo", "inbox"}, names(m))
	assert.Equal(t, 1, m.rows[1].depth)

	selected, ok := m.state.Store.Selected()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "Work"), selected.Path())

	press(m, "h")
	assert.Equal(t, []string{"Work", "inbox"}, names(m))
}

func TestCollapseFromNoteMovesToParent(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "enter", "j", "j", "h")

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, []string{"Work", "notes", "todo", "inbox"}, names(m))
}

func TestNavigatorRevealExpandsAndMovesCursor(t *testing.T) {
	m, root := newTestModel(t)
	target := filepath.Join(root, "Work", "todo.md")

	require.True(t, m.nav.Reveal(context.Background(), target))

	assert.Equal(t, []string{"Work", "notes", "todo", "inbox"}, names(m))
	assert.Equal(t, 2, m.cursor)

	selected, ok := m.state.Store.Selected()
	require.True(t, ok)
	assert.Equal(t, target, selected.Path())
}

func TestToggleHiddenRefreshesRows(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, ".")
	msg := nextEvent[treeChangedMsg](t, m)
	m.Update(msg)

	assert.Equal(t, []string{".private", "Work", "inbox"}, names(m))
	assert.Contains(t, m.View(), "hidden shown")
}

func TestSearchRevealsChosenResult(t *testing.T) {
	m, root := newTestModel(t)

	press(m, "/", "m", "i", "l", "k")
	require.True(t, m.searching)

	for {
		results := nextEvent[searchResultsMsg](t, m)
		m.Update(results)
		if results.results.Query == "milk" {
			break
		}
	}

	require.Len(t, m.results, 1)
	assert.Equal(t, "Work/todo.md", m.results[0].Rel)
	assert.True(t, m.results[0].MatchedOnContent)
	assert.Contains(t, m.View(), "contains milk")

	press(m, "enter")

	assert.False(t, m.searching)
	assert.Equal(t, 2, m.cursor)
	selected, ok := m.state.Store.Selected()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "Work", "todo.md"), selected.Path())
}

func TestSearchEscapeReturnsToTree(t *testing.T) {
	m, _ := newTestModel(t)

	press(m, "/", "x", "esc")

	assert.False(t, m.searching)
	assert.Nil(t, m.results)
	assert.Contains(t, m.View(), "Work")
}

func TestExternalRemovalOfExpandedFolder(t *testing.T) {
	m, root := newTestModel(t)
	press(m, "enter")

	require.NoError(t, os.RemoveAll(filepath.Join(root, "Work")))
	m.state.Store.Refresh()
	m.Update(nextEvent[treeChangedMsg](t, m))

	assert.Equal(t, []string{"inbox"}, names(m))
	assert.NoError(t, m.err)
}

func TestTreeChangeSurvivesFullEventQueue(t *testing.T) {
	m, root := newTestModel(t)

	for len(m.events) < cap(m.events) {
		m.events <- state.TreeStatusMsg{}
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "later.md"), nil, 0o644))
	m.state.Store.Refresh()

	for i := 0; i < cap(m.events); i++ {
		_, ok := m.waitForEvent()().(state.TreeStatusMsg)
		require.True(t, ok)
	}

	msg, ok := m.waitForEvent()().(treeChangedMsg)
	require.True(t, ok, "the dropped tree change must still be delivered")

	m.Update(msg)
	assert.Contains(t, names(m), "later")
	assert.False(t, m.treeDirty.Load())
}
