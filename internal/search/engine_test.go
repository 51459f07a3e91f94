package search

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sidenotes/internal/tree"
)

func writeNote(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func quietLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newEngine(t testing.TB, root string, showHidden bool) *Engine {
	t.Helper()
	store, err := tree.NewStore(tree.Options{Root: root, NoteExt: ".md", ShowHidden: showHidden})
	require.NoError(t, err)
	return NewEngine(store, 12, quietLogger())
}

func TestSearchPrefersNameMatches(t *testing.T) {
	root := t.TempDir()
	path := writeNote(t, root, "apple.md", "I would rather have a banana.")

	engine := newEngine(t, root, false)

	results, err := engine.Search(context.Background(), "APPLE")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.False(t, results[0].MatchedOnContent)
	assert.Empty(t, results[0].Hint)

	results, err = engine.Search(context.Background(), "banana")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.True(t, results[0].MatchedOnContent)
	assert.Equal(t, "contains banana", results[0].Hint)
	assert.Contains(t, results[0].Snippet, "banana")

	results, err = engine.Search(context.Background(), "cherry")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchStopsAtLimit(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 20; i++ {
		writeNote(t, root, fmt.Sprintf("note-%02d.md", i), "shared term")
	}
	for i := 0; i < 5; i++ {
		writeNote(t, root, filepath.Join("nested", fmt.Sprintf("deep-%d.md", i)), "shared term")
	}

	engine := newEngine(t, root, false)

	results, err := engine.Search(context.Background(), "shared")
	require.NoError(t, err)
	assert.Len(t, results, 12)

	results, err = engine.Search(context.Background(), "note-")
	require.NoError(t, err)
	assert.Len(t, results, 12)
}

func TestSearchScenarioContentMatch(t *testing.T) {
	root := t.TempDir()
	path := writeNote(t, root, filepath.Join("Work", "notes.md"), "meeting agenda")

	results, err := newEngine(t, root, false).Search(context.Background(), "agenda")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, path, results[0].Path)
	assert.Equal(t, "Work/notes.md", results[0].Rel)
	assert.Equal(t, "notes", results[0].Name)
	assert.True(t, results[0].MatchedOnContent)
}

func TestSearchEmptyTermMatchesNothing(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "anything")

	results, err := newEngine(t, root, false).Search(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchRespectsHiddenFilter(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, filepath.Join(".trash", "secret.md"), "")
	writeNote(t, root, ".draft-secret.md", "")
	visible := writeNote(t, root, "secret-plans.md", "")

	results, err := newEngine(t, root, false).Search(context.Background(), "secret")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, visible, results[0].Path)

	results, err = newEngine(t, root, true).Search(context.Background(), "secret")
	require.NoError(t, err)
	assert.Len(t, results, 3)
}

func TestSearchIgnoresNonNoteFiles(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "todo.txt", "needle")

	results, err := newEngine(t, root, false).Search(context.Background(), "needle")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchAbandonsCancelledTraversal(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "content")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newEngine(t, root, false).Search(ctx, "content")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchSkipsNotesThatVanish(t *testing.T) {
	root := t.TempDir()
	gone := writeNote(t, root, "gone.md", "needle")
	kept := writeNote(t, root, "kept.md", "needle")

	engine := newEngine(t, root, false)
	engine.readFile = func(path string) ([]byte, error) {
		if path == gone {
			return nil, os.ErrNotExist
		}
		return os.ReadFile(path)
	}

	results, err := engine.Search(context.Background(), "needle")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, kept, results[0].Path)
}

func TestSearchSurfacesPermissionErrors(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "locked.md", "needle")

	engine := newEngine(t, root, false)
	engine.readFile = func(string) ([]byte, error) {
		return nil, os.ErrPermission
	}

	_, err := engine.Search(context.Background(), "needle")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestNotesEnumeratesEveryNote(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "a.md", "")
	writeNote(t, root, filepath.Join("Work", "b.md"), "")
	writeNote(t, root, filepath.Join("Work", "c.txt"), "")

	notes, err := newEngine(t, root, false).Notes(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestBodySnippetAddsEllipses(t *testing.T) {
	body := "0123456789012345678901234567890123456789012345678901234567890 needle 0123456789012345678901234567890123456789012345678901234567890"
	idx := 62

	snippet := bodySnippet(body, idx, len("needle"))

	assert.True(t, len(snippet) > 0)
	assert.Contains(t, snippet, "needle")
	assert.Equal(t, "…", string([]rune(snippet)[0]))
	assert.Equal(t, "…", string([]rune(snippet)[len([]rune(snippet))-1]))
}
