package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/tree"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	home := t.TempDir()
	cfg := config.Default(home)
	require.NoError(t, cfg.EnsureRoot())

	s, err := New(home, cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNewWiresCollaborators(t *testing.T) {
	s := newTestState(t)

	assert.Equal(t, s.Config.RootFolder, s.Root)
	assert.NotNil(t, s.Store)
	assert.NotNil(t, s.Search)
	assert.NotNil(t, s.Handler)
	assert.Nil(t, s.Watcher)
	assert.Equal(t, "", s.Watcher.StatusLine())
}

func TestStartWatcherIsReused(t *testing.T) {
	s := newTestState(t)

	first, err := s.StartWatcher()
	require.NoError(t, err)
	second, err := s.StartWatcher()
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, "Tree: refreshed 0", first.StatusLine())

	msg := s.TreeStatusCmd()()
	assert.Equal(t, TreeStatusMsg{Line: "Tree: refreshed 0"}, msg)
}

func TestRefreshFromDiskReportsMissingRoot(t *testing.T) {
	s := newTestState(t)

	changes := 0
	s.Store.OnTreeChanged(func(tree.Change) { changes++ })

	require.NoError(t, s.refreshFromDisk(""))
	assert.Equal(t, 1, changes)

	require.NoError(t, os.RemoveAll(s.Root))
	err := s.refreshFromDisk("")
	assert.True(t, fserr.IsNotFound(err))
	assert.Equal(t, 1, changes)
}

func TestRefreshFromDiskScopesToChangedFolder(t *testing.T) {
	s := newTestState(t)
	work := filepath.Join(s.Root, "Work")
	require.NoError(t, os.Mkdir(work, 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(s.Root, ".private"), 0o755))

	var changes []tree.Change
	s.Store.OnTreeChanged(func(c tree.Change) { changes = append(changes, c) })

	require.NoError(t, s.refreshFromDisk(work))
	require.NoError(t, s.refreshFromDisk(s.Root))
	require.NoError(t, s.refreshFromDisk(filepath.Join(s.Root, ".private")))
	require.NoError(t, s.refreshFromDisk(filepath.Join(s.Root, "gone")))

	require.Len(t, changes, 4)
	assert.True(t, changes[0].Scope.Equal(entry.NewFolder(work)))
	assert.True(t, changes[1].Full(), "root scope refreshes everything")
	assert.True(t, changes[2].Full(), "hidden folder is not in the tree")
	assert.True(t, changes[3].Full(), "vanished folder falls back to a full refresh")
}

func TestApplyConfigTogglesHiddenInPlace(t *testing.T) {
	s := newTestState(t)
	require.NoError(t, os.Mkdir(filepath.Join(s.Root, ".hidden"), 0o755))

	changes := 0
	s.Store.OnTreeChanged(func(tree.Change) { changes++ })

	next := *s.Config
	next.ShowHidden = true
	next.LogLevel = "debug"

	assert.False(t, s.ApplyConfig(&next))
	assert.True(t, s.Store.ShowHidden())
	assert.Equal(t, 1, changes)
	assert.Equal(t, logrus.DebugLevel, s.Logger.Logger.GetLevel())

	children, err := s.Store.Children(entry.Entry{})
	require.NoError(t, err)
	assert.Len(t, children, 1)
}

func TestApplyConfigRequestsReloadOnRootChange(t *testing.T) {
	s := newTestState(t)

	next := *s.Config
	next.RootFolder = filepath.Join(s.Home, "elsewhere")

	assert.True(t, s.ApplyConfig(&next))
}
