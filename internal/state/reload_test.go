package state

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/sidenotes/internal/config"
)

func TestReloaderAppliesHiddenToggleInPlace(t *testing.T) {
	s := newTestState(t)
	r := NewReloader(s)

	next := *s.Config
	next.ShowHidden = true
	r.onChange(&next, nil)

	assert.True(t, s.Store.ShowHidden())
	assert.Empty(t, r.Reloads())
}

func TestReloaderIgnoresInvalidConfig(t *testing.T) {
	s := newTestState(t)
	r := NewReloader(s)

	r.onChange(nil, errors.New("bad yaml"))

	assert.Same(t, s, r.State())
	assert.Empty(t, r.Reloads())
}

func TestReloaderRebuildsOnRootChange(t *testing.T) {
	s := newTestState(t)
	r := NewReloader(s)

	first := *s.Config
	first.RootFolder = filepath.Join(s.Home, "first")
	second := *s.Config
	second.RootFolder = filepath.Join(s.Home, "second")

	r.onChange(&first, nil)
	r.onChange(&second, nil)

	var queued *config.Config
	select {
	case queued = <-r.Reloads():
	default:
		t.Fatal("expected a queued reload")
	}
	assert.Equal(t, second.RootFolder, queued.RootFolder)

	rebuilt, err := r.Rebuild(queued)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rebuilt.Close() })

	assert.Equal(t, second.RootFolder, rebuilt.Root)
	assert.Same(t, rebuilt, r.State())
	assert.DirExists(t, second.RootFolder)
}
