// Package statetest builds throwaway states over a temporary notes root.
package statetest

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/state"
)

// New returns a state rooted in a fresh temporary directory containing
// files, keyed by slash separated paths relative to the root. A key ending
// in "/" creates an empty folder.
func New(t testing.TB, files map[string]string) *state.State {
	t.Helper()

	home := t.TempDir()
	cfg := config.Default(home)
	if err := cfg.EnsureRoot(); err != nil {
		t.Fatalf("failed to create root: %v", err)
	}

	for rel, body := range files {
		path := filepath.Join(cfg.RootFolder, filepath.FromSlash(rel))
		if rel[len(rel)-1] == '/' {
			if err := os.MkdirAll(path, 0o755); err != nil {
				t.Fatalf("failed to create %s: %v", rel, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(rel), err)
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}

	s, err := state.New(home, cfg, Logger())
	if err != nil {
		t.Fatalf("failed to build state: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// Logger returns a logger that discards everything.
func Logger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}
