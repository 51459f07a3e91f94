package root

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/state/statetest"
)

func TestRootRegistersCommands(t *testing.T) {
	s := statetest.New(t, nil)

	cmd, err := NewCmdRoot(s)
	if err != nil {
		t.Fatalf("NewCmdRoot returned error: %v", err)
	}

	for _, name := range []string{"init", "browse", "tree", "search", "reveal", "show", "new", "rename", "trash", "untrash", "watch"} {
		if found, _, err := cmd.Find([]string{name}); err != nil || found == cmd {
			t.Fatalf("command %q is not registered", name)
		}
	}
}

func TestRootRunsSubcommands(t *testing.T) {
	s := statetest.New(t, map[string]string{"Work/notes.md": "", "inbox.md": ""})

	cmd, err := NewCmdRoot(s)
	if err != nil {
		t.Fatalf("NewCmdRoot returned error: %v", err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tree"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("tree returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Work/") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestRootReportsVersion(t *testing.T) {
	s := statetest.New(t, nil)

	cmd, err := NewCmdRoot(s)
	if err != nil {
		t.Fatalf("NewCmdRoot returned error: %v", err)
	}
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("--version returned error: %v", err)
	}
	if !strings.Contains(out.String(), "sidenotes version 0.1.0") {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
