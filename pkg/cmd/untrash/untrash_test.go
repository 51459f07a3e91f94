package untrash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/state"
	"github.com/Paintersrp/sidenotes/internal/state/statetest"
)

func TestUntrashCommandRequiresArgument(t *testing.T) {
	s := &state.State{}
	cmd := NewCmdUntrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true

	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when no path argument is provided")
	}
}

func TestUntrashRestoresOriginalLocation(t *testing.T) {
	s := statetest.New(t, map[string]string{".trash/Work/notes.md": "body"})

	cmd := NewCmdUntrash(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Work/notes"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("untrash returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root, "Work", "notes.md")); err != nil {
		t.Fatalf("expected restored note: %v", err)
	}
	if out.String() != "Restored Work/notes.md\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestUntrashRejectsItemsOutsideTrash(t *testing.T) {
	s := statetest.New(t, map[string]string{"inbox.md": ""})

	cmd := NewCmdUntrash(s)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"/"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for a path outside the trash")
	}
}
