package rename

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/state/statetest"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func TestRenameKeepsExtension(t *testing.T) {
	s := statetest.New(t, map[string]string{"Work/notes.md": "body"})

	cmd := NewCmdRename(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"Work/notes", "minutes"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root, "Work", "minutes.md")); err != nil {
		t.Fatalf("expected renamed note: %v", err)
	}
	if out.String() != "Renamed to Work/minutes.md\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRenameToSameNameIsNoop(t *testing.T) {
	s := statetest.New(t, map[string]string{"inbox.md": ""})

	cmd := NewCmdRename(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"inbox.md", "inbox"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if out.String() != "inbox already has that name\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRenamePromptsForName(t *testing.T) {
	s := statetest.New(t, map[string]string{"Home/": ""})

	original := cmdpkg.PromptText
	var placeholder string
	var blankRejected bool
	cmdpkg.PromptText = func(prompt, ph string, validate func(string) error) (string, error) {
		placeholder = ph
		blankRejected = validate("\t") != nil
		return "House", nil
	}
	t.Cleanup(func() { cmdpkg.PromptText = original })

	cmd := NewCmdRename(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"Home"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("rename returned error: %v", err)
	}
	if placeholder != "Home" {
		t.Fatalf("placeholder = %q", placeholder)
	}
	if !blankRejected {
		t.Fatalf("prompt validator accepted a blank name")
	}
	if _, err := os.Stat(filepath.Join(s.Root, "House")); err != nil {
		t.Fatalf("expected renamed folder: %v", err)
	}
}

func TestRenameRefusesOverwrite(t *testing.T) {
	s := statetest.New(t, map[string]string{"a.md": "a", "b.md": "b"})

	cmd := NewCmdRename(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"a.md", "b"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when the name is taken")
	}
	data, _ := os.ReadFile(filepath.Join(s.Root, "b.md"))
	if string(data) != "b" {
		t.Fatalf("existing note was overwritten: %q", data)
	}
}
