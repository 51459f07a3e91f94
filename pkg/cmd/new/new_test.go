package new

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/state/statetest"
	cmdpkg "github.com/Paintersrp/sidenotes/pkg/cmd"
)

func TestNewNoteInRoot(t *testing.T) {
	s := statetest.New(t, map[string]string{"Work/": ""})

	cmd := NewCmdNew(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"note", "groceries"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("new returned error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(s.Root, "groceries.md")); err != nil {
		t.Fatalf("expected note on disk: %v", err)
	}
	if out.String() != "Created note groceries.md\n" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestNewFolderInsideFolder(t *testing.T) {
	s := statetest.New(t, map[string]string{"Home/": ""})

	cmd := NewCmdNew(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"folder", "Recipes", "--in", "Home"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("new returned error: %v", err)
	}
	info, err := os.Stat(filepath.Join(s.Root, "Home", "Recipes"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected folder on disk, err=%v", err)
	}
}

func TestNewPromptsForMissingName(t *testing.T) {
	s := statetest.New(t, nil)

	original := cmdpkg.PromptText
	var validated bool
	cmdpkg.PromptText = func(prompt, placeholder string, validate func(string) error) (string, error) {
		validated = validate("bad/name") != nil && validate("   ") != nil && validate("ideas") == nil
		return "ideas", nil
	}
	t.Cleanup(func() { cmdpkg.PromptText = original })

	cmd := NewCmdNew(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"note"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("new returned error: %v", err)
	}
	if !validated {
		t.Fatalf("prompt did not receive the name validator")
	}
	if _, err := os.Stat(filepath.Join(s.Root, "ideas.md")); err != nil {
		t.Fatalf("expected note on disk: %v", err)
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	s := statetest.New(t, nil)

	cmd := NewCmdNew(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"page", "x"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unknown kind")
	}
}

func TestNewRefusesExistingNote(t *testing.T) {
	s := statetest.New(t, map[string]string{"inbox.md": "keep"})

	cmd := NewCmdNew(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SilenceUsage = true
	cmd.SetArgs([]string{"note", "inbox"})

	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected an error when the note exists")
	}
	data, _ := os.ReadFile(filepath.Join(s.Root, "inbox.md"))
	if string(data) != "keep" {
		t.Fatalf("existing note was modified: %q", data)
	}
}
