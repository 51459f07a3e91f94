package tree

import (
	"bytes"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/state/statetest"
)

func runTree(t *testing.T, args ...string) string {
	t.Helper()
	s := statetest.New(t, map[string]string{
		"Work/notes.md":      "meeting agenda",
		"Work/Deep/plan.md":  "plan",
		"inbox.md":           "",
		"image.png":          "",
		".private/secret.md": "",
	})

	cmd := NewCmdTree(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("tree returned error: %v", err)
	}
	return out.String()
}

func TestTreePrintsFoldersBeforeNotes(t *testing.T) {
	want := "Work/\n  Deep/\n    plan\n  notes\ninbox\n"
	if got := runTree(t); got != want {
		t.Fatalf("tree output = %q, want %q", got, want)
	}
}

func TestTreeDepthAndHidden(t *testing.T) {
	want := ".private/\nWork/\ninbox\n"
	if got := runTree(t, "--depth", "1", "--hidden"); got != want {
		t.Fatalf("tree output = %q, want %q", got, want)
	}
}

func TestTreeFromFolder(t *testing.T) {
	want := "Deep/\n  plan\nnotes\n"
	if got := runTree(t, "Work"); got != want {
		t.Fatalf("tree output = %q, want %q", got, want)
	}
}
