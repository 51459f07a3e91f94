package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	"github.com/Paintersrp/sidenotes/internal/fserr"
)

func TestReportErrorAddsHintPerKind(t *testing.T) {
	cases := []struct {
		name string
		err  error
		hint string
	}{
		{
			name: "validation",
			err:  &fserr.ValidationError{Field: "note name", Message: "must not be empty"},
			hint: "Pick another name",
		},
		{
			name: "permission",
			err:  fmt.Errorf("failed to trash %q: %w", "a", fserr.Classify("trash", "/notes/a.md", fs.ErrPermission)),
			hint: "can be read and written",
		},
		{
			name: "not found",
			err:  fserr.Classify("stat", "/notes/gone.md", fs.ErrNotExist),
			hint: "moved or deleted",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			ReportError(&out, tc.err)

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			if len(lines) != 2 {
				t.Fatalf("expected error and hint, got %q", out.String())
			}
			if lines[0] != "Error: "+tc.err.Error() {
				t.Fatalf("first line = %q", lines[0])
			}
			if !strings.Contains(lines[1], tc.hint) {
				t.Fatalf("hint = %q, want it to mention %q", lines[1], tc.hint)
			}
		})
	}
}

func TestReportErrorWithoutKnownKind(t *testing.T) {
	var out bytes.Buffer
	ReportError(&out, errors.New("boom"))
	if out.String() != "Error: boom\n" {
		t.Fatalf("output = %q", out.String())
	}

	out.Reset()
	ReportError(&out, nil)
	if out.Len() != 0 {
		t.Fatalf("expected no output for nil, got %q", out.String())
	}
}
