package cmd

import (
	"fmt"
	"io"

	"github.com/Paintersrp/sidenotes/internal/fserr"
)

// ReportError prints err for the user, followed by a hint that depends on
// the kind of failure.
func ReportError(w io.Writer, err error) {
	if err == nil {
		return
	}

	fmt.Fprintf(w, "Error: %v\n", err)
	switch {
	case fserr.IsValidation(err):
		fmt.Fprintln(w, "Nothing was changed. Pick another name and try again.")
	case fserr.IsPermission(err):
		fmt.Fprintln(w, "Check that the notes folder can be read and written by your user.")
	case fserr.IsNotFound(err):
		fmt.Fprintln(w, "The item may have been moved or deleted. Run 'sidenotes tree' to see the current notes.")
	}
}
