package reveal

import (
	"context"
	"fmt"
	"io"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

// Printer is a Revealer that writes each request as a line of text.
type Printer struct {
	w    io.Writer
	root string
}

func NewPrinter(w io.Writer, root string) *Printer {
	return &Printer{w: w, root: root}
}

func (p *Printer) Reveal(_ context.Context, e entry.Entry, opts Options) error {
	rel, err := pathutil.RootRelative(p.root, e.Path())
	if err != nil {
		rel = e.Path()
	}

	action := "expand"
	if opts.Select {
		action = "select"
	}
	if opts.Focus {
		action += "+focus"
	}

	_, err = fmt.Fprintf(p.w, "%-13s %-6s %s\n", action, e.Kind(), rel)
	return err
}
