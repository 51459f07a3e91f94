//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_revealer.go -package=mocks github.com/Paintersrp/sidenotes/internal/reveal Revealer

// Package reveal drives a tree view to show a note: every ancestor folder is
// expanded, then the note itself is selected and focused.
package reveal

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

// Options mirrors the tree view reveal flags.
type Options struct {
	Expand bool
	Select bool
	Focus  bool
}

// Revealer is implemented by whatever renders the tree.
type Revealer interface {
	Reveal(ctx context.Context, e entry.Entry, opts Options) error
}

// Finder resolves absolute paths to tree entries and records the selection.
type Finder interface {
	Root() string
	FindByPath(path string) (entry.Entry, bool, error)
	SetSelected(e entry.Entry)
}

type Navigator struct {
	tree Finder
	ui   Revealer
	log  *logrus.Entry
}

func NewNavigator(tree Finder, ui Revealer, logger *logrus.Entry) *Navigator {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Navigator{tree: tree, ui: ui, log: logger.WithField("component", "reveal")}
}

// Reveal expands every folder between the root and target, then selects and
// focuses target. It is best effort: failures are logged and reported as
// false, never returned.
func (n *Navigator) Reveal(ctx context.Context, target string) bool {
	log := n.log.WithField("target", target)

	prefixes, err := pathutil.Prefixes(n.tree.Root(), target)
	if err != nil || len(prefixes) == 0 {
		log.Warn("reveal target is not inside the notes root")
		return false
	}

	last := len(prefixes) - 1
	for i, prefix := range prefixes {
		if err := ctx.Err(); err != nil {
			log.WithError(err).Debug("reveal cancelled")
			return false
		}

		e, ok, err := n.tree.FindByPath(prefix)
		if err != nil {
			log.WithError(err).WithField("segment", prefix).Warn("could not resolve reveal segment")
			return false
		}
		if !ok {
			log.WithField("segment", prefix).Warn("reveal segment no longer exists")
			return false
		}

		opts := Options{Expand: true}
		if i == last {
			opts.Select = true
			opts.Focus = true
		}

		if err := n.ui.Reveal(ctx, e, opts); err != nil {
			log.WithError(err).WithField("segment", prefix).Warn("tree view rejected reveal")
			return false
		}

		if i == last {
			n.tree.SetSelected(e)
		}
	}

	return true
}
