package search

import (
	"context"

	"github.com/Paintersrp/sidenotes/internal/entry"
)

// Lister is the part of the tree store the engine walks.
type Lister interface {
	Root() string
	Children(parent entry.Entry) ([]entry.Entry, error)
}

// Searcher runs a single traversal for a term.
type Searcher interface {
	Search(ctx context.Context, term string) ([]Result, error)
}

// Result captures a note matched by name or by content.
type Result struct {
	Path string
	// Name is the note's display name.
	Name string
	// Rel is the path relative to the notes root, with forward slashes.
	Rel              string
	MatchedOnContent bool
	// Hint is a human readable description of a content match.
	Hint string
	// Snippet holds the text surrounding the first content match.
	Snippet string
}

// Results is what a Session delivers once a debounced search completes.
type Results struct {
	Seq   uint64
	Query string
	Items []Result
	Err   error
}
