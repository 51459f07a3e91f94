package fzf

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/muesli/termenv"

	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

// ErrNoSelection is returned when the picker is closed without a choice.
var ErrNoSelection = fmt.Errorf("no note selected")

// FuzzyFinder lets the user pick one note out of a list.
type FuzzyFinder struct {
	root   string
	Header string
	notes  []entry.Entry
}

func NewFuzzyFinder(root, header string, notes []entry.Entry) *FuzzyFinder {
	return &FuzzyFinder{root: root, Header: header, notes: notes}
}

func (f *FuzzyFinder) Run(query string) (entry.Entry, error) {
	if len(f.notes) == 0 {
		return entry.Entry{}, fmt.Errorf("no notes under %s", f.root)
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.notes, f.label, options...)
	if err != nil {
		if err == fuzzyfinder.ErrAbort {
			return entry.Entry{}, ErrNoSelection
		}
		return entry.Entry{}, fmt.Errorf("error selecting note: %w", err)
	}

	return f.notes[idx], nil
}

func (f *FuzzyFinder) label(i int) string {
	rel, err := pathutil.RootRelative(f.root, f.notes[i].Path())
	if err != nil {
		return f.notes[i].Name()
	}
	return rel
}

func (f *FuzzyFinder) renderPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := os.ReadFile(f.notes[i].Path())
	if err != nil {
		return "Error reading note"
	}

	markdown, err := RenderMarkdown(string(content), w, termenv.ANSI256)
	if err != nil {
		return "Error rendering markdown"
	}
	return markdown
}

// RenderMarkdown renders a note for the terminal.
func RenderMarkdown(content string, width int, profile termenv.Profile) (string, error) {
	if width <= 0 || width > 100 {
		width = 100
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(profile),
	)
	if err != nil {
		return "", err
	}

	return r.Render(content)
}
