package search

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

// Engine scans the notes tree on every query. There is no persistent index;
// the result cap keeps interactive latency bounded instead.
type Engine struct {
	tree     Lister
	limit    int
	readFile func(string) ([]byte, error)
	log      *logrus.Entry
}

func NewEngine(tree Lister, limit int, logger *logrus.Entry) *Engine {
	if limit <= 0 {
		limit = constants.SearchLimit
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Engine{
		tree:     tree,
		limit:    limit,
		readFile: os.ReadFile,
		log:      logger.WithField("component", "search"),
	}
}

// Search returns at most the configured number of notes whose display name
// or content contains term, compared case-insensitively. Name matches never
// read the file. Enumeration stops as soon as the cap is reached.
//
// An empty term matches nothing.
func (e *Engine) Search(ctx context.Context, term string) ([]Result, error) {
	if term == "" {
		return nil, nil
	}

	lowered := strings.ToLower(term)
	results := make([]Result, 0, e.limit)

	err := e.walk(ctx, entry.Entry{}, func(note entry.Entry) (bool, error) {
		if strings.Contains(strings.ToLower(note.Name()), lowered) {
			results = append(results, e.result(note))
			return len(results) >= e.limit, nil
		}

		if err := ctx.Err(); err != nil {
			return true, err
		}

		data, err := e.readFile(note.Path())
		if err != nil {
			if fserr.IsNotFound(err) {
				e.log.WithField("path", note.Path()).Debug("note vanished during search")
				return false, nil
			}
			return true, fserr.Classify("read", note.Path(), err)
		}

		body := string(data)
		idx := strings.Index(strings.ToLower(body), lowered)
		if idx == -1 {
			return false, nil
		}

		res := e.result(note)
		res.MatchedOnContent = true
		res.Hint = fmt.Sprintf("contains %s", term)
		res.Snippet = bodySnippet(body, utf8.RuneCountInString(strings.ToLower(body)[:idx]), utf8.RuneCountInString(lowered))
		results = append(results, res)
		return len(results) >= e.limit, nil
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Notes enumerates every visible note under the root.
func (e *Engine) Notes(ctx context.Context) ([]entry.Entry, error) {
	var notes []entry.Entry
	err := e.walk(ctx, entry.Entry{}, func(note entry.Entry) (bool, error) {
		notes = append(notes, note)
		return false, nil
	})
	return notes, err
}

// walk visits notes depth-first. visit returns true to stop the traversal.
func (e *Engine) walk(ctx context.Context, parent entry.Entry, visit func(entry.Entry) (bool, error)) error {
	_, err := e.walkFrom(ctx, parent, visit)
	return err
}

func (e *Engine) walkFrom(ctx context.Context, parent entry.Entry, visit func(entry.Entry) (bool, error)) (bool, error) {
	children, err := e.tree.Children(parent)
	if err != nil {
		if fserr.IsNotFound(err) && !parent.IsZero() {
			e.log.WithField("path", parent.Path()).Debug("folder vanished during search")
			return false, nil
		}
		return true, err
	}

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return true, err
		}

		var (
			stop bool
			err  error
		)
		switch child.Kind() {
		case entry.KindFolder:
			stop, err = e.walkFrom(ctx, child, visit)
		case entry.KindNote:
			stop, err = visit(child)
		}
		if stop || err != nil {
			return true, err
		}
	}

	return false, nil
}

func (e *Engine) result(note entry.Entry) Result {
	rel, err := pathutil.RootRelative(e.tree.Root(), note.Path())
	if err != nil {
		rel = note.Path()
	}
	return Result{Path: note.Path(), Name: note.Name(), Rel: rel}
}

func bodySnippet(body string, index, termLen int) string {
	if termLen <= 0 {
		termLen = 1
	}

	runes := []rune(body)
	start := index
	end := index + termLen
	if start < 0 {
		start = 0
	}
	if end > len(runes) {
		end = len(runes)
	}

	const window = 40
	snippetStart := max(0, start-window)
	snippetEnd := min(len(runes), end+window)

	snippet := string(runes[snippetStart:snippetEnd])
	snippet = strings.Join(strings.Fields(snippet), " ")
	if snippetStart > 0 {
		snippet = "…" + snippet
	}
	if snippetEnd < len(runes) {
		snippet = snippet + "…"
	}
	return snippet
}
