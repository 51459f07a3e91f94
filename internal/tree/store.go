// Package tree materializes a notes directory as a lazily listed tree of
// folders and notes, and tracks the single selected entry.
package tree

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/Paintersrp/sidenotes/internal/cache"
	"github.com/Paintersrp/sidenotes/internal/constants"
	"github.com/Paintersrp/sidenotes/internal/entry"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/pathutil"
)

const listingCacheSize = 256

// Change describes a "tree changed" notification. A zero Scope asks
// listeners to re-fetch everything from the root.
type Change struct {
	Scope entry.Entry
}

func (c Change) Full() bool { return c.Scope.IsZero() }

type Options struct {
	Root       string
	NoteExt    string
	ShowHidden bool
	// ListingTTL enables a short-lived listing cache when positive. Refresh
	// purges it; RefreshScoped drops the scoped folder only.
	ListingTTL time.Duration
}

type listingKey struct {
	dir    string
	hidden bool
}

type listener[T any] struct {
	id int
	fn func(T)
}

// Store is the source of truth for the notes tree. Listings are never kept
// beyond the optional cache; every Children call reads the directory.
type Store struct {
	root string
	ext  string

	mu         sync.RWMutex
	selected   entry.Entry
	showHidden bool
	nextID     int
	onTree     []listener[Change]
	onSelect   []listener[entry.Entry]

	changes    fifo[Change]
	selections fifo[entry.Entry]

	listings *cache.LRUCache[listingKey, []entry.Entry]
	readDir  func(string) ([]fs.DirEntry, error)
}

func NewStore(opts Options) (*Store, error) {
	if strings.TrimSpace(opts.Root) == "" {
		return nil, errors.New("notes root cannot be empty")
	}

	root, err := filepath.Abs(pathutil.NormalizePath(opts.Root))
	if err != nil {
		return nil, err
	}

	ext := opts.NoteExt
	if ext == "" {
		ext = constants.NoteExt
	}

	return &Store{
		root:       root,
		ext:        ext,
		showHidden: opts.ShowHidden,
		listings:   cache.NewLRUCache[listingKey, []entry.Entry](listingCacheSize, opts.ListingTTL),
		readDir:    os.ReadDir,
	}, nil
}

func (s *Store) Root() string    { return s.root }
func (s *Store) NoteExt() string { return s.ext }

func (s *Store) ShowHidden() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showHidden
}

// SetShowHidden toggles the hidden-entry filter and refreshes when the value
// changes.
func (s *Store) SetShowHidden(show bool) {
	s.mu.Lock()
	if s.showHidden == show {
		s.mu.Unlock()
		return
	}
	s.showHidden = show
	s.mu.Unlock()

	s.Refresh()
}

// Children lists the entries directly inside parent, or inside the root when
// parent is the zero entry. Folders come first, then notes, each group in
// lexicographic order. Notes have no children.
func (s *Store) Children(parent entry.Entry) ([]entry.Entry, error) {
	dir := s.root
	if !parent.IsZero() {
		if parent.IsNote() {
			return nil, nil
		}
		dir = parent.Path()
	}
	return s.list(dir)
}

func (s *Store) list(dir string) ([]entry.Entry, error) {
	hidden := s.ShowHidden()
	key := listingKey{dir: dir, hidden: hidden}
	if cached, ok := s.listings.Get(key); ok {
		return slices.Clone(cached), nil
	}

	dirents, err := s.readDir(dir)
	if err != nil {
		return nil, fserr.Classify("list", dir, err)
	}

	slices.SortStableFunc(dirents, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	visible := lo.Filter(dirents, func(d fs.DirEntry, _ int) bool {
		return hidden || !pathutil.IsHidden(d.Name())
	})

	folders := lo.Map(
		lo.Filter(visible, func(d fs.DirEntry, _ int) bool { return d.IsDir() }),
		func(d fs.DirEntry, _ int) entry.Entry {
			return entry.NewFolder(filepath.Join(dir, d.Name()))
		},
	)

	notes := lo.Map(
		lo.Filter(visible, func(d fs.DirEntry, _ int) bool {
			return d.Type().IsRegular() && pathutil.HasExt(d.Name(), s.ext)
		}),
		func(d fs.DirEntry, _ int) entry.Entry {
			return entry.NewNote(filepath.Join(dir, d.Name()), s.ext)
		},
	)

	items := append(folders, notes...)
	s.listings.Put(key, slices.Clone(items))
	return items, nil
}

// Parent returns the folder containing e, or false when e sits directly in
// the root.
func (s *Store) Parent(e entry.Entry) (entry.Entry, bool) {
	if e.IsZero() {
		return entry.Entry{}, false
	}

	parent := filepath.Dir(e.Path())
	if parent == s.root || !pathutil.Within(s.root, parent) {
		return entry.Entry{}, false
	}
	return entry.NewFolder(parent), true
}

// FindByPath walks the tree from the root, one listing per path segment, and
// returns the entry whose absolute path equals path. A segment that is
// missing, hidden, or whose directory vanished yields false.
func (s *Store) FindByPath(path string) (entry.Entry, bool, error) {
	segments, err := pathutil.Segments(s.root, path)
	if err != nil || len(segments) == 0 {
		return entry.Entry{}, false, nil
	}

	current := entry.Entry{}
	currentPath := s.root
	for _, segment := range segments {
		currentPath = filepath.Join(currentPath, segment)

		children, err := s.Children(current)
		if err != nil {
			if fserr.IsNotFound(err) {
				return entry.Entry{}, false, nil
			}
			return entry.Entry{}, false, err
		}

		want := currentPath
		next, ok := lo.Find(children, func(c entry.Entry) bool {
			return c.Path() == want
		})
		if !ok {
			return entry.Entry{}, false, nil
		}
		current = next
	}

	return current, true, nil
}

func (s *Store) Selected() (entry.Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected, !s.selected.IsZero()
}

// SetSelected records e as the selection. Listeners only run when the
// selection actually changed, and they see changes in the order they were
// applied. Without concurrent callers they run before SetSelected returns.
func (s *Store) SetSelected(e entry.Entry) {
	s.selections.push(e, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.selected.Equal(e) {
			return false
		}
		s.selected = e
		return true
	}, func(next entry.Entry) {
		s.mu.RLock()
		listeners := slices.Clone(s.onSelect)
		s.mu.RUnlock()
		for _, l := range listeners {
			l.fn(next)
		}
	})
}

func (s *Store) ClearSelection() {
	s.SetSelected(entry.Entry{})
}

// Refresh tells every tree listener to re-fetch from the root.
func (s *Store) Refresh() {
	s.listings.Purge()
	s.emit(Change{})
}

// RefreshScoped tells tree listeners that only the children of scope changed.
// Only the cached listings of scope are dropped.
func (s *Store) RefreshScoped(scope entry.Entry) {
	if scope.IsZero() || !scope.IsFolder() {
		s.Refresh()
		return
	}
	s.listings.Remove(listingKey{dir: scope.Path(), hidden: false})
	s.listings.Remove(listingKey{dir: scope.Path(), hidden: true})
	s.emit(Change{Scope: scope})
}

// OnTreeChanged registers fn for tree change notifications and returns a
// function that removes it.
func (s *Store) OnTreeChanged(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.onTree = append(s.onTree, listener[Change]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.onTree = slices.DeleteFunc(s.onTree, func(l listener[Change]) bool { return l.id == id })
	}
}

// OnSelectionChanged registers fn for selection change notifications and
// returns a function that removes it.
func (s *Store) OnSelectionChanged(fn func(entry.Entry)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.onSelect = append(s.onSelect, listener[entry.Entry]{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.onSelect = slices.DeleteFunc(s.onSelect, func(l listener[entry.Entry]) bool { return l.id == id })
	}
}

// emit delivers c to tree listeners in FIFO order. Listeners may call
// Refresh re-entrantly.
func (s *Store) emit(c Change) {
	s.changes.push(c, nil, func(next Change) {
		s.mu.RLock()
		listeners := slices.Clone(s.onTree)
		s.mu.RUnlock()
		for _, l := range listeners {
			l.fn(next)
		}
	})
}
