package state

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/sidenotes/internal/config"
	"github.com/Paintersrp/sidenotes/internal/fserr"
	"github.com/Paintersrp/sidenotes/internal/handler"
	"github.com/Paintersrp/sidenotes/internal/reveal"
	"github.com/Paintersrp/sidenotes/internal/search"
	"github.com/Paintersrp/sidenotes/internal/tree"
)

// State wires the tree store and its collaborators for one notes root.
// Changing the root means building a new State.
type State struct {
	Config  *config.Config
	Home    string
	Root    string
	Logger  *logrus.Entry
	Store   *tree.Store
	Search  *search.Engine
	Handler *handler.FileHandler
	Watcher *RootWatcher
}

func NewState(cfgFile string) (*State, error) {
	home, err := GetHomeDir()
	if err != nil {
		return nil, err
	}

	cfg, err := config.Load(home, cfgFile)
	if err != nil {
		return nil, err
	}

	return New(home, cfg, cfg.NewLogger(os.Stderr))
}

// New builds a State from an already loaded configuration.
func New(home string, cfg *config.Config, logger *logrus.Entry) (*State, error) {
	store, err := tree.NewStore(tree.Options{
		Root:       cfg.RootFolder,
		NoteExt:    cfg.NoteExtension,
		ShowHidden: cfg.ShowHidden,
		ListingTTL: cfg.ListingTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tree store: %w", err)
	}

	return &State{
		Config:  cfg,
		Home:    home,
		Root:    store.Root(),
		Logger:  logger,
		Store:   store,
		Search:  search.NewEngine(store, cfg.SearchLimit, logger),
		Handler: handler.NewFileHandler(store, logger),
	}, nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

// StartWatcher creates the root watcher on first use. The caller drives it
// with Run.
func (s *State) StartWatcher() (*RootWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	coalescer := NewCoalescer(s.Config.CoalesceWindow, s.refreshFromDisk, s.Logger)
	watcher, err := NewRootWatcher(s.Root, s.Config.NoteExtension, coalescer, s.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create root watcher: %w", err)
	}

	s.Watcher = watcher
	return watcher, nil
}

// refreshFromDisk re-syncs the store after a burst of changes. A burst
// confined to one visible folder below the root refreshes only that folder.
func (s *State) refreshFromDisk(scope string) error {
	if _, err := os.Stat(s.Root); err != nil {
		return fserr.Classify("stat", s.Root, err)
	}

	if scope == "" || scope == s.Root {
		s.Store.Refresh()
		return nil
	}

	folder, ok, err := s.Store.FindByPath(scope)
	if err != nil || !ok || !folder.IsFolder() {
		s.Store.Refresh()
		return nil
	}
	s.Store.RefreshScoped(folder)
	return nil
}

// NewSession starts a debounced search session delivering to deliver.
func (s *State) NewSession(deliver func(search.Results)) *search.Session {
	return search.NewSession(s.Search, s.Config.SearchDebounce, deliver, s.Logger)
}

func (s *State) Navigator(ui reveal.Revealer) *reveal.Navigator {
	return reveal.NewNavigator(s.Store, ui, s.Logger)
}

// ApplyConfig applies a changed configuration. Settings that only affect
// presentation are applied in place; it reports true when the change needs a
// fresh State.
func (s *State) ApplyConfig(next *config.Config) bool {
	current := s.Config
	if next.RootFolder != current.RootFolder ||
		next.NoteExtension != current.NoteExtension ||
		next.SearchLimit != current.SearchLimit ||
		next.SearchDebounce != current.SearchDebounce ||
		next.CoalesceWindow != current.CoalesceWindow ||
		next.ListingTTL != current.ListingTTL {
		return true
	}

	if level, err := logrus.ParseLevel(next.LogLevel); err == nil {
		s.Logger.Logger.SetLevel(level)
	}
	s.Store.SetShowHidden(next.ShowHidden)
	return false
}

// Close releases resources associated with the state, including the root
// watcher.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
