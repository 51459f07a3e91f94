package state

import (
	"sync"

	"github.com/Paintersrp/sidenotes/internal/config"
)

// Reloader follows config file changes for a long running command. Changes
// that can be applied in place are; anything else is queued on Reloads and
// the command rebuilds its state with Rebuild.
type Reloader struct {
	mu      sync.Mutex
	current *State
	reloads chan *config.Config
}

// NewReloader starts watching the config file of s. Watching is skipped when
// the file does not exist.
func NewReloader(s *State) *Reloader {
	r := &Reloader{
		current: s,
		reloads: make(chan *config.Config, 1),
	}
	s.Config.Watch(s.Home, r.onChange)
	return r
}

func (r *Reloader) State() *State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *Reloader) Reloads() <-chan *config.Config {
	return r.reloads
}

func (r *Reloader) onChange(next *config.Config, err error) {
	current := r.State()
	if err != nil {
		current.Logger.WithError(err).Warn("ignoring invalid config change")
		return
	}

	if !current.ApplyConfig(next) {
		current.Logger.Info("applied config change")
		return
	}

	select {
	case r.reloads <- next:
	default:
		// A reload is already queued; replace it with the newest config.
		select {
		case <-r.reloads:
		default:
		}
		r.reloads <- next
	}
}

// Rebuild closes the current state and replaces it with one built from next.
func (r *Reloader) Rebuild(next *config.Config) (*State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.current
	if err := old.Close(); err != nil {
		old.Logger.WithError(err).Warn("failed to close previous state")
	}

	if err := next.EnsureRoot(); err != nil {
		return nil, err
	}

	s, err := New(old.Home, next, old.Logger)
	if err != nil {
		return nil, err
	}
	s.Logger.WithField("root", s.Root).Info("notes root changed, state rebuilt")

	r.current = s
	return s, nil
}
