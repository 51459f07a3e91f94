package search

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Session debounces search-as-you-type input. Each Type call bumps a
// sequence number; only the search started for the latest sequence may
// deliver its results.
type Session struct {
	searcher Searcher
	delay    time.Duration
	deliver  func(Results)
	log      *logrus.Entry

	mu     sync.Mutex
	seq    uint64
	timer  *time.Timer
	cancel context.CancelFunc
	closed bool

	deliverMu sync.Mutex
}

// NewSession builds a session that calls deliver from a timer goroutine.
// deliver must not call Close.
func NewSession(searcher Searcher, delay time.Duration, deliver func(Results), logger *logrus.Entry) *Session {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Session{
		searcher: searcher,
		delay:    delay,
		deliver:  deliver,
		log:      logger.WithField("component", "search-session"),
	}
}

// Type schedules a search for term after the debounce delay, cancelling any
// pending search and abandoning one already in flight.
func (s *Session) Type(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.seq++
	seq := s.seq

	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.timer = time.AfterFunc(s.delay, func() {
		s.run(seq, term)
	})
}

// Close stops the pending timer and cancels any running search. Results are
// never delivered after Close returns.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	// Wait out a delivery that already passed its freshness check.
	s.deliverMu.Lock()
	s.deliverMu.Unlock()
}

func (s *Session) current(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && seq == s.seq
}

func (s *Session) run(seq uint64, term string) {
	s.mu.Lock()
	if s.closed || seq != s.seq {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	started := time.Now()
	items, err := s.searcher.Search(ctx, term)

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	if !s.current(seq) {
		s.log.WithFields(logrus.Fields{"query": term, "seq": seq}).Debug("dropping stale search results")
		return
	}

	s.log.WithFields(logrus.Fields{
		"query":   term,
		"seq":     seq,
		"results": len(items),
		"elapsed": time.Since(started).String(),
	}).Debug("search finished")

	if s.deliver != nil {
		s.deliver(Results{Seq: seq, Query: term, Items: items, Err: err})
	}
}
