package courses

import (
	"context"
	"sync"
	"time"
)

// FetchFunc performs the remote query for a search.
type FetchFunc[T any] func(ctx context.Context, query string) ([]T, error)

// UpdateFunc is invoked with the result of the latest search. It is never
// called for a superseded query.
type UpdateFunc[T any] func(query string, results []T, err error)

// Searcher debounces keystroke-driven remote queries and guarantees that the
// last-started query wins: every issued query gets a monotonically
// increasing sequence number, and a response is applied only when its
// sequence is still the latest. Responses arriving out of order can
// therefore never overwrite newer results with stale data.
type Searcher[T any] struct {
	fetch    FetchFunc[T]
	onUpdate UpdateFunc[T]
	debounce time.Duration

	mu      sync.Mutex
	latest  uint64
	timer   *time.Timer
	query   string
	results []T
	err     error
}

// NewSearcher creates a searcher with the given debounce interval. A zero
// interval issues queries immediately, which single-shot CLI commands use.
func NewSearcher[T any](fetch FetchFunc[T], debounce time.Duration, onUpdate UpdateFunc[T]) *Searcher[T] {
	return &Searcher[T]{
		fetch:    fetch,
		onUpdate: onUpdate,
		debounce: debounce,
	}
}

// Search schedules a query. Each call supersedes any previous one: pending
// debounce timers are cancelled and in-flight responses for older queries
// are discarded when they arrive.
func (s *Searcher[T]) Search(ctx context.Context, query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	seq := s.latest

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}

	if s.debounce <= 0 {
		go s.issue(ctx, seq, query)
		return
	}

	s.timer = time.AfterFunc(s.debounce, func() {
		s.issue(ctx, seq, query)
	})
}

// Cancel discards any pending or in-flight query without starting a new
// one. Called when the search view is dismissed so a late response cannot
// be applied to state the user no longer sees.
func (s *Searcher[T]) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.query = ""
	s.results = nil
	s.err = nil
}

// issue performs the fetch and applies the result if still the latest.
func (s *Searcher[T]) issue(ctx context.Context, seq uint64, query string) {
	s.mu.Lock()
	if seq != s.latest {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	results, err := s.fetch(ctx, query)

	s.mu.Lock()
	if seq != s.latest {
		s.mu.Unlock()
		return
	}
	s.query = query
	s.results = results
	s.err = err
	s.mu.Unlock()

	if s.onUpdate != nil {
		s.onUpdate(query, results, err)
	}
}

// Results returns the query and results of the most recent applied search.
func (s *Searcher[T]) Results() (string, []T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query, s.results, s.err
}
