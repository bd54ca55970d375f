package results

import (
	"sync"
	"time"

	"github.com/five82/stories/internal/catalog"
)

// Snapshot represents the latest result set available to the UI.
type Snapshot struct {
	State
	URL         string // URL of the latest started cycle
	LastUpdated time.Time
	LastError   error // cause of the latest accepted failure
}

// Store coordinates dispatches to the result set. A zero Store is ready to
// use and holds the initial state.
type Store struct {
	mu       sync.RWMutex
	once     sync.Once
	snapshot Snapshot
}

// NewStore returns a store holding the initial state.
func NewStore() *Store {
	s := &Store{}
	s.ensureInit()
	return s
}

func (s *Store) ensureInit() {
	s.once.Do(func() {
		s.snapshot.State = Initial()
	})
}

// Dispatch runs a through the reducer and stores the result. An invalid
// action leaves the stored state untouched and returns ErrInvalidAction.
func (s *Store) Dispatch(a Action) error {
	s.ensureInit()
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Reduce(s.snapshot.State, a)
	if err != nil {
		return err
	}
	if Stale(s.snapshot.State, a) {
		return nil
	}
	s.snapshot.State = next

	switch act := a.(type) {
	case FetchStart:
		s.snapshot.URL = act.URL
	case FetchSuccess:
		s.snapshot.LastError = nil
		s.snapshot.LastUpdated = time.Now()
	case FetchFailure:
		s.snapshot.LastError = act.Err
		s.snapshot.LastUpdated = time.Now()
	}
	return nil
}

// State returns a copy of the current reducer state.
func (s *Store) State() State {
	return s.Snapshot().State
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.ensureInit()
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = cloneRecords(s.snapshot.Data)
	return snap
}

func cloneRecords(records []catalog.Record) []catalog.Record {
	dup := make([]catalog.Record, len(records))
	copy(dup, records)
	return dup
}
