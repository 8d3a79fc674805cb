package dataset

import (
	"sync"

	"github.com/aristath/gaffer/internal/domain"
)

// Store holds the currently loaded dataset and swaps it atomically on
// reload. Collaborators keep a reference to the store, not to a
// dataset, so a rescore always sees the freshest file without anyone
// re-wiring providers.
type Store struct {
	path string

	mu sync.RWMutex
	ds *Dataset
}

// Open loads the dataset file and wraps it in a store.
func Open(path string) (*Store, error) {
	ds, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, ds: ds}, nil
}

// Reload re-reads the file. The previous dataset stays current when
// the reload fails, so a truncated or mid-write file never takes down
// a running server.
func (s *Store) Reload() error {
	ds, err := Load(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.ds = ds
	s.mu.Unlock()
	return nil
}

// Current returns the active dataset snapshot.
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ds
}

// Path returns the file the store loads from.
func (s *Store) Path() string { return s.path }

// Players returns the active dataset's player pool.
func (s *Store) Players() []domain.Player {
	return s.Current().Players()
}

// Gameweek returns the active dataset's capture gameweek.
func (s *Store) Gameweek() int {
	return s.Current().Gameweek()
}

// TeamByName resolves a club on the active dataset.
func (s *Store) TeamByName(name string) (domain.Team, bool) {
	return s.Current().TeamByName(name)
}

// UpcomingFixtures returns a team's run on the active dataset.
func (s *Store) UpcomingFixtures(team domain.Team, lookahead int) []domain.Fixture {
	return s.Current().UpcomingFixtures(team, lookahead)
}
