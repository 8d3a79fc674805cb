// Package dataset loads player, team and fixture collections from a
// local JSON file. The file is read once at startup or per rescore; the
// loaded dataset is immutable and safe for concurrent readers.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/aristath/gaffer/internal/domain"
)

// File is the on-disk layout of a dataset: flat collections plus the
// season context they were captured in. Fixtures are keyed by team name
// and hold each club's upcoming run.
type File struct {
	Season   string                      `json:"season,omitempty"`
	Gameweek int                         `json:"gameweek,omitempty"`
	Players  []domain.Player             `json:"players"`
	Teams    []domain.Team               `json:"teams,omitempty"`
	Fixtures map[string][]domain.Fixture `json:"fixtures,omitempty"`
}

// Dataset is a validated, indexed snapshot of one data file.
type Dataset struct {
	season   string
	gameweek int
	players  []domain.Player
	byID     map[int]domain.Player
	teams    []domain.Team
	byName   map[string]domain.Team
	fixtures map[string][]domain.Fixture
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var file File
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", path, err)
	}

	return New(file)
}

// New validates raw collections and builds the indexed dataset.
// Malformed player or team rows fail loading outright: a bad data file
// should stop startup, not surface as odd scores later.
func New(file File) (*Dataset, error) {
	if len(file.Players) == 0 {
		return nil, fmt.Errorf("dataset has no players")
	}

	byID := make(map[int]domain.Player, len(file.Players))
	for _, p := range file.Players {
		if p.ID <= 0 {
			return nil, fmt.Errorf("player %q: id must be positive, got %d", p.Name, p.ID)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("player %d: name is required", p.ID)
		}
		if !p.Position.Valid() {
			return nil, fmt.Errorf("player %q: unknown position %q", p.Name, p.Position)
		}
		if p.Price <= 0 {
			return nil, fmt.Errorf("player %q: price must be positive, got %.1f", p.Name, p.Price)
		}
		if _, exists := byID[p.ID]; exists {
			return nil, fmt.Errorf("duplicate player id %d", p.ID)
		}
		byID[p.ID] = p
	}

	byName := make(map[string]domain.Team, len(file.Teams))
	for _, t := range file.Teams {
		if t.Name == "" {
			return nil, fmt.Errorf("team %d: name is required", t.ID)
		}
		if _, exists := byName[t.Name]; exists {
			return nil, fmt.Errorf("duplicate team name %q", t.Name)
		}
		byName[t.Name] = t
	}

	// Short names resolve to the same record; a short name never
	// shadows a full one.
	for _, t := range file.Teams {
		if t.ShortName == "" {
			continue
		}
		if _, exists := byName[t.ShortName]; !exists {
			byName[t.ShortName] = t
		}
	}

	fixtures := make(map[string][]domain.Fixture, len(file.Fixtures))
	for team, run := range file.Fixtures {
		sorted := append([]domain.Fixture(nil), run...)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Gameweek < sorted[j].Gameweek
		})
		fixtures[team] = sorted
	}

	return &Dataset{
		season:   file.Season,
		gameweek: file.Gameweek,
		players:  append([]domain.Player(nil), file.Players...),
		byID:     byID,
		teams:    append([]domain.Team(nil), file.Teams...),
		byName:   byName,
		fixtures: fixtures,
	}, nil
}

// Season returns the season label the file was captured in, e.g. "2025/26".
func (d *Dataset) Season() string { return d.season }

// Gameweek returns the gameweek the file was captured at, 0 when unset.
func (d *Dataset) Gameweek() int { return d.gameweek }

// Players returns a copy of the player pool in file order.
func (d *Dataset) Players() []domain.Player {
	return append([]domain.Player(nil), d.players...)
}

// Player looks a player up by id.
func (d *Dataset) Player(id int) (domain.Player, bool) {
	p, ok := d.byID[id]
	return p, ok
}

// Teams returns a copy of the team records in file order.
func (d *Dataset) Teams() []domain.Team {
	return append([]domain.Team(nil), d.teams...)
}

// TeamByName resolves a club by full or short name.
func (d *Dataset) TeamByName(name string) (domain.Team, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// UpcomingFixtures returns up to lookahead fixtures for a team, nearest
// gameweek first. Teams without a fixture run in the file get none.
func (d *Dataset) UpcomingFixtures(team domain.Team, lookahead int) []domain.Fixture {
	run := d.fixtures[team.Name]
	if lookahead > 0 && len(run) > lookahead {
		run = run[:lookahead]
	}
	return append([]domain.Fixture(nil), run...)
}
