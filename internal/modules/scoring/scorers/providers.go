package scorers

import (
	"github.com/aristath/gaffer/internal/domain"
)

// HistoryProvider supplies a player's recent per-gameweek scores,
// oldest first, most recent last. Implementations return a fixed-size
// window (FormHistoryLength); players with fewer appearances than the
// window are padded with zeros.
type HistoryProvider interface {
	RecentHistory(p domain.Player) []float64
}

// FixtureProvider supplies the upcoming fixture run for a team,
// nearest gameweek first.
type FixtureProvider interface {
	UpcomingFixtures(team domain.Team, lookahead int) []domain.Fixture
}
