package scorers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

type recordingFixtures struct {
	fixtures  []domain.Fixture
	lookahead int
}

func (s *recordingFixtures) UpcomingFixtures(team domain.Team, lookahead int) []domain.Fixture {
	s.lookahead = lookahead
	return s.fixtures
}

func uniformFixtures(n int, difficulty float64, home bool) []domain.Fixture {
	fixtures := make([]domain.Fixture, n)
	for i := range fixtures {
		fixtures[i] = domain.Fixture{Gameweek: i + 1, Difficulty: difficulty, Home: home}
	}
	return fixtures
}

func TestNewFixtureScorer_DefaultsLookahead(t *testing.T) {
	stub := &recordingFixtures{}

	NewFixtureScorer(stub, 0).Score(domain.Player{ID: 1}, domain.Team{ID: 1})
	assert.Equal(t, scoring.DefaultLookaheadGameweeks, stub.lookahead)

	NewFixtureScorer(stub, 8).Score(domain.Player{ID: 1}, domain.Team{ID: 1})
	assert.Equal(t, 8, stub.lookahead)
}

func TestDifficultyScore_Bands(t *testing.T) {
	tests := []struct {
		description string
		difficulty  float64
		want        float64
	}{
		{"easy fixtures open opportunity", 2.0, 8.5}, // 8 + (2.5-2.0)
		{"band midpoint interpolates", 3.25, 6.0},
		{"hard threshold", 4.0, 4.0},
		{"brutal run", 5.0, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			score := difficultyScore(uniformFixtures(5, tt.difficulty, true))
			assert.InDelta(t, tt.want, score, 1e-3)
		})
	}

	assert.InDelta(t, 5.0, difficultyScore(nil), 1e-9, "no fixtures is neutral")
}

func TestDifficultyScore_WeightsNearFixturesMore(t *testing.T) {
	easyFirst := difficultyScore([]domain.Fixture{
		{Difficulty: 2.0}, {Difficulty: 5.0},
	})
	hardFirst := difficultyScore([]domain.Fixture{
		{Difficulty: 5.0}, {Difficulty: 2.0},
	})

	assert.Greater(t, easyFirst, hardFirst,
		"an easy opener must beat the same run in reverse")
}

func TestVenueScore(t *testing.T) {
	assert.InDelta(t, 5.5, venueScore(uniformFixtures(5, 3.0, true)), 1e-3)
	assert.InDelta(t, 4.7, venueScore(uniformFixtures(5, 3.0, false)), 1e-3)
	assert.InDelta(t, 5.0, venueScore(nil), 1e-9)

	// Home opener then away: (5.5 + 4.7*0.9) / 1.9
	mixed := venueScore([]domain.Fixture{{Home: true}, {Home: false}})
	assert.InDelta(t, 5.121, mixed, 1e-3)
}

func TestSchedulingScore(t *testing.T) {
	tests := []struct {
		description string
		fixtures    []domain.Fixture
		want        float64
	}{
		{"plain run is neutral", uniformFixtures(5, 3.0, true), 5.0},
		{"one double gameweek rewards", []domain.Fixture{{Double: true}, {}}, 7.0},
		{"doubles cap at ten", []domain.Fixture{{Double: true}, {Double: true}, {Double: true}}, 10.0},
		{"one blank punishes hard", []domain.Fixture{{Blank: true}, {}}, 0.0},
		{"double and blank offset partially", []domain.Fixture{{Double: true}, {Blank: true}}, 2.0},
		{"empty run is neutral", nil, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.InDelta(t, tt.want, schedulingScore(tt.fixtures), 1e-9)
		})
	}
}

func TestFixtureScorer_DreamRun(t *testing.T) {
	fixtures := uniformFixtures(5, 2.0, true)
	fixtures[2].Double = true
	fs := NewFixtureScorer(&recordingFixtures{fixtures: fixtures}, 5)

	// Steady forward: baseline 0.25 rotation risk plus the congestion
	// bump for five playable games leaves rotation at 6.5.
	score := fs.Score(domain.Player{
		ID: 1, Position: domain.Forward,
		TotalPoints: 40, GamesPlayed: 10, SelectedByPercent: 30.0,
	}, domain.Team{ID: 1})

	assert.InDelta(t, 8.5, score.Components["difficulty"], 1e-3)
	assert.InDelta(t, 5.5, score.Components["venue"], 1e-3)
	assert.InDelta(t, 7.0, score.Components["scheduling"], 1e-3)
	assert.InDelta(t, 6.5, score.Components["rotation"], 1e-3)
	assert.InDelta(t, 7.4, score.Score, 1e-3)
}

func TestFixtureScorer_NightmareRun(t *testing.T) {
	fixtures := uniformFixtures(5, 5.0, false)
	fixtures[4].Blank = true
	fs := NewFixtureScorer(&recordingFixtures{fixtures: fixtures}, 5)

	score := fs.Score(domain.Player{
		ID: 2, Position: domain.Midfielder,
		TotalPoints: 20, GamesPlayed: 10, SelectedByPercent: 5.0,
	}, domain.Team{ID: 2})

	assert.InDelta(t, 3.0, score.Components["difficulty"], 1e-3)
	assert.InDelta(t, 4.7, score.Components["venue"], 1e-3)
	assert.InDelta(t, 0.0, score.Components["scheduling"], 1e-3)
	assert.InDelta(t, 3.5, score.Components["rotation"], 1e-3)
	assert.InDelta(t, 2.79, score.Score, 1e-3)
}

func TestFixtureScorer_NoFixtureDataIsNeutral(t *testing.T) {
	fs := NewFixtureScorer(&recordingFixtures{}, 5)

	score := fs.Score(domain.Player{
		ID: 1, Position: domain.Forward,
		TotalPoints: 40, GamesPlayed: 10, SelectedByPercent: 30.0,
	}, domain.Team{ID: 1})

	assert.InDelta(t, 5.0, score.Components["difficulty"], 1e-3)
	assert.InDelta(t, 5.0, score.Components["venue"], 1e-3)
	assert.InDelta(t, 5.0, score.Components["scheduling"], 1e-3)
	// No playable fixtures, so no congestion bump on the 0.25 baseline
	assert.InDelta(t, 7.5, score.Components["rotation"], 1e-3)
	assert.InDelta(t, 5.25, score.Score, 1e-3)
}

func TestRotationScore_CongestionBumpsRisk(t *testing.T) {
	player := domain.Player{
		ID: 1, Position: domain.Forward,
		TotalPoints: 40, GamesPlayed: 10, SelectedByPercent: 30.0,
	}

	short := NewFixtureScorer(&recordingFixtures{fixtures: uniformFixtures(2, 3.0, true)}, 2)
	congested := NewFixtureScorer(&recordingFixtures{fixtures: uniformFixtures(5, 3.0, true)}, 5)

	shortScore := short.Score(player, domain.Team{ID: 1})
	congestedScore := congested.Score(player, domain.Team{ID: 1})

	assert.InDelta(t, 7.5, shortScore.Components["rotation"], 1e-3)
	assert.InDelta(t, 6.5, congestedScore.Components["rotation"], 1e-3)
}
