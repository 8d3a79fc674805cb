package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// FixtureScorer calculates the fixture score: how much opportunity the
// upcoming run of games offers a player.
type FixtureScorer struct {
	fixtures  FixtureProvider
	lookahead int
}

// FixtureScore represents the result of fixture scoring
type FixtureScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewFixtureScorer creates a new fixture scorer
func NewFixtureScorer(fixtures FixtureProvider, lookahead int) *FixtureScorer {
	if lookahead <= 0 {
		lookahead = scoring.DefaultLookaheadGameweeks
	}
	return &FixtureScorer{fixtures: fixtures, lookahead: lookahead}
}

// Score calculates the fixture score for a player.
// Components:
// - Difficulty (50%): opponent difficulty inverted into opportunity
// - Venue (20%): home games help, away games hurt
// - Scheduling (20%): double gameweeks reward, blanks punish
// - Rotation (10%): chance the player misses games in the run
func (fs *FixtureScorer) Score(p domain.Player, team domain.Team) FixtureScore {
	fixtures := fs.fixtures.UpcomingFixtures(team, fs.lookahead)

	difficultyScore := difficultyScore(fixtures)
	venueScore := venueScore(fixtures)
	schedulingScore := schedulingScore(fixtures)
	rotationScore := fs.rotationScore(p, fixtures)

	total := difficultyScore*scoring.FixtureDifficultyWeight +
		venueScore*scoring.FixtureVenueWeight +
		schedulingScore*scoring.FixtureSchedulingWeight +
		rotationScore*scoring.FixtureRotationWeight

	return FixtureScore{
		Score: round3(clampScore(total)),
		Components: map[string]float64{
			"difficulty": round3(difficultyScore),
			"venue":      round3(venueScore),
			"scheduling": round3(schedulingScore),
			"rotation":   round3(rotationScore),
		},
	}
}

// difficultyScore converts fixture difficulty (1-5, hard is high) into
// opportunity (0-10, easy is high), nearer fixtures weighted more.
func difficultyScore(fixtures []domain.Fixture) float64 {
	if len(fixtures) == 0 {
		return 5.0
	}

	var weightedSum, weightSum float64
	for i, fixture := range fixtures {
		var opportunity float64
		switch d := fixture.Difficulty; {
		case d <= scoring.EasyFixtureThreshold:
			opportunity = 8.0 + (scoring.EasyFixtureThreshold - d)
		case d >= scoring.HardFixtureThreshold:
			opportunity = math.Max(0.0, 4.0-(d-scoring.HardFixtureThreshold))
		default:
			ratio := (d - scoring.EasyFixtureThreshold) / (scoring.HardFixtureThreshold - scoring.EasyFixtureThreshold)
			opportunity = 8.0 - ratio*4.0
		}

		weight := math.Pow(scoring.FixtureDecayFactor, float64(i))
		weightedSum += opportunity * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 5.0
	}
	return weightedSum / weightSum
}

func venueScore(fixtures []domain.Fixture) float64 {
	if len(fixtures) == 0 {
		return 5.0
	}

	var weightedSum, weightSum float64
	for i, fixture := range fixtures {
		venue := 5.0 + scoring.AwayPenalty
		if fixture.Home {
			venue = 5.0 + scoring.HomeAdvantage
		}

		weight := math.Pow(scoring.FixtureDecayFactor, float64(i))
		weightedSum += venue * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 5.0
	}
	return weightedSum / weightSum
}

func schedulingScore(fixtures []domain.Fixture) float64 {
	if len(fixtures) == 0 {
		return 5.0
	}

	var doubles, blanks float64
	for _, fixture := range fixtures {
		if fixture.Double {
			doubles++
		}
		if fixture.Blank {
			blanks++
		}
	}

	score := 5.0 + doubles*scoring.DoubleGameweekBonus + blanks*scoring.BlankGameweekPenalty
	return math.Max(0.0, math.Min(10.0, score))
}

// rotationScore inverts rotation risk into a score, with congestion in
// the upcoming run raising the risk.
func (fs *FixtureScorer) rotationScore(p domain.Player, fixtures []domain.Fixture) float64 {
	risk := rotationRiskRaw(p)

	playable := 0
	for _, fixture := range fixtures {
		if !fixture.Blank {
			playable++
		}
	}
	if playable >= scoring.CongestionFixtureCount {
		risk += 0.1
	}

	return (1.0 - clamp01(risk)) * 10.0
}
