package scorers

import (
	"math"
	"strings"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// MomentumScorer calculates the team momentum score: how the player's
// club is trending across results, goals, defence, and expectations.
type MomentumScorer struct{}

// MomentumScore represents the result of team momentum scoring
type MomentumScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewMomentumScorer creates a new team momentum scorer
func NewMomentumScorer() *MomentumScorer {
	return &MomentumScorer{}
}

// Score calculates the team momentum score.
// Components:
// - Results (40%): decay-weighted recent results, points-rate fallback
// - Attacking (30%): goals scored per game
// - Defensive (20%): goals conceded per game, inverted
// - Expected (10%): squad strength blended with league position
func (ms *MomentumScorer) Score(team domain.Team) MomentumScore {
	resultsScore := ms.resultsScore(team)
	attackingScore := ms.attackingScore(team)
	defensiveScore := ms.defensiveScore(team)
	expectedScore := ms.expectedScore(team)

	total := resultsScore*scoring.MomentumResultsWeight +
		attackingScore*scoring.MomentumAttackingWeight +
		defensiveScore*scoring.MomentumDefensiveWeight +
		expectedScore*scoring.MomentumExpectedWeight

	return MomentumScore{
		Score: round3(clampScore(total)),
		Components: map[string]float64{
			"results":   round3(resultsScore),
			"attacking": round3(attackingScore),
			"defensive": round3(defensiveScore),
			"expected":  round3(expectedScore),
		},
	}
}

func (ms *MomentumScorer) resultsScore(team domain.Team) float64 {
	var formScore float64
	if team.Form != "" {
		formScore = parseFormString(team.Form)
	} else {
		// No result string available, fall back to points per game.
		ppg := team.PointsPerGame()
		switch {
		case ppg >= scoring.ExcellentTeamPPG:
			formScore = 10.0
		case ppg >= scoring.GoodTeamPPG:
			ratio := (ppg - scoring.GoodTeamPPG) / (scoring.ExcellentTeamPPG - scoring.GoodTeamPPG)
			formScore = 7.0 + ratio*3.0
		case ppg >= scoring.PoorTeamPPG:
			ratio := (ppg - scoring.PoorTeamPPG) / (scoring.GoodTeamPPG - scoring.PoorTeamPPG)
			formScore = 4.0 + ratio*3.0
		default:
			formScore = math.Min(4.0, ppg/scoring.PoorTeamPPG*4.0)
		}
	}

	return math.Max(0.0, math.Min(10.0, formScore))
}

// parseFormString turns a result string like "WWDLL" (most recent
// first) into a 0-10 momentum score, recent games weighted more.
func parseFormString(form string) float64 {
	if form == "" {
		return 5.0
	}

	formPoints := map[rune]float64{'W': 3, 'D': 1, 'L': 0}

	var totalScore, totalWeight float64
	for i, result := range strings.ToUpper(form) {
		if i >= scoring.MomentumLookbackGames {
			break
		}
		weight := math.Pow(scoring.MomentumDecayFactor, float64(i))
		totalScore += formPoints[result] * weight
		totalWeight += weight
	}
	if totalWeight == 0 {
		return 5.0
	}

	// Three points per game maps to a perfect 10.
	avgPoints := totalScore / totalWeight
	return math.Min(10.0, avgPoints/3.0*10.0)
}

func (ms *MomentumScorer) attackingScore(team domain.Team) float64 {
	if team.Played == 0 {
		return 5.0
	}

	goalsPerGame := team.GoalsForPerGame()
	switch {
	case goalsPerGame >= 2.5:
		return 10.0
	case goalsPerGame >= 1.5:
		return 7.0 + (goalsPerGame-1.5)/1.0*3.0
	case goalsPerGame >= 1.0:
		return 4.0 + (goalsPerGame-1.0)/0.5*3.0
	case goalsPerGame >= 0.5:
		return 1.0 + (goalsPerGame-0.5)/0.5*3.0
	default:
		return goalsPerGame / 0.5 * 1.0
	}
}

func (ms *MomentumScorer) defensiveScore(team domain.Team) float64 {
	if team.Played == 0 {
		return 5.0
	}

	concededPerGame := team.GoalsAgainstPerGame()
	switch {
	case concededPerGame <= 0.5:
		return 10.0
	case concededPerGame <= 1.0:
		return 10.0 - (concededPerGame-0.5)/0.5*3.0
	case concededPerGame <= 1.5:
		return 7.0 - (concededPerGame-1.0)/0.5*3.0
	case concededPerGame <= 2.0:
		return 4.0 - (concededPerGame-1.5)/0.5*4.0
	default:
		return 0.0
	}
}

// expectedScore blends underlying squad strength with league position
// as a forward-looking sanity check on the momentum read.
func (ms *MomentumScorer) expectedScore(team domain.Team) float64 {
	strengthScore := team.Strength / 10.0

	var positionScore float64
	switch pos := float64(team.LeaguePosition); {
	case pos <= 4:
		positionScore = 10.0
	case pos <= 8:
		positionScore = 8.0 - (pos-4)*0.5
	case pos <= 14:
		positionScore = 6.0 - (pos-8)*0.33
	default:
		positionScore = math.Max(0.0, 4.0-(pos-14)*0.67)
	}

	expected := strengthScore*scoring.ExpectedStrengthWeight + positionScore*scoring.ExpectedPositionWeight
	return math.Min(10.0, expected)
}
