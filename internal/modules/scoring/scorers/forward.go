package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// ForwardScorer scores forwards on finishing, goal threat, assist
// potential, and bonus potential.
type ForwardScorer struct{}

// NewForwardScorer creates a new forward scorer
func NewForwardScorer() *ForwardScorer {
	return &ForwardScorer{}
}

// Score calculates the forward position score.
// Components:
// - Finishing (40%): season goals against the 12/20 good/excellent anchors
// - Goal threat (30%): threat index per game
// - Assists (20%): season assists
// - Bonus (10%): bonus points per game
func (fs *ForwardScorer) Score(p domain.Player) PositionScore {
	finishingScore := fs.finishingScore(p)
	goalThreatScore := fs.goalThreatScore(p)
	assistScore := fs.assistScore(p)
	bonusScore := fs.bonusScore(p)

	total := finishingScore*scoring.FWDFinishingWeight +
		goalThreatScore*scoring.FWDGoalThreatWeight +
		assistScore*scoring.FWDAssistWeight +
		bonusScore*scoring.FWDBonusWeight

	return PositionScore{
		Score: round3(total),
		Components: map[string]float64{
			"finishing":   round3(finishingScore),
			"goal_threat": round3(goalThreatScore),
			"assists":     round3(assistScore),
			"bonus":       round3(bonusScore),
		},
	}
}

func (fs *ForwardScorer) finishingScore(p domain.Player) float64 {
	return rampScore(float64(p.GoalsScored), scoring.FWDGoalsGood, scoring.FWDGoalsExcellent)
}

func (fs *ForwardScorer) goalThreatScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	threatPerGame := p.Threat / float64(p.GamesPlayed)
	return math.Min(10.0, threatPerGame/scoring.FWDThreatPerGameScale)
}

func (fs *ForwardScorer) assistScore(p domain.Player) float64 {
	return rampScore(float64(p.Assists), scoring.FWDAssistsGood, scoring.FWDAssistsExcellent)
}

func (fs *ForwardScorer) bonusScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	bonusPerGame := float64(p.Bonus) / float64(p.GamesPlayed)
	return math.Min(10.0, bonusPerGame*scoring.FWDBonusPerGameScale)
}
