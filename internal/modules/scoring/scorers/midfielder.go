package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// MidfielderScorer scores midfielders on goal threat, creativity,
// defensive contribution, and bonus potential. It also serves as the
// fallback profile for unknown positions.
type MidfielderScorer struct{}

// NewMidfielderScorer creates a new midfielder scorer
func NewMidfielderScorer() *MidfielderScorer {
	return &MidfielderScorer{}
}

// Score calculates the midfielder position score.
// Components:
// - Goal threat (30%): season goals plus a threat-index bonus
// - Creativity (30%): season assists plus a creativity-index bonus
// - Defensive (20%): influence per game
// - Bonus (20%): bonus points per game
func (ms *MidfielderScorer) Score(p domain.Player) PositionScore {
	goalThreatScore := ms.goalThreatScore(p)
	creativityScore := ms.creativityScore(p)
	defensiveScore := ms.defensiveScore(p)
	bonusScore := ms.bonusScore(p)

	total := goalThreatScore*scoring.MIDGoalThreatWeight +
		creativityScore*scoring.MIDCreativityWeight +
		defensiveScore*scoring.MIDDefensiveWeight +
		bonusScore*scoring.MIDBonusWeight

	return PositionScore{
		Score: round3(total),
		Components: map[string]float64{
			"goal_threat": round3(goalThreatScore),
			"creativity":  round3(creativityScore),
			"defensive":   round3(defensiveScore),
			"bonus":       round3(bonusScore),
		},
	}
}

func (ms *MidfielderScorer) goalThreatScore(p domain.Player) float64 {
	goalsScore := rampScore(float64(p.GoalsScored), scoring.MIDGoalsGood, scoring.MIDGoalsExcellent)

	// The threat index captures chances that have not converted yet.
	threatBonus := math.Min(scoring.MIDThreatBonusCap, p.Threat/scoring.MIDThreatBonusScale)

	return math.Min(10.0, goalsScore+threatBonus)
}

func (ms *MidfielderScorer) creativityScore(p domain.Player) float64 {
	assistsScore := rampScore(float64(p.Assists), scoring.MIDAssistsGood, scoring.MIDAssistsExcellent)

	creativityBonus := math.Min(scoring.MIDCreativityBonusCap, p.Creativity/scoring.MIDCreativityScale)

	return math.Min(10.0, assistsScore+creativityBonus)
}

func (ms *MidfielderScorer) defensiveScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	influencePerGame := p.Influence / float64(p.GamesPlayed)
	return math.Min(10.0, influencePerGame/scoring.MIDInfluencePerGameMax)
}

func (ms *MidfielderScorer) bonusScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	bonusPerGame := float64(p.Bonus) / float64(p.GamesPlayed)
	return math.Min(10.0, bonusPerGame*scoring.MIDBonusPerGameScale)
}
