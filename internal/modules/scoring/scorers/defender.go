package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// DefenderScorer scores defenders on clean sheets, attacking returns,
// defensive presence, and bonus potential.
type DefenderScorer struct{}

// NewDefenderScorer creates a new defender scorer
func NewDefenderScorer() *DefenderScorer {
	return &DefenderScorer{}
}

// Score calculates the defender position score.
// Components:
// - Clean sheets (40%): season clean sheets adjusted by concession rate
// - Attacking (30%): goals count double towards attacking returns
// - Defensive (20%): influence per game as a proxy for defensive actions
// - Bonus (10%): bonus points per game
func (ds *DefenderScorer) Score(p domain.Player) PositionScore {
	cleanSheetScore := ds.cleanSheetScore(p)
	attackingScore := ds.attackingScore(p)
	defensiveScore := ds.defensiveScore(p)
	bonusScore := ds.bonusScore(p)

	total := cleanSheetScore*scoring.DEFCleanSheetWeight +
		attackingScore*scoring.DEFAttackingWeight +
		defensiveScore*scoring.DEFDefensiveWeight +
		bonusScore*scoring.DEFBonusWeight

	return PositionScore{
		Score: round3(total),
		Components: map[string]float64{
			"clean_sheets": round3(cleanSheetScore),
			"attacking":    round3(attackingScore),
			"defensive":    round3(defensiveScore),
			"bonus":        round3(bonusScore),
		},
	}
}

func (ds *DefenderScorer) cleanSheetScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}

	base := rampScore(float64(p.CleanSheets), scoring.DEFCleanSheetsGood, scoring.DEFCleanSheetsExcellent)

	concededPerGame := float64(p.GoalsConceded) / float64(p.GamesPlayed)
	if concededPerGame > scoring.DEFConcededPenaltyAbove {
		penalty := (concededPerGame - scoring.DEFConcededPenaltyAbove) * 2.0
		base = math.Max(0.0, base-penalty)
	} else if concededPerGame < scoring.DEFConcededBonusBelow {
		bonus := (scoring.DEFConcededBonusBelow - concededPerGame) * 2.0
		base = math.Min(10.0, base+bonus)
	}

	return base
}

// attackingScore works on season totals, so it survives a played==0
// edge case without a guard.
func (ds *DefenderScorer) attackingScore(p domain.Player) float64 {
	attackingPoints := float64(p.GoalsScored)*scoring.DEFGoalValue + float64(p.Assists)
	return rampScore(attackingPoints, scoring.DEFAttackingGood, scoring.DEFAttackingExcellent)
}

func (ds *DefenderScorer) defensiveScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	influencePerGame := p.Influence / float64(p.GamesPlayed)
	return math.Min(10.0, influencePerGame/scoring.DEFInfluencePerGameMax)
}

func (ds *DefenderScorer) bonusScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	bonusPerGame := float64(p.Bonus) / float64(p.GamesPlayed)
	return math.Min(10.0, bonusPerGame*scoring.DEFBonusPerGameScale)
}
