package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// GoalkeeperScorer scores keepers on shot stopping, clean sheets,
// distribution, and bonus potential.
type GoalkeeperScorer struct{}

// NewGoalkeeperScorer creates a new goalkeeper scorer
func NewGoalkeeperScorer() *GoalkeeperScorer {
	return &GoalkeeperScorer{}
}

// Score calculates the goalkeeper position score.
// Components:
// - Saves (40%): saves per game against the 3/5 good/excellent anchors
// - Clean sheets (30%): season clean sheets adjusted by concession rate
// - Distribution (20%): season influence as a proxy for ball progression
// - Bonus (10%): bonus points per game
func (gs *GoalkeeperScorer) Score(p domain.Player) PositionScore {
	saveScore := gs.saveScore(p)
	cleanSheetScore := gs.cleanSheetScore(p)
	distributionScore := gs.distributionScore(p)
	bonusScore := gs.bonusScore(p)

	total := saveScore*scoring.GKSaveWeight +
		cleanSheetScore*scoring.GKCleanSheetWeight +
		distributionScore*scoring.GKDistributionWeight +
		bonusScore*scoring.GKBonusWeight

	return PositionScore{
		Score: round3(total),
		Components: map[string]float64{
			"saves":        round3(saveScore),
			"clean_sheets": round3(cleanSheetScore),
			"distribution": round3(distributionScore),
			"bonus":        round3(bonusScore),
		},
	}
}

func (gs *GoalkeeperScorer) saveScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	savesPerGame := float64(p.Saves) / float64(p.GamesPlayed)
	return rampScore(savesPerGame, scoring.GKSavesPerGameGood, scoring.GKSavesPerGameExcellent)
}

func (gs *GoalkeeperScorer) cleanSheetScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}

	base := rampScore(float64(p.CleanSheets), scoring.GKCleanSheetsGood, scoring.GKCleanSheetsExcellent)

	// Concession rate drags the clean-sheet base up or down.
	concededPerGame := float64(p.GoalsConceded) / float64(p.GamesPlayed)
	if concededPerGame > scoring.GKConcededPenaltyAbove {
		penalty := (concededPerGame - scoring.GKConcededPenaltyAbove) * 2.0
		base = math.Max(0.0, base-penalty)
	} else if concededPerGame < scoring.GKConcededBonusBelow {
		bonus := (scoring.GKConcededBonusBelow - concededPerGame) * 1.0
		base = math.Min(10.0, base+bonus)
	}

	return base
}

// distributionScore uses season influence; keepers who launch attacks
// accumulate influence even without attacking returns.
func (gs *GoalkeeperScorer) distributionScore(p domain.Player) float64 {
	return math.Min(10.0, p.Influence/scoring.GKInfluenceScale)
}

func (gs *GoalkeeperScorer) bonusScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 0.0
	}
	bonusPerGame := float64(p.Bonus) / float64(p.GamesPlayed)
	return math.Min(10.0, bonusPerGame*scoring.GKBonusPerGameScale)
}
