package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// ValueScorer calculates the value score: price efficiency, ownership
// positioning, differential potential, and market momentum.
type ValueScorer struct{}

// ValueScore represents the result of value scoring
type ValueScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewValueScorer creates a new value scorer
func NewValueScorer() *ValueScorer {
	return &ValueScorer{}
}

// Score calculates the value score.
// Components:
// - Price efficiency (40%): season points per million
// - Ownership (30%): moderate ownership is optimal for upside
// - Differential (20%): low ownership backed by output
// - Momentum (10%): transfer market flows and form direction
func (vs *ValueScorer) Score(p domain.Player) ValueScore {
	priceEfficiencyScore := vs.priceEfficiencyScore(p)
	ownershipScore := vs.ownershipScore(p)
	differentialScore := vs.differentialScore(p)
	momentumScore := vs.momentumScore(p)

	total := priceEfficiencyScore*scoring.ValuePriceEfficiencyWeight +
		ownershipScore*scoring.ValueOwnershipWeight +
		differentialScore*scoring.ValueDifferentialWeight +
		momentumScore*scoring.ValueMomentumWeight

	return ValueScore{
		Score: round3(clampScore(total)),
		Components: map[string]float64{
			"price_efficiency": round3(priceEfficiencyScore),
			"ownership":        round3(ownershipScore),
			"differential":     round3(differentialScore),
			"momentum":         round3(momentumScore),
		},
	}
}

func (vs *ValueScorer) priceEfficiencyScore(p domain.Player) float64 {
	if p.Price <= 0 {
		return 0.0
	}

	pointsPerMillion := float64(p.TotalPoints) / p.Price
	switch {
	case pointsPerMillion >= scoring.ExcellentPPM:
		return 10.0
	case pointsPerMillion >= scoring.GoodPPM:
		ratio := (pointsPerMillion - scoring.GoodPPM) / (scoring.ExcellentPPM - scoring.GoodPPM)
		return 7.0 + ratio*3.0
	case pointsPerMillion >= scoring.PoorPPM:
		ratio := (pointsPerMillion - scoring.PoorPPM) / (scoring.GoodPPM - scoring.PoorPPM)
		return 4.0 + ratio*3.0
	default:
		return math.Min(4.0, pointsPerMillion/scoring.PoorPPM*4.0)
	}
}

// ownershipScore peaks around moderate ownership; very low ownership is
// only rewarded when the player's output justifies it.
func (vs *ValueScorer) ownershipScore(p domain.Player) float64 {
	ownership := p.SelectedByPercent

	var score float64
	switch {
	case ownership >= scoring.HighOwnership:
		// Template player, differential value decays with popularity.
		score = 4.0 - math.Min(2.0, (ownership-scoring.HighOwnership)/25.0)
	case ownership >= scoring.MediumOwnership:
		ratio := (ownership - scoring.MediumOwnership) / (scoring.HighOwnership - scoring.MediumOwnership)
		score = 8.0 - ratio*2.0
	case ownership >= scoring.LowOwnership:
		ratio := (ownership - scoring.LowOwnership) / (scoring.MediumOwnership - scoring.LowOwnership)
		score = 6.0 + ratio*2.0
	default:
		// Either a trap or a gem, the points rate decides which.
		if p.GamesPlayed > 0 {
			switch ppg := p.PointsPerGame(); {
			case ppg > 4.0:
				score = 9.0
			case ppg > 2.0:
				score = 6.0
			default:
				score = 2.0
			}
		} else {
			score = 3.0
		}
	}

	return math.Max(0.0, math.Min(10.0, score))
}

func (vs *ValueScorer) differentialScore(p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return 5.0
	}

	ppg := p.PointsPerGame()
	ownership := p.SelectedByPercent

	var score float64
	switch {
	case ownership < scoring.LowOwnership:
		switch {
		case ppg > 5.0:
			score = 10.0
		case ppg > 3.5:
			score = 8.0
		case ppg > 2.0:
			score = 6.0
		default:
			score = 2.0
		}
	case ownership < scoring.MediumOwnership:
		switch {
		case ppg > 4.5:
			score = 8.0
		case ppg > 3.0:
			score = 7.0
		default:
			score = 5.0
		}
	case ownership < scoring.HighOwnership:
		if ppg > 5.0 {
			score = 6.0
		} else {
			score = 4.0
		}
	default:
		// Template: essential if elite, overhyped otherwise.
		if ppg > 6.0 {
			score = 5.0
		} else {
			score = 2.0
		}
	}

	// Cheaper players swing ranks harder per point gained.
	if p.Price < scoring.CheapPriceThreshold {
		score += scoring.CheapPriceBonus
	} else if p.Price < scoring.MidPriceThreshold {
		score += scoring.MidPriceBonus
	}

	return math.Max(0.0, math.Min(10.0, score))
}

func (vs *ValueScorer) momentumScore(p domain.Player) float64 {
	netTransfers := p.TransfersIn - p.TransfersOut

	var transferMomentum float64
	switch {
	case netTransfers > scoring.HighTransfersIn:
		transferMomentum = 2.0
	case netTransfers > scoring.SomeTransfersIn:
		transferMomentum = 1.0
	case netTransfers > scoring.SomeTransfersOut:
		transferMomentum = 0.0
	case netTransfers > scoring.HighTransfersOut:
		transferMomentum = -1.0
	default:
		transferMomentum = -2.0
	}

	var formMomentum float64
	switch {
	case p.Form > 6.0:
		formMomentum = 2.0
	case p.Form > 4.0:
		formMomentum = 1.0
	case p.Form > 2.0:
		formMomentum = -1.0
	default:
		formMomentum = -2.0
	}

	return math.Max(0.0, math.Min(10.0, 5.0+transferMomentum+formMomentum))
}
