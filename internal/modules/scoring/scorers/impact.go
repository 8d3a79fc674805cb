package scorers

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/pkg/formulas"
)

// ImpactScorer combines the five composite scores into the master
// player impact score on the 0-15 scale.
type ImpactScorer struct {
	cfg      scoring.Config
	quality  *QualityScorer
	form     *FormScorer
	momentum *MomentumScorer
	fixture  *FixtureScorer
	value    *ValueScorer
	log      zerolog.Logger
}

// NewImpactScorer creates the master scorer with its five composites.
func NewImpactScorer(cfg scoring.Config, history HistoryProvider, fixtures FixtureProvider, log zerolog.Logger) *ImpactScorer {
	return &ImpactScorer{
		cfg:      cfg,
		quality:  NewQualityScorer(cfg, log),
		form:     NewFormScorer(history),
		momentum: NewMomentumScorer(),
		fixture:  NewFixtureScorer(fixtures, cfg.LookaheadGameweeks),
		value:    NewValueScorer(),
		log:      log,
	}
}

// Score calculates the master impact score for a player:
// 1. The five composites, weighted by the position's weight set
// 2. Interaction bonuses where composite pairs reinforce each other
// 3. Risk penalties for injury, rotation, ownership, and price exposure
// 4. A confidence multiplier from data quality, sample size, and
//    sub-score agreement
func (is *ImpactScorer) Score(p domain.Player, team domain.Team) scoring.ScoreResult {
	subScores := scoring.SubScores{
		Quality:      is.sanitize("quality", p.ID, is.quality.Score(p, team).Score),
		Form:         is.sanitize("form", p.ID, is.form.Score(p).Score),
		TeamMomentum: is.sanitize("team_momentum", p.ID, is.momentum.Score(team).Score),
		Fixture:      is.sanitize("fixture", p.ID, is.fixture.Score(p, team).Score),
		Value:        is.sanitize("value", p.ID, is.value.Score(p).Score),
	}

	weights := is.cfg.WeightsFor(p.Position)
	base := baseScore(subScores, weights)
	bonus := interactionBonus(subScores)
	penalty := riskPenalty(p)
	confidence := confidenceMultiplier(p, subScores)

	final := (base + bonus + penalty) * confidence
	final = math.Max(0.0, math.Min(scoring.MasterScoreMax, final))

	is.log.Debug().
		Int("player_id", p.ID).
		Float64("base", base).
		Float64("bonus", bonus).
		Float64("penalty", penalty).
		Float64("confidence", confidence).
		Float64("final", final).
		Msg("impact score calculated")

	return scoring.ScoreResult{
		PlayerID:         p.ID,
		PlayerName:       p.Name,
		Position:         p.Position,
		SubScores:        subScores,
		BaseScore:        round3(base),
		InteractionBonus: round3(bonus),
		RiskPenalty:      round3(penalty),
		Confidence:       round3(confidence),
		ConfidenceLevel:  scoring.LevelForMultiplier(confidence),
		FinalScore:       round3(final),
		ExpectedRange:    scoring.ExpectedRange(round3(final), round3(confidence)),
		Weights:          weights,
	}
}

// sanitize guards the pipeline against a composite producing a
// non-finite value from bad input data.
func (is *ImpactScorer) sanitize(name string, playerID int, score float64) float64 {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		is.log.Warn().
			Str("sub_score", name).
			Int("player_id", playerID).
			Msg("invalid sub-score, using zero")
		return 0.0
	}
	return score
}

// baseScore blends the sub-scores, normalizing by the weight total so
// experimental weight sets that do not sum to one stay on scale.
func baseScore(s scoring.SubScores, w scoring.Weights) float64 {
	total := w.Sum()
	if total <= 0 {
		return 0.0
	}
	return s.Weighted(w) / total
}

// interactionBonus rewards composite pairs that reinforce each other.
// Each pair fires only when both clear the shared threshold.
func interactionBonus(s scoring.SubScores) float64 {
	var bonus float64

	if s.Quality >= scoring.QualityFormThreshold && s.Form >= scoring.QualityFormThreshold {
		bonus += scoring.QualityFormBonus
	}
	if s.Form >= scoring.FormFixtureThreshold && s.Fixture >= scoring.FormFixtureThreshold {
		bonus += scoring.FormFixtureBonus
	}
	if s.Quality >= scoring.QualityValueThreshold && s.Value >= scoring.QualityValueThreshold {
		bonus += scoring.QualityValueBonus
	}
	if s.TeamMomentum >= scoring.TeamFormThreshold && s.Form >= scoring.TeamFormThreshold {
		bonus += scoring.TeamFormBonus
	}

	return bonus
}

// riskPenalty deducts for exposure the composites do not capture.
func riskPenalty(p domain.Player) float64 {
	var penalty float64

	if InjuryRisk(p) >= scoring.InjuryRiskThreshold {
		penalty += scoring.InjuryRiskPenalty
	}
	if RotationRisk(p) >= scoring.RotationRiskThreshold {
		penalty += scoring.RotationRiskPenalty
	}
	if p.SelectedByPercent <= scoring.OwnershipRiskThreshold {
		penalty += scoring.OwnershipRiskPenalty
	}
	if p.Price >= scoring.PriceRiskThreshold {
		penalty += scoring.PriceRiskPenalty
	}

	return penalty
}

// confidenceMultiplier expresses how much the final score can be
// trusted, between ConfidenceFloor and ConfidenceCeiling.
func confidenceMultiplier(p domain.Player, s scoring.SubScores) float64 {
	quality := dataQuality(p)
	sample := sampleSizeConfidence(p.GamesPlayed)
	consistency := scoreConsistency(s.Values())

	weighted := quality*scoring.ConfidenceWeightDataQuality +
		sample*scoring.ConfidenceWeightSampleSize +
		consistency*scoring.ConfidenceWeightConsistency

	return scoring.ConfidenceFloor + weighted
}

// dataQuality measures how complete the player's core fields are.
// NaN and impossible values count as missing; an unplayed season halves
// the result because the stats are not load-bearing yet.
func dataQuality(p domain.Player) float64 {
	present := 4.0
	if math.IsNaN(p.Form) {
		present--
	}
	if math.IsNaN(p.Price) || p.Price <= 0 {
		present--
	}
	if math.IsNaN(p.SelectedByPercent) || p.SelectedByPercent < 0 {
		present--
	}
	// TotalPoints always carries a value.

	quality := present / 4.0
	if p.GamesPlayed == 0 {
		quality *= 0.5
	}
	return quality
}

func sampleSizeConfidence(played int) float64 {
	switch {
	case played >= 20:
		return 1.0
	case played >= 15:
		return 0.9
	case played >= 10:
		return 0.8
	case played >= 5:
		return 0.7
	default:
		return 0.5
	}
}

// scoreConsistency checks how much the five composites agree with each
// other. Wild disagreement means the picture is unclear.
func scoreConsistency(values []float64) float64 {
	mean := formulas.Mean(values)
	if mean == 0 {
		return 0.5
	}
	cv := formulas.StdDevPop(values) / mean

	switch {
	case cv <= 0.2:
		return 1.0
	case cv <= 0.4:
		return 0.8
	case cv <= 0.6:
		return 0.6
	default:
		return 0.4
	}
}
