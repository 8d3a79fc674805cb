package scorers

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// QualityScorer calculates the advanced quality score: the position
// base score shrunk towards a positional prior, boosted for buildup
// involvement, then adjusted for team and minutes context.
type QualityScorer struct {
	cfg scoring.Config
	log zerolog.Logger
}

// QualityScore represents the result of quality scoring
type QualityScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewQualityScorer creates a new quality scorer
func NewQualityScorer(cfg scoring.Config, log zerolog.Logger) *QualityScorer {
	return &QualityScorer{cfg: cfg, log: log}
}

// Score calculates the quality score for a player in the context of
// their team. Stages:
// 1. Position-specific base score
// 2. Bayesian shrinkage towards the positional prior by sample size
// 3. Buildup enhancement from creativity, influence, and assists
// 4. Contextual adjustment for team strength and minutes
func (qs *QualityScorer) Score(p domain.Player, team domain.Team) QualityScore {
	scorer, ok := ForPosition(p.Position)
	if !ok {
		qs.log.Warn().
			Str("position", string(p.Position)).
			Int("player_id", p.ID).
			Msg("unknown position, scoring with midfielder profile")
	}
	base := scorer.Score(p).Score

	adjusted := qs.applyPrior(base, p)
	enhanced := qs.applyBuildup(adjusted, p)
	final := qs.applyContext(enhanced, p, team)

	return QualityScore{
		Score: round3(clampScore(final)),
		Components: map[string]float64{
			"position_base":  round3(base),
			"prior_adjusted": round3(adjusted),
			"buildup_boost":  round3(enhanced - adjusted),
			"context_shift":  round3(final - enhanced),
		},
	}
}

// applyPrior shrinks the base score towards the positional prior. The
// fewer games played, the more the prior dominates.
func (qs *QualityScorer) applyPrior(base float64, p domain.Player) float64 {
	played := float64(p.GamesPlayed)

	var confidence float64
	if p.GamesPlayed >= scoring.SampleSizeThreshold {
		confidence = math.Min(1.0, played/(scoring.SampleSizeThreshold*2))
	} else {
		confidence = played / scoring.SampleSizeThreshold
	}

	prior := qs.cfg.PriorFor(p.Position)
	return confidence*base + (1-confidence)*prior
}

// applyBuildup rewards pre-shot involvement that raw returns miss.
func (qs *QualityScorer) applyBuildup(base float64, p domain.Player) float64 {
	if p.GamesPlayed == 0 {
		return base
	}
	played := float64(p.GamesPlayed)

	buildup := math.Min(scoring.BuildupCreativityCap, (p.Creativity/played)/scoring.BuildupCreativityScale) +
		math.Min(scoring.BuildupInfluenceCap, (p.Influence/played)/scoring.BuildupInfluenceScale) +
		math.Min(scoring.BuildupAssistsCap, (float64(p.Assists)/played)*scoring.BuildupAssistsScale)

	factor := 1.0 + buildup/scoring.BuildupBoostDivisor
	return base * factor
}

// applyContext deflates stat-padding in dominant sides, credits output
// in weak ones, and penalizes players whose points rate suggests they
// are not getting minutes.
func (qs *QualityScorer) applyContext(base float64, p domain.Player, team domain.Team) float64 {
	var teamAdjustment float64
	if team.Strength > scoring.StrongTeamStrength {
		teamAdjustment = -scoring.StrongTeamPenaltyMax * ((team.Strength - scoring.StrongTeamStrength) / 30.0)
	} else if team.Strength < scoring.WeakTeamStrength {
		teamAdjustment = scoring.WeakTeamBonusMax * ((scoring.WeakTeamStrength - team.Strength) / 30.0)
	}

	var minutesPenalty float64
	if p.GamesPlayed > 0 {
		switch ppg := p.PointsPerGame(); {
		case ppg < scoring.VeryLowPPG:
			minutesPenalty = scoring.VeryLowPPGPenalty
		case ppg < scoring.LowPPG:
			minutesPenalty = scoring.LowPPGPenalty
		}
	} else {
		minutesPenalty = scoring.UnplayedPenalty
	}

	return base + teamAdjustment + minutesPenalty
}
