package scorers

import (
	"math"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/pkg/formulas"
)

// FormScorer calculates the form consistency score from a player's
// recent gameweek history: how good the form is, how stable it is,
// and which way it is heading.
type FormScorer struct {
	history HistoryProvider
}

// FormScore represents the result of form scoring
type FormScore struct {
	Components map[string]float64 `json:"components"`
	Score      float64            `json:"score"`
}

// NewFormScorer creates a new form scorer
func NewFormScorer(history HistoryProvider) *FormScorer {
	return &FormScorer{history: history}
}

// Score calculates the form consistency score.
// Components:
// - Recent (0.6): decay-weighted average of the window, banded to 0-10
// - Consistency (0.4): coefficient of variation of non-zero scores
// - Trend (0.2): least-squares slope over the non-zero scores
// The weights are normalized by their sum.
func (fs *FormScorer) Score(p domain.Player) FormScore {
	recentForm := fs.history.RecentHistory(p)

	formScore := recentFormScore(recentForm)
	consistencyScore := formConsistencyScore(recentForm)
	trendScore := formTrendScore(recentForm)

	weightSum := scoring.FormRecentWeight + scoring.FormConsistencyWeight + scoring.FormTrendWeight
	total := (formScore*scoring.FormRecentWeight +
		consistencyScore*scoring.FormConsistencyWeight +
		trendScore*scoring.FormTrendWeight) / weightSum

	return FormScore{
		Score: round3(clampScore(total)),
		Components: map[string]float64{
			"recent":      round3(formScore),
			"consistency": round3(consistencyScore),
			"trend":       round3(trendScore),
		},
	}
}

// recentFormScore produces the decay-weighted form average, banded onto
// the 0-10 scale.
func recentFormScore(recentForm []float64) float64 {
	if len(recentForm) == 0 || allZero(recentForm) {
		return 0.0
	}

	// Most recent entry carries full weight, each step back decays.
	var weightedSum, weightSum float64
	n := len(recentForm)
	for i, form := range recentForm {
		weight := math.Pow(scoring.FormDecayFactor, float64(n-1-i))
		weightedSum += form * weight
		weightSum += weight
	}
	if weightSum == 0 {
		return 0.0
	}
	averageForm := weightedSum / weightSum

	switch {
	case averageForm >= scoring.ExcellentFormAvg:
		return 10.0
	case averageForm >= scoring.GoodFormAvg:
		ratio := (averageForm - scoring.GoodFormAvg) / (scoring.ExcellentFormAvg - scoring.GoodFormAvg)
		return 7.0 + ratio*3.0
	case averageForm >= scoring.ModerateFormAvg:
		ratio := (averageForm - scoring.ModerateFormAvg) / (scoring.GoodFormAvg - scoring.ModerateFormAvg)
		return 3.0 + ratio*4.0
	default:
		return math.Max(0.0, averageForm/scoring.ModerateFormAvg*3.0)
	}
}

// formConsistencyScore rewards low variance across the games actually
// played. Blank gameweeks are excluded so rotation does not read as
// inconsistency.
func formConsistencyScore(recentForm []float64) float64 {
	if len(recentForm) < 2 {
		return 5.0
	}

	var played []float64
	for _, f := range recentForm {
		if f > 0 {
			played = append(played, f)
		}
	}
	if len(played) < 2 {
		return 5.0
	}

	mean := formulas.Mean(played)
	if mean == 0 {
		return 0.0
	}
	cv := formulas.StdDevPop(played) / mean

	var score float64
	switch {
	case cv <= scoring.ConsistentCV:
		score = 10.0
	case cv <= scoring.InconsistentCV:
		ratio := (cv - scoring.ConsistentCV) / (scoring.InconsistentCV - scoring.ConsistentCV)
		score = 10.0 - ratio*3.0
	default:
		ratio := math.Min(1.0, (cv-scoring.InconsistentCV)/scoring.InconsistentCV)
		score = 7.0 - ratio*7.0
	}

	return math.Max(0.0, score)
}

// formTrendScore fits a line through the games actually played, keeping
// their window positions as x so gaps weigh into the fit.
func formTrendScore(recentForm []float64) float64 {
	if len(recentForm) < 3 {
		return 5.0
	}

	var xs, ys []float64
	for i, f := range recentForm {
		if f > 0 {
			xs = append(xs, float64(i))
			ys = append(ys, f)
		}
	}
	if len(xs) < 3 {
		return 5.0
	}

	slope := formulas.SlopeXY(xs, ys)

	var score float64
	switch {
	case slope > scoring.StrongTrendSlope:
		score = 8.0 + math.Min(2.0, slope)
	case slope > -scoring.StrongTrendSlope:
		// Mild trends either way scale linearly around the neutral 5
		score = 5.0 + slope*6.0
	default:
		score = math.Max(0.0, 2.0+slope)
	}

	return clampScore(score)
}

func allZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return false
		}
	}
	return true
}
