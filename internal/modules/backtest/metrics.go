package backtest

import (
	"fmt"
	"math"
	"sort"

	"github.com/aristath/gaffer/pkg/formulas"
)

const (
	// Family sample minimums. A family below its minimum is left out of
	// the result entirely rather than reported as zero.
	minCorrelationSamples = 2
	minPrecisionSamples   = 10
	minCalibrationSamples = 10
	minRankingSamples     = 10

	maxCalibrationBins = 10
	reliabilityBins    = 10

	// mapeGuard keeps the percentage error finite when an actual value
	// is zero.
	mapeGuard = 1e-8
)

// Compute derives prediction-quality metrics from parallel predicted
// and actual series. Observations with a NaN on either side are
// dropped before anything is measured, and each metric family has a
// minimum sample count below which its keys are absent. The function
// is pure: the same inputs always produce the same map.
func Compute(predicted, actual []float64) (map[string]float64, error) {
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("predicted and actual series length mismatch: %d vs %d", len(predicted), len(actual))
	}

	pred, act := dropNaNPairs(predicted, actual)

	metrics := make(map[string]float64)
	correlationMetrics(pred, act, metrics)
	precisionMetrics(pred, act, metrics)
	calibrationMetrics(pred, act, metrics)
	errorMetrics(pred, act, metrics)
	rankingMetrics(pred, act, metrics)
	return metrics, nil
}

// dropNaNPairs removes observations where either side is NaN.
func dropNaNPairs(predicted, actual []float64) ([]float64, []float64) {
	pred := make([]float64, 0, len(predicted))
	act := make([]float64, 0, len(actual))
	for i := range predicted {
		if math.IsNaN(predicted[i]) || math.IsNaN(actual[i]) {
			continue
		}
		pred = append(pred, predicted[i])
		act = append(act, actual[i])
	}
	return pred, act
}

func correlationMetrics(pred, actual []float64, out map[string]float64) {
	if len(pred) < minCorrelationSamples {
		return
	}
	out["pearson_correlation"] = nanToZero(formulas.Correlation(pred, actual))
	out["spearman_correlation"] = nanToZero(formulas.SpearmanCorrelation(pred, actual))
	out["kendall_tau"] = nanToZero(formulas.KendallCorrelation(pred, actual))
}

func precisionMetrics(pred, actual []float64, out map[string]float64) {
	if len(pred) < minPrecisionSamples {
		return
	}

	// Overlap between the predicted and the realized top n. The divisor
	// stays n even when fewer samples exist, so a short series cannot
	// score a perfect top-20.
	for _, n := range []int{5, 10, 20} {
		predTop := topIndices(pred, n)
		actualTop := topIndices(actual, n)
		overlap := 0
		for i := range predTop {
			if _, ok := actualTop[i]; ok {
				overlap++
			}
		}
		out[fmt.Sprintf("top_%d_precision", n)] = float64(overlap) / float64(n)
		out[fmt.Sprintf("top_%d_overlap", n)] = float64(overlap)
	}

	// High scorers sit strictly above their series' 75th percentile.
	predThreshold := formulas.Percentile(pred, 75)
	actualThreshold := formulas.Percentile(actual, 75)
	var predictedHigh, actualHigh, hits float64
	for i := range pred {
		isPredHigh := pred[i] > predThreshold
		isActualHigh := actual[i] > actualThreshold
		if isPredHigh {
			predictedHigh++
		}
		if isActualHigh {
			actualHigh++
		}
		if isPredHigh && isActualHigh {
			hits++
		}
	}
	out["high_score_hit_rate"] = safeRatio(hits, predictedHigh)
	out["high_score_recall"] = safeRatio(hits, actualHigh)
}

func calibrationMetrics(pred, actual []float64, out map[string]float64) {
	if len(pred) < minCalibrationSamples {
		return
	}
	bins := len(pred) / 5
	if bins > maxCalibrationBins {
		bins = maxCalibrationBins
	}
	if bins < 2 {
		return
	}

	lo, hi := minMax(pred)
	sumPred := make([]float64, bins)
	sumActual := make([]float64, bins)
	counts := make([]int, bins)
	for i, v := range pred {
		b := binIndex(v, lo, hi, bins)
		sumPred[b] += v
		sumActual[b] += actual[i]
		counts[b]++
	}

	var errSum float64
	var filled int
	for b := 0; b < bins; b++ {
		if counts[b] == 0 {
			continue
		}
		n := float64(counts[b])
		errSum += math.Abs(sumPred[b]/n - sumActual[b]/n)
		filled++
	}
	calibrationError := errSum / float64(filled)
	out["calibration_error"] = calibrationError
	out["calibration_score"] = 1 / (1 + calibrationError)

	reliabilityMetrics(pred, actual, out)
}

// reliabilityMetrics compares how often high actual scores occur in
// each normalized-prediction bin against the bin's midpoint, the
// frequency a perfectly calibrated predictor would show.
func reliabilityMetrics(pred, actual []float64, out map[string]float64) {
	lo, hi := minMax(pred)
	normalized := make([]float64, len(pred))
	if hi > lo {
		for i, v := range pred {
			normalized[i] = (v - lo) / (hi - lo)
		}
	}

	threshold := formulas.Percentile(actual, 75)
	highs := make([]float64, reliabilityBins)
	counts := make([]int, reliabilityBins)
	for i, v := range normalized {
		b := binIndex(v, 0, 1, reliabilityBins)
		if actual[i] > threshold {
			highs[b]++
		}
		counts[b]++
	}

	var observed, expected []float64
	for b := 0; b < reliabilityBins; b++ {
		if counts[b] == 0 {
			continue
		}
		observed = append(observed, highs[b]/float64(counts[b]))
		expected = append(expected, (float64(b)+0.5)/reliabilityBins)
	}

	var errSum float64
	for i := range observed {
		errSum += math.Abs(observed[i] - expected[i])
	}
	out["reliability_score"] = 1 / (1 + errSum/float64(len(observed)))
	out["confidence_accuracy"] = nanToZero(formulas.Correlation(observed, expected))
}

func errorMetrics(pred, actual []float64, out map[string]float64) {
	if len(pred) < minCorrelationSamples {
		return
	}
	var absSum, sqSum, pctSum float64
	for i := range pred {
		diff := actual[i] - pred[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		pctSum += math.Abs(diff / (actual[i] + mapeGuard))
	}
	n := float64(len(pred))
	mse := sqSum / n
	out["mean_absolute_error"] = absSum / n
	out["mean_squared_error"] = mse
	out["root_mean_squared_error"] = math.Sqrt(mse)
	out["mean_absolute_percentage_error"] = pctSum / n * 100
	out["r_squared"] = formulas.RSquared(pred, actual)
}

func rankingMetrics(pred, actual []float64, out map[string]float64) {
	if len(pred) < minRankingSamples {
		return
	}
	predRanks := ordinalRanks(pred)
	actualRanks := ordinalRanks(actual)

	out["ranking_correlation"] = nanToZero(formulas.Correlation(predRanks, actualRanks))

	// Pairwise ordering agreement. Ordinal ranks are distinct, so every
	// pair is decided and counted.
	var correct, total float64
	for i := 0; i < len(predRanks); i++ {
		for j := i + 1; j < len(predRanks); j++ {
			if (predRanks[i] < predRanks[j]) == (actualRanks[i] < actualRanks[j]) {
				correct++
			}
			total++
		}
	}
	out["ranking_accuracy"] = correct / total
}

// RunMetrics summarizes a completed run's weekly results. Keys follow
// the report vocabulary: totals, spread, consistency, transfer and
// value efficiency, and the longest streaks either side of the run's
// own average.
func RunMetrics(results []GameweekResult) map[string]float64 {
	metrics := make(map[string]float64)
	if len(results) == 0 {
		return metrics
	}

	points := make([]float64, len(results))
	var totalTransfers, totalHits int
	for i, r := range results {
		points[i] = r.TotalPoints
		totalTransfers += r.TransfersMade
		totalHits += r.TransferHits
	}

	var total float64
	best, worst := points[0], points[0]
	for _, p := range points {
		total += p
		if p > best {
			best = p
		}
		if p < worst {
			worst = p
		}
	}
	average := total / float64(len(points))
	sigma := formulas.StdDevPop(points)

	var positive int
	for _, p := range points {
		if p > average {
			positive++
		}
	}
	negative := len(points) - positive

	metrics["total_points"] = total
	metrics["average_points_per_gameweek"] = average
	metrics["points_standard_deviation"] = sigma
	metrics["best_gameweek"] = best
	metrics["worst_gameweek"] = worst
	metrics["consistency_score"] = 1 / (1 + sigma)
	metrics["consistency_ratio"] = float64(positive) / float64(len(points))
	metrics["positive_weeks"] = float64(positive)
	metrics["negative_weeks"] = float64(negative)
	metrics["total_transfers"] = float64(totalTransfers)
	metrics["total_transfer_hits"] = float64(totalHits)

	if totalTransfers > 0 {
		metrics["transfer_efficiency"] = (total - float64(totalHits)) / float64(totalTransfers)
	} else {
		metrics["transfer_efficiency"] = 0
	}

	finalValue := results[len(results)-1].SquadValue
	if finalValue > 0 {
		metrics["value_efficiency"] = total / finalValue
	} else {
		metrics["value_efficiency"] = 0
	}

	maxPositive, maxNegative := streaks(points, average)
	metrics["max_positive_streak"] = float64(maxPositive)
	metrics["max_negative_streak"] = float64(maxNegative)

	// Weekly totals are evenly spaced, so the indicator slope applies
	// directly. Runs shorter than three weeks omit the key.
	if slope := formulas.TrendSlope(points); slope != nil {
		metrics["points_trend"] = *slope
	}

	return metrics
}

// streaks returns the longest runs of consecutive weeks above and
// at-or-below the average.
func streaks(points []float64, average float64) (maxPositive, maxNegative int) {
	var pos, neg int
	for _, p := range points {
		if p > average {
			pos++
			neg = 0
		} else {
			neg++
			pos = 0
		}
		if pos > maxPositive {
			maxPositive = pos
		}
		if neg > maxNegative {
			maxNegative = neg
		}
	}
	return maxPositive, maxNegative
}

// topIndices returns the index set of the n largest values. Ties keep
// the earlier index so selection is deterministic.
func topIndices(values []float64, n int) map[int]struct{} {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] > values[idx[b]] })
	if n > len(idx) {
		n = len(idx)
	}
	top := make(map[int]struct{}, n)
	for _, i := range idx[:n] {
		top[i] = struct{}{}
	}
	return top
}

// ordinalRanks assigns each value its position in ascending order.
// Unlike averaged ranks, ordinals are always distinct; ties resolve by
// original index.
func ordinalRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })
	ranks := make([]float64, len(values))
	for pos, i := range idx {
		ranks[i] = float64(pos)
	}
	return ranks
}

// binIndex maps v onto one of bins equal-width intervals over [lo, hi].
// The maximum value lands in the last bin instead of falling outside.
func binIndex(v, lo, hi float64, bins int) int {
	if hi <= lo {
		return 0
	}
	b := int((v - lo) / (hi - lo) * float64(bins))
	if b >= bins {
		b = bins - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// safeRatio guards thresholded ratios against an empty denominator
// group.
func safeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func nanToZero(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return v
}
