package transfers

import (
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/pkg/formulas"
)

// Search limits. Enumeration is bounded per swap-set size so a large
// candidate pool cannot blow up the search.
const (
	maxTransferTargets     = 50
	maxSwapsPerSearch      = 3
	maxCombinationsPerSize = 1000
	maxRecommendations     = 10

	// defaultCandidateConfidence is the prior blended with each
	// candidate's own score confidence.
	defaultCandidateConfidence = 0.8

	singleTransferTargets    = 20
	singleTransferMinGain    = 0.5
	maxSingleRecommendations = 5
)

// Optimizer searches swap combinations for a squad: pool players are
// scored and filtered into targets, swap sets are enumerated under
// budget and squad rules, and the survivors are ranked by expected gain.
type Optimizer struct {
	scorer  Scorer
	checker *Checker
	log     zerolog.Logger
}

// NewOptimizer builds a transfer optimizer around a master scorer and a
// rule checker.
func NewOptimizer(scorer Scorer, checker *Checker, log zerolog.Logger) *Optimizer {
	return &Optimizer{
		scorer:  scorer,
		checker: checker,
		log:     log.With().Str("component", "transfers").Logger(),
	}
}

// Optimize returns the best transfer combinations for the squad, ranked
// by total expected gain, at most ten. Finding nothing that passes the
// filters is not an error: the result is simply empty.
func (o *Optimizer) Optimize(req OptimizeRequest) ([]Combination, error) {
	if len(req.Squad.Players) == 0 {
		return nil, errors.New("optimize: squad is empty")
	}

	o.log.Info().
		Int("transfers_available", req.TransfersAvailable).
		Int("pool_size", len(req.Pool)).
		Str("strategy", string(req.Strategy)).
		Msg("starting transfer optimization")

	squadScores := o.scoreSquad(req.Squad)
	targets := o.transferTargets(req.Pool, req.Strategy)

	scored := make([]Combination, 0, maxRecommendations)
	for _, swapSet := range o.enumerate(req, targets, squadScores) {
		if combination, ok := o.scoreCombination(swapSet, req.Squad, squadScores); ok {
			scored = append(scored, combination)
		}
	}

	sortCombinations(scored)

	filtered := make([]Combination, 0, len(scored))
	for _, combination := range scored {
		if req.Strategy.acceptCombination(combination) {
			filtered = append(filtered, combination)
		}
	}
	if len(filtered) > maxRecommendations {
		filtered = filtered[:maxRecommendations]
	}

	o.log.Info().
		Int("combinations", len(filtered)).
		Msg("transfer optimization complete")

	return filtered, nil
}

// SingleTransfers returns standalone swap recommendations: balanced
// targets paired greedily against the squad, kept when the price delta
// fits the budget and the expected gain clears the floor. At most five.
func (o *Optimizer) SingleTransfers(squad domain.Squad, pool []domain.Player, budget float64) ([]Transfer, error) {
	if len(squad.Players) == 0 {
		return nil, errors.New("single transfers: squad is empty")
	}

	squadScores := o.scoreSquad(squad)
	targets := o.transferTargets(pool, StrategyBalanced)
	if len(targets) > singleTransferTargets {
		targets = targets[:singleTransferTargets]
	}

	recommendations := make([]Transfer, 0, len(targets))
	for _, target := range targets {
		out, ok := transferOut(squad, target.Player.Position, squadScores, nil)
		if !ok {
			continue
		}
		if target.Player.Price-out.Price > budget {
			continue
		}
		gain := target.Score - squadScores[out.ID]
		if gain <= singleTransferMinGain {
			continue
		}
		recommendations = append(recommendations, Transfer{
			Out:          out,
			In:           target.Player,
			ExpectedGain: gain,
			Confidence:   target.Confidence,
			Risk:         target.Risk,
			Reasoning:    transferReasoning(target.Player, gain),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].ExpectedGain > recommendations[j].ExpectedGain
	})
	if len(recommendations) > maxSingleRecommendations {
		recommendations = recommendations[:maxSingleRecommendations]
	}
	return recommendations, nil
}

// scoreSquad computes master scores for the current squad. A player that
// fails to score contributes zero, so one bad record never blocks a swap
// against the rest of the squad.
func (o *Optimizer) scoreSquad(squad domain.Squad) map[int]float64 {
	scores := make(map[int]float64, len(squad.Players))
	for _, p := range squad.Players {
		scores[p.ID] = 0
	}
	for _, result := range o.scorer.ScorePool(squad.Players, nil) {
		scores[result.PlayerID] = result.FinalScore
	}
	return scores
}

// transferTargets scores the pool, annotates availability risk, applies
// the strategy's candidate filter, and keeps the strongest targets.
func (o *Optimizer) transferTargets(pool []domain.Player, strategy Strategy) []Candidate {
	byID := make(map[int]domain.Player, len(pool))
	for _, p := range pool {
		byID[p.ID] = p
	}

	candidates := make([]Candidate, 0, len(pool))
	for _, result := range o.scorer.ScorePool(pool, nil) {
		player, ok := byID[result.PlayerID]
		if !ok {
			continue
		}
		candidate := Candidate{
			Player:     player,
			Score:      result.FinalScore,
			Confidence: candidateConfidence(result.Confidence),
			Risk:       TransferRisk(player),
		}
		if strategy.acceptCandidate(candidate) {
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Player.Name < candidates[j].Player.Name
	})
	if len(candidates) > maxTransferTargets {
		candidates = candidates[:maxTransferTargets]
	}

	o.log.Debug().
		Int("targets", len(candidates)).
		Str("strategy", string(strategy)).
		Msg("filtered transfer targets")

	return candidates
}

// candidateConfidence blends the default target prior with the score's
// own confidence multiplier, mapped from its [0.5, 1.5] band onto [0, 1].
func candidateConfidence(multiplier float64) float64 {
	normalized := formulas.Clamp(multiplier-scoring.ConfidenceFloor, 0, 1)
	return (defaultCandidateConfidence + normalized) / 2
}

// enumerate walks swap sets of increasing size and keeps the ones that
// fit the budget and leave a legal squad.
func (o *Optimizer) enumerate(req OptimizeRequest, targets []Candidate, squadScores map[int]float64) [][]Candidate {
	maxSize := req.TransfersAvailable
	if maxSize > maxSwapsPerSearch {
		maxSize = maxSwapsPerSearch
	}

	var valid [][]Candidate
	for size := 1; size <= maxSize; size++ {
		visited := 0
		combinations(len(targets), size, func(idx []int) bool {
			visited++
			swapSet := make([]Candidate, size)
			for i, j := range idx {
				swapSet[i] = targets[j]
			}
			if o.validSwapSet(req, swapSet, squadScores) {
				valid = append(valid, swapSet)
			}
			return visited < maxCombinationsPerSize
		})
	}
	return valid
}

// validSwapSet applies the search-time constraints: total incoming cost
// within budget, a same-position squad player available to drop for
// every incoming target, and a resulting squad inside position and team
// limits.
func (o *Optimizer) validSwapSet(req OptimizeRequest, swapSet []Candidate, squadScores map[int]float64) bool {
	var cost float64
	for _, candidate := range swapSet {
		cost += candidate.Player.Price
	}
	if cost > req.Budget {
		return false
	}

	resulting := req.Squad
	taken := make(map[int]bool, len(swapSet))
	for _, candidate := range swapSet {
		out, ok := transferOut(req.Squad, candidate.Player.Position, squadScores, taken)
		if !ok {
			return false
		}
		taken[out.ID] = true
		resulting = resulting.Replace(out.ID, candidate.Player)
	}

	return o.checker.CheckSquadLimits(resulting)
}

// scoreCombination pairs each incoming target with its transfer-out
// partner and aggregates the swap set into a ranked recommendation.
func (o *Optimizer) scoreCombination(swapSet []Candidate, squad domain.Squad, squadScores map[int]float64) (Combination, bool) {
	transfers := make([]Transfer, 0, len(swapSet))
	taken := make(map[int]bool, len(swapSet))

	var totalGain, totalConfidence, totalRisk, budgetImpact float64
	for _, candidate := range swapSet {
		out, ok := transferOut(squad, candidate.Player.Position, squadScores, taken)
		if !ok {
			continue
		}
		taken[out.ID] = true

		gain := candidate.Score - squadScores[out.ID]
		transfers = append(transfers, Transfer{
			Out:          out,
			In:           candidate.Player,
			ExpectedGain: gain,
			Confidence:   candidate.Confidence,
			Risk:         candidate.Risk,
			Reasoning:    transferReasoning(candidate.Player, gain),
		})
		totalGain += gain
		totalConfidence += candidate.Confidence
		totalRisk += candidate.Risk
		budgetImpact += candidate.Player.Price - out.Price
	}

	if len(transfers) == 0 {
		return Combination{}, false
	}

	n := float64(len(transfers))
	return Combination{
		Transfers:    transfers,
		TotalGain:    totalGain,
		Confidence:   totalConfidence / n,
		Risk:         totalRisk / n,
		BudgetImpact: budgetImpact,
		Reasoning:    combinationReasoning(totalGain),
	}, true
}

// transferOut picks the swap partner for an incoming player: the
// lowest-scored same-position squad player not already being moved out.
// Greedy rather than globally optimal, which keeps the pairing cheap and
// predictable. Ties keep squad order.
func transferOut(squad domain.Squad, pos domain.Position, scores map[int]float64, taken map[int]bool) (domain.Player, bool) {
	var (
		out   domain.Player
		found bool
	)
	for _, p := range squad.ByPosition(pos) {
		if taken[p.ID] {
			continue
		}
		if !found || scores[p.ID] < scores[out.ID] {
			out = p
			found = true
		}
	}
	return out, found
}

// sortCombinations orders recommendations by expected gain, breaking
// ties on confidence then risk so equal-gain sets have a stable order.
func sortCombinations(combos []Combination) {
	sort.SliceStable(combos, func(i, j int) bool {
		if combos[i].TotalGain != combos[j].TotalGain {
			return combos[i].TotalGain > combos[j].TotalGain
		}
		if combos[i].Confidence != combos[j].Confidence {
			return combos[i].Confidence > combos[j].Confidence
		}
		return combos[i].Risk < combos[j].Risk
	})
}

// combinations visits the k-element index subsets of [0, n) in
// lexicographic order, stopping early when visit returns false. The
// index slice is reused between calls.
func combinations(n, k int, visit func(idx []int) bool) {
	if k <= 0 || k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		if !visit(idx) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
