package backtest

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/modules/transfers"
	"github.com/aristath/gaffer/internal/simdata"
)

// startingElevenSize is the number of squad players whose realized
// points count toward the gameweek total.
const startingElevenSize = 11

// Optimizer proposes transfer combinations for a squad.
type Optimizer interface {
	Optimize(req transfers.OptimizeRequest) ([]transfers.Combination, error)
}

// Engine replays a strategy across gameweeks. The loop is strictly
// sequential: each week's squad depends on the previous week's moves.
type Engine struct {
	optimizer Optimizer
	rules     transfers.TransferRules
	log       zerolog.Logger
}

// NewEngine builds a backtest engine around a transfer optimizer.
func NewEngine(optimizer Optimizer, log zerolog.Logger) *Engine {
	return &Engine{
		optimizer: optimizer,
		rules:     transfers.DefaultTransferRules(),
		log:       log.With().Str("component", "backtest").Logger(),
	}
}

// Run replays the configured strategy over the gameweek range. Each
// gameweek scores the current squad's realized performance, asks the
// optimizer for moves, applies them with hit penalties, and records the
// week. Transfer-decision failures are contained to their week.
func (e *Engine) Run(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}

	// Seed 0 asks for a fresh draw. The drawn value lands on the
	// recorded config, so any exploratory run can still be replayed.
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	performance := cfg.Performance
	if performance == nil {
		performance = simdata.NewPerformanceRun(cfg.Seed)
	}

	e.log.Info().
		Int("start_gameweek", cfg.StartGameweek).
		Int("end_gameweek", cfg.EndGameweek).
		Str("strategy", string(cfg.Strategy)).
		Msg("starting backtest")

	squad := cfg.InitialSquad
	weeks := cfg.EndGameweek - cfg.StartGameweek + 1
	results := make([]GameweekResult, 0, weeks)

	var totalPoints float64
	var totalTransfers, totalHits int

	for gameweek := cfg.StartGameweek; gameweek <= cfg.EndGameweek; gameweek++ {
		realized := realizedPerformances(squad, gameweek, performance)
		breakdown := scoreGameweek(squad, realized)

		moves := e.decideTransfers(squad, cfg, gameweek)
		hits := transferHits(len(moves), e.rules.HitCost)
		for _, move := range moves {
			squad = squad.Replace(move.Out.ID, move.In)
		}

		weekTotal := breakdown.squad - float64(hits)

		results = append(results, GameweekResult{
			Gameweek:      gameweek,
			SquadPoints:   breakdown.squad,
			BenchPoints:   breakdown.bench,
			CaptainPoints: breakdown.captain,
			TransfersMade: len(moves),
			TransferHits:  hits,
			TotalPoints:   weekTotal,
			SquadValue:    squad.TotalValue(),
			Transfers:     moves,
			Captain:       breakdown.captainName,
			ViceCaptain:   breakdown.viceName,
		})

		totalPoints += weekTotal
		totalTransfers += len(moves)
		totalHits += hits

		e.log.Info().
			Int("gameweek", gameweek).
			Float64("total", weekTotal).
			Float64("squad", breakdown.squad).
			Float64("bench", breakdown.bench).
			Int("transfers", len(moves)).
			Int("hits", hits).
			Msg("gameweek recorded")
	}

	result := Result{
		RunID:              uuid.New().String(),
		StartGameweek:      cfg.StartGameweek,
		EndGameweek:        cfg.EndGameweek,
		TotalPoints:        totalPoints,
		AveragePoints:      totalPoints / float64(weeks),
		TotalTransfers:     totalTransfers,
		TotalTransferHits:  totalHits,
		FinalSquadValue:    squad.TotalValue(),
		GameweekResults:    results,
		PerformanceMetrics: RunMetrics(results),
		Strategy:           cfg,
	}

	e.log.Info().
		Str("run_id", result.RunID).
		Float64("total_points", result.TotalPoints).
		Float64("average", result.AveragePoints).
		Int("transfers", result.TotalTransfers).
		Msg("backtest complete")

	return result, nil
}

// CompareStrategies replays the same configuration once per strategy.
// The shared seed means every strategy faces identical simulated
// gameweeks, so differences come from decisions alone. A strategy whose
// run fails is logged and left out of the comparison.
func (e *Engine) CompareStrategies(cfg Config, strategies []transfers.Strategy) map[transfers.Strategy]Result {
	// Resolve a requested fresh seed once, before the loop, or each
	// strategy would face different gameweeks.
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	results := make(map[transfers.Strategy]Result, len(strategies))
	for _, strategy := range strategies {
		runCfg := cfg
		runCfg.Strategy = strategy

		result, err := e.Run(runCfg)
		if err != nil {
			e.log.Error().
				Err(err).
				Str("strategy", string(strategy)).
				Msg("strategy comparison run failed")
			continue
		}
		results[strategy] = result
	}
	return results
}

// realizedPerformances collects each squad player's outcome for the
// gameweek, keyed by player id.
func realizedPerformances(squad domain.Squad, gameweek int, source PerformanceSource) map[int]domain.GameweekPerformance {
	realized := make(map[int]domain.GameweekPerformance, len(squad.Players))
	for _, p := range squad.Players {
		realized[p.ID] = source.PlayerPerformance(p, gameweek)
	}
	return realized
}

// pointsBreakdown splits a gameweek into the contributions recorded on
// GameweekResult.
type pointsBreakdown struct {
	squad       float64
	bench       float64
	captain     float64
	captainName string
	viceName    string
}

// scoreGameweek turns realized outcomes into the week's breakdown. The
// starting eleven are the top realized scorers; the highest is captain
// and counts double, with the vice doubled instead when the captain
// did not play. Everyone else is bench, tracked but never totalled.
func scoreGameweek(squad domain.Squad, realized map[int]domain.GameweekPerformance) pointsBreakdown {
	type entry struct {
		player domain.Player
		perf   domain.GameweekPerformance
	}

	entries := make([]entry, 0, len(squad.Players))
	for _, p := range squad.Players {
		entries = append(entries, entry{player: p, perf: realized[p.ID]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].perf.Points != entries[j].perf.Points {
			return entries[i].perf.Points > entries[j].perf.Points
		}
		return entries[i].player.Name < entries[j].player.Name
	})

	var breakdown pointsBreakdown
	for i, en := range entries {
		if i < startingElevenSize {
			breakdown.squad += en.perf.Points
		} else {
			breakdown.bench += en.perf.Points
		}
	}

	if len(entries) == 0 {
		return breakdown
	}
	breakdown.captainName = entries[0].player.Name
	if len(entries) > 1 {
		breakdown.viceName = entries[1].player.Name
	}

	// Captain double, vice fallback on a no-show.
	switch {
	case entries[0].perf.Minutes > 0:
		breakdown.captain = entries[0].perf.Points
	case len(entries) > 1:
		breakdown.captain = entries[1].perf.Points
	}
	breakdown.squad += breakdown.captain

	return breakdown
}

// decideTransfers asks the optimizer for this week's moves and applies
// the confidence and risk gates. Any failure holds the squad: the run
// must survive a bad week's decision.
func (e *Engine) decideTransfers(squad domain.Squad, cfg Config, gameweek int) []transfers.Transfer {
	if cfg.MaxTransfersPerWeek <= 0 {
		return nil
	}

	combos, err := e.optimizer.Optimize(transfers.OptimizeRequest{
		Squad:              squad,
		Pool:               cfg.Pool,
		Budget:             cfg.Budget,
		TransfersAvailable: cfg.MaxTransfersPerWeek,
		Strategy:           cfg.Strategy,
	})
	if err != nil {
		e.log.Warn().
			Err(err).
			Int("gameweek", gameweek).
			Msg("transfer decision failed, holding squad")
		return nil
	}

	for _, combo := range combos {
		if combo.Confidence >= cfg.MinConfidence && combo.Risk <= cfg.MaxRisk {
			return combo.Transfers
		}
	}
	return nil
}

// transferHits prices the moves beyond the single free transfer.
func transferHits(count, hitCost int) int {
	if count <= 1 {
		return 0
	}
	return (count - 1) * hitCost
}
