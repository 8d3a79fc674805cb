// Package evaluation orchestrates batch player scoring: it resolves each
// player's club record, fans evaluations across the worker pool, and
// produces deterministically ordered rankings for the API, the transfer
// optimizer, and the scheduled rescore job.
package evaluation

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/evaluation/workers"
	"github.com/aristath/gaffer/internal/modules/scoring"
	"github.com/aristath/gaffer/internal/modules/scoring/scorers"
)

// Neutral club context used when a player's team has no record: a
// mid-table side of average strength.
const (
	neutralTeamStrength   = 50.0
	neutralLeaguePosition = 10
)

// TeamSource resolves a club name to its season record.
type TeamSource interface {
	TeamByName(name string) (domain.Team, bool)
}

// Service scores players with full club context.
type Service struct {
	scorer *scorers.ImpactScorer
	teams  TeamSource
	pool   *workers.WorkerPool
	log    zerolog.Logger
}

// NewService builds an evaluation service around an impact scorer.
func NewService(scorer *scorers.ImpactScorer, teams TeamSource, pool *workers.WorkerPool, log zerolog.Logger) *Service {
	return &Service{
		scorer: scorer,
		teams:  teams,
		pool:   pool,
		log:    log.With().Str("component", "evaluation").Logger(),
	}
}

// ScorePlayer evaluates one player against their club's season record.
// A player whose club has no record is scored against the neutral team;
// a record without a usable id is rejected.
func (s *Service) ScorePlayer(p domain.Player) (scoring.ScoreResult, error) {
	if p.ID <= 0 {
		return scoring.ScoreResult{}, fmt.Errorf("player %q: id must be positive", p.Name)
	}

	team, ok := s.lookupTeam(p.Team)
	if !ok {
		s.log.Warn().
			Str("player", p.Name).
			Str("team", p.Team).
			Msg("no club record, scoring against neutral team")
	}

	return s.scorer.Score(p, team), nil
}

// ScorePool evaluates a pool of players in parallel, preserving input
// order. Records that fail to score are logged and dropped so one bad
// row never aborts the batch.
func (s *Service) ScorePool(players []domain.Player, cb progress.Callback) []scoring.ScoreResult {
	outcomes := s.pool.ScoreBatch(players, s.ScorePlayer, cb)

	results := make([]scoring.ScoreResult, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			s.log.Warn().
				Err(outcome.Err).
				Str("player", outcome.Player.Name).
				Msg("skipping player that failed to score")
			continue
		}
		results = append(results, outcome.Result)
	}
	return results
}

// RankPool scores the pool and orders results by final score descending.
// Ties break on player name, so parallel execution never changes the
// output ordering.
func (s *Service) RankPool(players []domain.Player, cb progress.Callback) []scoring.ScoreResult {
	results := s.ScorePool(players, cb)
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].FinalScore != results[j].FinalScore {
			return results[i].FinalScore > results[j].FinalScore
		}
		return results[i].PlayerName < results[j].PlayerName
	})
	return results
}

func (s *Service) lookupTeam(name string) (domain.Team, bool) {
	if s.teams != nil {
		if team, ok := s.teams.TeamByName(name); ok {
			return team, true
		}
	}
	return domain.Team{
		Name:           name,
		Strength:       neutralTeamStrength,
		LeaguePosition: neutralLeaguePosition,
	}, false
}
