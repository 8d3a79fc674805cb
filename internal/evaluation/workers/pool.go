// Package workers provides a bounded goroutine pool for parallel player
// scoring. Scoring is read-only over immutable inputs, so batches fan out
// freely; results are collected back in input order.
package workers

import (
	"sync"

	"github.com/aristath/gaffer/internal/domain"
	"github.com/aristath/gaffer/internal/evaluation/progress"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// ScoreFunc evaluates a single player.
type ScoreFunc func(p domain.Player) (scoring.ScoreResult, error)

// Outcome pairs one player's evaluation with any scoring failure.
type Outcome struct {
	Player domain.Player
	Result scoring.ScoreResult
	Err    error
}

// WorkerPool manages a pool of worker goroutines for parallel player scoring.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = 10 // Default to 10 workers
	}
	return &WorkerPool{
		numWorkers: numWorkers,
	}
}

// ScoreBatch evaluates players in parallel using the worker pool.
//
// This is the main entry point for parallel scoring. It distributes
// players across worker goroutines and collects results in input order,
// so callers can rely on a stable correspondence with the batch.
//
// The progress callback, if non-nil, is invoked once per completed
// evaluation from the collecting goroutine.
func (wp *WorkerPool) ScoreBatch(players []domain.Player, score ScoreFunc, cb progress.Callback) []Outcome {
	numPlayers := len(players)
	if numPlayers == 0 {
		return []Outcome{}
	}

	jobs := make(chan jobItem, numPlayers)
	results := make(chan resultItem, numPlayers)

	var wg sync.WaitGroup
	numActualWorkers := wp.numWorkers
	if numPlayers < numActualWorkers {
		numActualWorkers = numPlayers // Don't spawn more workers than players
	}

	for i := 0; i < numActualWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(jobs, results, score)
		}()
	}

	for idx, p := range players {
		jobs <- jobItem{index: idx, player: p}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	resultSlice := make([]Outcome, numPlayers)
	completed := 0
	for result := range results {
		resultSlice[result.index] = result.outcome
		completed++
		progress.Call(cb, completed, numPlayers, "scoring players")
	}

	return resultSlice
}

// jobItem represents a single scoring job.
type jobItem struct {
	index  int
	player domain.Player
}

// resultItem represents the result of a scoring job.
type resultItem struct {
	index   int
	outcome Outcome
}

// worker is the worker goroutine that processes scoring jobs.
func worker(jobs <-chan jobItem, results chan<- resultItem, score ScoreFunc) {
	for job := range jobs {
		result, err := score(job.player)

		results <- resultItem{
			index: job.index,
			outcome: Outcome{
				Player: job.player,
				Result: result,
				Err:    err,
			},
		}
	}
}
