// Package snapshots persists scoring output and completed backtest runs.
// The scoring, transfers and backtest packages never touch the store;
// the API layer and the scheduler jobs write through this repository.
package snapshots

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/gaffer/internal/modules/backtest"
	"github.com/aristath/gaffer/internal/modules/scoring"
)

// Snapshot is one player's stored score for a gameweek.
type Snapshot struct {
	PlayerID   int               `json:"player_id"`
	PlayerName string            `json:"player_name"`
	Position   string            `json:"position"`
	Gameweek   int               `json:"gameweek"`
	FinalScore float64           `json:"final_score"`
	Confidence float64           `json:"confidence"`
	SubScores  scoring.SubScores `json:"sub_scores"`
	CreatedAt  time.Time         `json:"created_at"`
}

// RunSummary is a stored backtest run without its full result payload,
// used for listings.
type RunSummary struct {
	ID                string    `json:"id"`
	Strategy          string    `json:"strategy"`
	StartGameweek     int       `json:"start_gameweek"`
	EndGameweek       int       `json:"end_gameweek"`
	TotalPoints       float64   `json:"total_points"`
	AveragePoints     float64   `json:"average_points_per_gameweek"`
	TotalTransfers    int       `json:"total_transfers"`
	TotalTransferHits int       `json:"total_transfer_hits"`
	FinalSquadValue   float64   `json:"final_squad_value"`
	CreatedAt         time.Time `json:"created_at"`
}

const snapshotColumns = `player_id, player_name, position, gameweek,
final_score, confidence, sub_scores, created_at`

const runColumns = `id, strategy, start_gameweek, end_gameweek, total_points,
average_points, total_transfers, total_transfer_hits, final_squad_value, created_at`

// Repository handles snapshot database operations
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new snapshot repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "snapshots").Logger(),
	}
}

// SaveScores upserts one gameweek's score results in a single
// transaction. A re-score of the same gameweek replaces earlier rows.
func (r *Repository) SaveScores(gameweek int, results []scoring.ScoreResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR REPLACE INTO score_snapshots
		(player_id, player_name, position, gameweek, final_score, confidence, sub_scores)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	for _, result := range results {
		subScores, err := json.Marshal(result.SubScores)
		if err != nil {
			return fmt.Errorf("failed to marshal sub-scores for player %d: %w", result.PlayerID, err)
		}
		if _, err := tx.Exec(query,
			result.PlayerID,
			result.PlayerName,
			string(result.Position),
			gameweek,
			result.FinalScore,
			result.Confidence,
			string(subScores),
		); err != nil {
			return fmt.Errorf("failed to upsert snapshot for player %d: %w", result.PlayerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Info().Int("gameweek", gameweek).Int("players", len(results)).Msg("Score snapshots saved")
	return nil
}

// ScoresByGameweek returns the stored snapshots for one gameweek,
// highest score first.
func (r *Repository) ScoresByGameweek(gameweek int) ([]Snapshot, error) {
	query := "SELECT " + snapshotColumns + ` FROM score_snapshots
		WHERE gameweek = ?
		ORDER BY final_score DESC, player_name ASC`

	rows, err := r.db.Query(query, gameweek)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// PlayerHistory returns one player's stored scores across gameweeks,
// oldest first.
func (r *Repository) PlayerHistory(playerID int) ([]Snapshot, error) {
	query := "SELECT " + snapshotColumns + ` FROM score_snapshots
		WHERE player_id = ?
		ORDER BY gameweek ASC`

	rows, err := r.db.Query(query, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player history: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating player history: %w", err)
	}

	return snapshots, nil
}

// SaveRun stores a completed backtest run with its full result payload.
func (r *Repository) SaveRun(result backtest.Result) error {
	if result.RunID == "" {
		return fmt.Errorf("run id is required")
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal run result: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT OR REPLACE INTO backtest_runs
		(id, strategy, start_gameweek, end_gameweek, total_points, average_points,
		 total_transfers, total_transfer_hits, final_squad_value, result_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if _, err := tx.Exec(query,
		result.RunID,
		string(result.Strategy.Strategy),
		result.StartGameweek,
		result.EndGameweek,
		result.TotalPoints,
		result.AveragePoints,
		result.TotalTransfers,
		result.TotalTransferHits,
		result.FinalSquadValue,
		string(payload),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.log.Info().Str("run_id", result.RunID).Msg("Backtest run saved")
	return nil
}

// Runs lists stored backtest runs, newest first.
func (r *Repository) Runs(limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := "SELECT " + runColumns + ` FROM backtest_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var run RunSummary
		var createdAt string
		if err := rows.Scan(
			&run.ID,
			&run.Strategy,
			&run.StartGameweek,
			&run.EndGameweek,
			&run.TotalPoints,
			&run.AveragePoints,
			&run.TotalTransfers,
			&run.TotalTransferHits,
			&run.FinalSquadValue,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt = parseStoredTime(createdAt)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// Run loads one stored run's full result by id. A missing id returns
// nil without error.
func (r *Repository) Run(id string) (*backtest.Result, error) {
	var payload string
	err := r.db.QueryRow("SELECT result_json FROM backtest_runs WHERE id = ?", id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	var result backtest.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run %s: %w", id, err)
	}

	return &result, nil
}

// scanSnapshot scans a database row into a Snapshot struct
func scanSnapshot(rows *sql.Rows) (Snapshot, error) {
	var snapshot Snapshot
	var subScores string
	var createdAt string

	if err := rows.Scan(
		&snapshot.PlayerID,
		&snapshot.PlayerName,
		&snapshot.Position,
		&snapshot.Gameweek,
		&snapshot.FinalScore,
		&snapshot.Confidence,
		&subScores,
		&createdAt,
	); err != nil {
		return snapshot, err
	}

	if err := json.Unmarshal([]byte(subScores), &snapshot.SubScores); err != nil {
		return snapshot, fmt.Errorf("failed to unmarshal sub-scores: %w", err)
	}
	snapshot.CreatedAt = parseStoredTime(createdAt)

	return snapshot, nil
}

// parseStoredTime reads SQLite's datetime('now') format; zero time when
// the stored value is malformed.
func parseStoredTime(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		return time.Time{}
	}
	return t
}
