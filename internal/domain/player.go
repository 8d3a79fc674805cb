// Package domain provides the core player/team/fixture records consumed by
// the scoring pipeline, the transfer optimizer and the backtest engine.
//
// Records are immutable snapshots: collaborators (scrapers, repositories, API
// layer) build them once per evaluation and nothing downstream mutates them.
package domain

import "fmt"

// Position is a player's FPL position (element types 1-4).
type Position string

const (
	Goalkeeper Position = "GK"
	Defender   Position = "DEF"
	Midfielder Position = "MID"
	Forward    Position = "FWD"
)

// Positions lists all positions in squad display order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// ParsePosition converts a position string ("GK", "DEF", ...) to a Position.
func ParsePosition(s string) (Position, error) {
	switch Position(s) {
	case Goalkeeper, Defender, Midfielder, Forward:
		return Position(s), nil
	}
	return "", fmt.Errorf("unknown position %q", s)
}

// PositionFromElementType converts an FPL element type (1=GK, 2=DEF, 3=MID,
// 4=FWD) to a Position.
func PositionFromElementType(t int) (Position, error) {
	switch t {
	case 1:
		return Goalkeeper, nil
	case 2:
		return Defender, nil
	case 3:
		return Midfielder, nil
	case 4:
		return Forward, nil
	}
	return "", fmt.Errorf("unknown element type %d", t)
}

// Valid reports whether p is one of the four known positions.
func (p Position) Valid() bool {
	switch p {
	case Goalkeeper, Defender, Midfielder, Forward:
		return true
	}
	return false
}

// Player is an immutable snapshot of one player's season-to-date statistics,
// normalized from whichever collaborator supplied it.
type Player struct {
	// Identity
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Team     string   `json:"team"`
	TeamID   int      `json:"team_id,omitempty"`
	Position Position `json:"position"`

	// Market data
	Price             float64 `json:"price"`
	SelectedByPercent float64 `json:"selected_by_percent"`
	TransfersIn       int     `json:"transfers_in"`
	TransfersOut      int     `json:"transfers_out"`

	// Season aggregates
	Form        float64 `json:"form"`
	TotalPoints int     `json:"total_points"`
	GamesPlayed int     `json:"games_played"`
	Minutes     int     `json:"minutes"`

	// Per-stat counters
	GoalsScored     int     `json:"goals_scored"`
	Assists         int     `json:"assists"`
	CleanSheets     int     `json:"clean_sheets"`
	GoalsConceded   int     `json:"goals_conceded"`
	OwnGoals        int     `json:"own_goals"`
	PenaltiesSaved  int     `json:"penalties_saved"`
	PenaltiesMissed int     `json:"penalties_missed"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	Saves           int     `json:"saves"`
	Bonus           int     `json:"bonus"`
	BPS             int     `json:"bps"`
	Influence       float64 `json:"influence"`
	Creativity      float64 `json:"creativity"`
	Threat          float64 `json:"threat"`
	ICTIndex        float64 `json:"ict_index"`

	// Availability context (optional; zero values mean "nothing known")
	InjuryHistory     []string `json:"injury_history,omitempty"`
	Age               int      `json:"age,omitempty"`
	RotationRisk      bool     `json:"rotation_risk,omitempty"`
	FixtureCongestion int      `json:"fixture_congestion,omitempty"`
}

// PointsPerGame returns total points divided by games played, 0 when the
// player has not played.
func (p Player) PointsPerGame() float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return float64(p.TotalPoints) / float64(p.GamesPlayed)
}

// PerGame divides a season counter by games played, 0 when the player has
// not played.
func (p Player) PerGame(stat float64) float64 {
	if p.GamesPlayed == 0 {
		return 0
	}
	return stat / float64(p.GamesPlayed)
}
