package domain

// GameweekPerformance is one player's realized output for a single gameweek.
// Collaborators supply real performances when they have them; the backtest
// engine falls back to the seeded generator in internal/simdata otherwise.
type GameweekPerformance struct {
	PlayerID   int     `json:"player_id"`
	Gameweek   int     `json:"gameweek"`
	Points     float64 `json:"points"`
	Minutes    int     `json:"minutes"`
	Goals      int     `json:"goals"`
	Assists    int     `json:"assists"`
	CleanSheet bool    `json:"clean_sheet"`
	Bonus      int     `json:"bonus"`
}
