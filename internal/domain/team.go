package domain

// Team is an immutable snapshot of one club's season-to-date standing.
type Team struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`

	// Strength index on the 0-100 scale used by the provider.
	Strength float64 `json:"strength"`

	// Table position and results
	LeaguePosition int `json:"league_position"`
	Played         int `json:"played"`
	Points         int `json:"points"`
	GoalsFor       int `json:"goals_for"`
	GoalsAgainst   int `json:"goals_against"`

	// Form holds the most recent results first, e.g. "WWDLL".
	Form string `json:"form"`

	// Expected-goal aggregates, when the provider supplies them.
	XGFor     float64 `json:"xg_for,omitempty"`
	XGAgainst float64 `json:"xg_against,omitempty"`
}

// GoalsForPerGame returns goals scored per match, guarding an early-season
// zero games played.
func (t Team) GoalsForPerGame() float64 {
	if t.Played == 0 {
		return 0
	}
	return float64(t.GoalsFor) / float64(t.Played)
}

// GoalsAgainstPerGame returns goals conceded per match.
func (t Team) GoalsAgainstPerGame() float64 {
	if t.Played == 0 {
		return 0
	}
	return float64(t.GoalsAgainst) / float64(t.Played)
}

// PointsPerGame returns league points per match.
func (t Team) PointsPerGame() float64 {
	if t.Played == 0 {
		return 0
	}
	return float64(t.Points) / float64(t.Played)
}
