package domain

// Fixture is one upcoming match seen from the perspective of the team
// whose run is being evaluated.
type Fixture struct {
	Gameweek int    `json:"gameweek"`
	Opponent string `json:"opponent,omitempty"`

	// OpponentStrength is on the same 0-100 scale as Team.Strength.
	OpponentStrength float64 `json:"opponent_strength"`

	// Difficulty is the FPL-style 1-5 rating, hard fixtures high.
	Difficulty float64 `json:"difficulty"`

	Home bool `json:"home"`

	// Double marks a gameweek where the team plays twice, Blank one
	// where it does not play at all.
	Double bool `json:"double,omitempty"`
	Blank  bool `json:"blank,omitempty"`
}
