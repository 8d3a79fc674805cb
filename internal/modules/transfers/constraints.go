package transfers

import (
	"fmt"
	"sort"

	"github.com/aristath/gaffer/internal/domain"
)

// Formation is a starting-eleven shape, written defenders-midfielders-
// forwards.
type Formation string

const (
	Formation343 Formation = "3-4-3"
	Formation352 Formation = "3-5-2"
	Formation433 Formation = "4-3-3"
	Formation442 Formation = "4-4-2"
	Formation451 Formation = "4-5-1"
	Formation532 Formation = "5-3-2"
	Formation541 Formation = "5-4-1"
)

// ValidFormations lists the legal FPL starting shapes.
var ValidFormations = []Formation{
	Formation343, Formation352, Formation433, Formation442,
	Formation451, Formation532, Formation541,
}

// formationShapes maps each legal formation to its outfield counts.
var formationShapes = map[Formation][3]int{
	Formation343: {3, 4, 3},
	Formation352: {3, 5, 2},
	Formation433: {4, 3, 3},
	Formation442: {4, 4, 2},
	Formation451: {4, 5, 1},
	Formation532: {5, 3, 2},
	Formation541: {5, 4, 1},
}

// SquadRules capture FPL squad composition limits.
type SquadRules struct {
	SquadSize      int
	MaxPerTeam     int
	MinGoalkeepers int
	MaxGoalkeepers int
	MinDefenders   int
	MaxDefenders   int
	MinMidfielders int
	MaxMidfielders int
	MinForwards    int
	MaxForwards    int
	BudgetLimit    float64
	MaxPlayerValue float64
}

// DefaultSquadRules returns the standard FPL squad limits.
func DefaultSquadRules() SquadRules {
	return SquadRules{
		SquadSize:      domain.SquadSize,
		MaxPerTeam:     3,
		MinGoalkeepers: 2,
		MaxGoalkeepers: 2,
		MinDefenders:   3,
		MaxDefenders:   5,
		MinMidfielders: 3,
		MaxMidfielders: 5,
		MinForwards:    1,
		MaxForwards:    3,
		BudgetLimit:    100.0,
		MaxPlayerValue: 15.0,
	}
}

// TransferRules capture per-gameweek transfer limits.
type TransferRules struct {
	FreeTransfers     int
	MaxPerGameweek    int
	HitCost           int
	CaptainMultiplier float64
	BenchSize         int
}

// DefaultTransferRules returns the standard FPL transfer limits.
func DefaultTransferRules() TransferRules {
	return TransferRules{
		FreeTransfers:     1,
		MaxPerGameweek:    15,
		HitCost:           4,
		CaptainMultiplier: 2.0,
		BenchSize:         4,
	}
}

// SquadStats summarizes a validated squad.
type SquadStats struct {
	TotalPlayers    int                     `json:"total_players"`
	PositionCounts  map[domain.Position]int `json:"position_counts"`
	TeamCounts      map[string]int          `json:"team_counts"`
	TotalCost       float64                 `json:"total_cost"`
	Formation       Formation               `json:"formation"`
	BudgetRemaining float64                 `json:"budget_remaining"`
}

// ValidationResult reports squad-rule compliance plus contextual stats.
type ValidationResult struct {
	Valid    bool       `json:"is_valid"`
	Errors   []string   `json:"errors"`
	Warnings []string   `json:"warnings"`
	Stats    SquadStats `json:"squad_stats"`
}

// TransferValidation reports rule compliance for a set of proposed moves.
type TransferValidation struct {
	Valid         bool     `json:"is_valid"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
	TransferCost  int      `json:"transfer_cost"`
	TransfersMade int      `json:"transfers_made"`
}

// Checker validates squads and transfer sets against FPL rules.
type Checker struct {
	squad    SquadRules
	transfer TransferRules
}

// NewChecker creates a rule checker.
func NewChecker(squad SquadRules, transfer TransferRules) *Checker {
	return &Checker{squad: squad, transfer: transfer}
}

// ValidateSquad checks a full squad against composition rules: size,
// per-position bounds, per-team cap, total cost and per-player price.
// Low budget usage and low club diversity are reported as warnings, not
// errors.
func (c *Checker) ValidateSquad(s domain.Squad) ValidationResult {
	result := ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}}

	counts := s.PositionCounts()
	teams := s.TeamCounts()
	totalCost := s.TotalValue()

	total := len(s.Players)
	if total != c.squad.SquadSize {
		result.fail("Squad must have exactly %d players, got %d", c.squad.SquadSize, total)
	}

	positionBounds := []struct {
		position domain.Position
		label    string
		min, max int
	}{
		{domain.Goalkeeper, "goalkeepers", c.squad.MinGoalkeepers, c.squad.MaxGoalkeepers},
		{domain.Defender, "defenders", c.squad.MinDefenders, c.squad.MaxDefenders},
		{domain.Midfielder, "midfielders", c.squad.MinMidfielders, c.squad.MaxMidfielders},
		{domain.Forward, "forwards", c.squad.MinForwards, c.squad.MaxForwards},
	}
	for _, bound := range positionBounds {
		count := counts[bound.position]
		if count < bound.min {
			result.fail("Must have at least %d %s, got %d", bound.min, bound.label, count)
		}
		if count > bound.max {
			result.fail("Can have at most %d %s, got %d", bound.max, bound.label, count)
		}
	}

	for _, team := range sortedKeys(teams) {
		if teams[team] > c.squad.MaxPerTeam {
			result.fail("Can have at most %d players from %s, got %d", c.squad.MaxPerTeam, team, teams[team])
		}
	}

	if totalCost > c.squad.BudgetLimit {
		result.fail("Squad cost (%.1f) exceeds budget limit (%.1f)", totalCost, c.squad.BudgetLimit)
	}

	for _, p := range s.Players {
		if p.Price > c.squad.MaxPlayerValue {
			result.fail("Player %s price (%.1f) exceeds maximum player value (%.1f)", p.Name, p.Price, c.squad.MaxPlayerValue)
		}
	}

	result.Stats = SquadStats{
		TotalPlayers:    total,
		PositionCounts:  counts,
		TeamCounts:      teams,
		TotalCost:       totalCost,
		Formation:       c.FormationFor(counts),
		BudgetRemaining: c.squad.BudgetLimit - totalCost,
	}

	if totalCost < c.squad.BudgetLimit*0.9 {
		result.warn("Using only %.1f of %.1f budget", totalCost, c.squad.BudgetLimit)
	}
	if len(teams) > 0 && len(teams) < 8 {
		result.warn("Only %d teams represented, consider more diversity", len(teams))
	}

	return result
}

// CheckSquadLimits is the narrow check used during combination search:
// position counts inside their bounds and no club over the per-team cap.
func (c *Checker) CheckSquadLimits(s domain.Squad) bool {
	counts := s.PositionCounts()
	if counts[domain.Goalkeeper] < c.squad.MinGoalkeepers || counts[domain.Goalkeeper] > c.squad.MaxGoalkeepers {
		return false
	}
	if counts[domain.Defender] < c.squad.MinDefenders || counts[domain.Defender] > c.squad.MaxDefenders {
		return false
	}
	if counts[domain.Midfielder] < c.squad.MinMidfielders || counts[domain.Midfielder] > c.squad.MaxMidfielders {
		return false
	}
	if counts[domain.Forward] < c.squad.MinForwards || counts[domain.Forward] > c.squad.MaxForwards {
		return false
	}
	for _, count := range s.TeamCounts() {
		if count > c.squad.MaxPerTeam {
			return false
		}
	}
	return true
}

// ValidateTransfers checks a proposed set of moves: the per-gameweek
// cap, hit cost over the free allowance, per-move sanity, and the
// resulting squad's composition.
func (c *Checker) ValidateTransfers(s domain.Squad, transfers []Transfer) TransferValidation {
	result := TransferValidation{
		Valid:         true,
		Errors:        []string{},
		Warnings:      []string{},
		TransfersMade: len(transfers),
	}

	if len(transfers) == 0 {
		return result
	}

	if len(transfers) > c.transfer.MaxPerGameweek {
		result.Valid = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Maximum %d transfers allowed, got %d", c.transfer.MaxPerGameweek, len(transfers)))
	}

	if extra := len(transfers) - c.transfer.FreeTransfers; extra > 0 {
		result.TransferCost = extra * c.transfer.HitCost
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Using %d extra transfers, cost: %d points", extra, result.TransferCost))
	}

	resulting := s
	for i, transfer := range transfers {
		number := i + 1

		if transfer.Out.ID == 0 || transfer.In.ID == 0 {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Transfer %d: both outgoing and incoming players must be specified", number))
			continue
		}
		if transfer.Out.ID == transfer.In.ID {
			result.Valid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("Transfer %d: cannot transfer a player for themselves", number))
		}
		if transfer.Out.Team == transfer.In.Team {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Transfer %d: transferring within the same club (%s)", number, transfer.Out.Team))
		}
		if transfer.In.Price > transfer.Out.Price*1.5 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Transfer %d: significant price increase (%.1f -> %.1f)", number, transfer.Out.Price, transfer.In.Price))
		}

		resulting = resulting.Replace(transfer.Out.ID, transfer.In)
	}

	squadResult := c.ValidateSquad(resulting)
	if !squadResult.Valid {
		result.Valid = false
		result.Errors = append(result.Errors, squadResult.Errors...)
	}
	result.Warnings = append(result.Warnings, squadResult.Warnings...)

	return result
}

// FormationFor derives the formation from full-squad position counts.
// Counts that match no legal shape fall back to 3-4-3.
func (c *Checker) FormationFor(counts map[domain.Position]int) Formation {
	shape := [3]int{counts[domain.Defender], counts[domain.Midfielder], counts[domain.Forward]}
	for _, formation := range ValidFormations {
		if formationShapes[formation] == shape {
			return formation
		}
	}
	return Formation343
}

// FormationRequirements returns the squad counts a formation implies,
// including both goalkeepers.
func FormationRequirements(f Formation) map[domain.Position]int {
	shape, ok := formationShapes[f]
	if !ok {
		return map[domain.Position]int{}
	}
	return map[domain.Position]int{
		domain.Goalkeeper: 2,
		domain.Defender:   shape[0],
		domain.Midfielder: shape[1],
		domain.Forward:    shape[2],
	}
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
