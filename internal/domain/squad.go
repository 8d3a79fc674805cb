package domain

// SquadSize is the number of players a valid FPL squad carries.
const SquadSize = 15

// Squad is the 15-player roster a manager holds during a gameweek.
type Squad struct {
	Players []Player `json:"players"`
}

// PositionCounts returns how many squad players occupy each position.
func (s Squad) PositionCounts() map[Position]int {
	counts := make(map[Position]int, len(Positions))
	for _, p := range s.Players {
		counts[p.Position]++
	}
	return counts
}

// TeamCounts returns how many squad players each real-world club contributes.
func (s Squad) TeamCounts() map[string]int {
	counts := make(map[string]int)
	for _, p := range s.Players {
		counts[p.Team]++
	}
	return counts
}

// TotalValue returns the summed price of all squad players.
func (s Squad) TotalValue() float64 {
	var total float64
	for _, p := range s.Players {
		total += p.Price
	}
	return total
}

// ByPosition returns the squad players occupying the given position.
func (s Squad) ByPosition(pos Position) []Player {
	var players []Player
	for _, p := range s.Players {
		if p.Position == pos {
			players = append(players, p)
		}
	}
	return players
}

// Contains reports whether a player with the given id is in the squad.
func (s Squad) Contains(playerID int) bool {
	for _, p := range s.Players {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// Replace returns a copy of the squad with the outgoing player swapped for
// the incoming one. The original squad is left untouched.
func (s Squad) Replace(outID int, in Player) Squad {
	players := make([]Player, 0, len(s.Players))
	for _, p := range s.Players {
		if p.ID == outID {
			players = append(players, in)
			continue
		}
		players = append(players, p)
	}
	return Squad{Players: players}
}
