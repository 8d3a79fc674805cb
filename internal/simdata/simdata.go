// Package simdata generates the simulated inputs the scoring and
// backtest pipelines need where real per-gameweek data is not wired in:
// recent form histories, upcoming fixture runs, and match outcomes.
//
// All generators are seeded. Each entity draws from its own sub-seeded
// stream, so scoring the same player twice yields identical numbers and
// adding a player to a batch never shifts anyone else's draw.
package simdata

import (
	"hash/fnv"
	"strconv"
)

// SubSeed derives a deterministic seed for one entity's stream from the
// base seed, a scope name, and the entity's identifiers.
func SubSeed(base int64, scope string, ids ...int) int64 {
	h := fnv.New64a()
	h.Write([]byte(scope))
	for _, id := range ids {
		h.Write([]byte{0})
		h.Write([]byte(strconv.Itoa(id)))
	}
	return base ^ int64(h.Sum64())
}
