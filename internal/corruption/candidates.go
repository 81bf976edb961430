package corruption

import (
	"fmt"
	"math/rand"
)

// Policy selects how the frontier treats a tile reachable from several
// corrupted neighbors.
type Policy int

const (
	// PolicyWeighted keeps every push, so a tile with more corrupted
	// neighbors is proportionally more likely to be picked.
	PolicyWeighted Policy = iota
	// PolicyUnique keeps one entry per tile, so picks are uniform over
	// distinct frontier tiles.
	PolicyUnique
)

// String returns the config name of the policy.
func (p Policy) String() string {
	switch p {
	case PolicyWeighted:
		return "weighted"
	case PolicyUnique:
		return "unique"
	default:
		return "unknown"
	}
}

// ParsePolicy maps a config name to a Policy. Empty means weighted.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "weighted":
		return PolicyWeighted, nil
	case "unique":
		return PolicyUnique, nil
	default:
		return PolicyWeighted, fmt.Errorf("corruption: unknown frontier policy %q", name)
	}
}

// Candidates is the frontier of tiles eligible for corruption.
//
// Under the unique policy entries are keyed by TileID. That is the same as
// keying by coordinate: a coordinate only changes identity when it is
// corrupted, and corrupted tiles are never pushed.
type Candidates struct {
	policy  Policy
	entries []TileID
	present map[TileID]struct{} // unique policy only
}

// NewCandidates creates an empty frontier with the given policy.
func NewCandidates(policy Policy) *Candidates {
	c := &Candidates{policy: policy}
	if policy == PolicyUnique {
		c.present = make(map[TileID]struct{})
	}
	return c
}

// Policy returns the frontier policy.
func (c *Candidates) Policy() Policy { return c.policy }

// Len returns the number of entries, duplicates included.
func (c *Candidates) Len() int { return len(c.entries) }

// Push appends id to the frontier. Under the unique policy a tile already
// present is not added again.
func (c *Candidates) Push(id TileID) {
	if id == NoTile {
		return
	}
	if c.policy == PolicyUnique {
		if _, ok := c.present[id]; ok {
			return
		}
		c.present[id] = struct{}{}
	}
	c.entries = append(c.entries, id)
}

// PickRandom returns a uniformly random entry without removing it.
func (c *Candidates) PickRandom(rng *rand.Rand) (TileID, bool) {
	if len(c.entries) == 0 {
		return NoTile, false
	}
	return c.entries[rng.Intn(len(c.entries))], true
}

// Count returns how many entries hold id.
func (c *Candidates) Count(id TileID) int {
	n := 0
	for _, e := range c.entries {
		if e == id {
			n++
		}
	}
	return n
}

// IDs returns a copy of the entries in their current order.
func (c *Candidates) IDs() []TileID {
	out := make([]TileID, len(c.entries))
	copy(out, c.entries)
	return out
}

// pick returns a random entry together with its position.
func (c *Candidates) pick(rng *rand.Rand) (int, TileID) {
	i := rng.Intn(len(c.entries))
	return i, c.entries[i]
}

// removeAt drops the entry at i by swapping in the last one.
func (c *Candidates) removeAt(i int) {
	id := c.entries[i]
	last := len(c.entries) - 1
	c.entries[i] = c.entries[last]
	c.entries[last] = NoTile
	c.entries = c.entries[:last]
	if c.policy == PolicyUnique {
		delete(c.present, id)
	}
}
