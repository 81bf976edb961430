package stage

import (
	"math/rand"

	"github.com/vovakirdan/blightsong/internal/corruption"
)

// maxScatterTries bounds random probing before falling back to a scan.
const maxScatterTries = 256

// Scatter picks n distinct walkable coordinates within radius tiles of
// center, never center itself. It returns fewer than n when the area has
// no room left.
func Scatter(f *corruption.Field, center corruption.Coord, n, radius int, rng *rand.Rand) []corruption.Coord {
	if n <= 0 {
		return nil
	}
	radius = max(radius, 1)
	taken := map[corruption.Coord]bool{center: true}
	out := make([]corruption.Coord, 0, n)

	usable := func(c corruption.Coord) bool {
		return !taken[c] && f.Walkable(c.X, c.Y)
	}

	for tries := 0; len(out) < n && tries < maxScatterTries; tries++ {
		c := center.Add(rng.Intn(2*radius+1)-radius, rng.Intn(2*radius+1)-radius)
		if usable(c) {
			taken[c] = true
			out = append(out, c)
		}
	}

	// Crowded area: take whatever is left in scan order.
	for dy := -radius; dy <= radius && len(out) < n; dy++ {
		for dx := -radius; dx <= radius && len(out) < n; dx++ {
			c := center.Add(dx, dy)
			if usable(c) {
				taken[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}
