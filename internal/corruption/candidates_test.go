package corruption

import (
	"math/rand"
	"testing"
)

func TestCandidatesWeightedKeepsDuplicates(t *testing.T) {
	c := NewCandidates(PolicyWeighted)
	c.Push(3)
	c.Push(3)
	c.Push(4)

	if c.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", c.Len())
	}
	if c.Count(3) != 2 {
		t.Errorf("Count(3) = %d, expected 2", c.Count(3))
	}
}

func TestCandidatesUniqueDeduplicates(t *testing.T) {
	c := NewCandidates(PolicyUnique)
	c.Push(3)
	c.Push(3)
	c.Push(4)

	if c.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", c.Len())
	}

	c.removeAt(0)
	c.Push(3)
	if c.Count(3) != 1 {
		t.Errorf("re-push after removal: Count(3) = %d, expected 1", c.Count(3))
	}
}

func TestCandidatesIgnoreNoTile(t *testing.T) {
	c := NewCandidates(PolicyWeighted)
	c.Push(NoTile)
	if c.Len() != 0 {
		t.Errorf("NoTile should not be pushed, Len() = %d", c.Len())
	}
}

func TestCandidatesPickRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := NewCandidates(PolicyWeighted)

	if _, ok := c.PickRandom(rng); ok {
		t.Error("PickRandom on empty set should report false")
	}

	c.Push(1)
	c.Push(2)
	seen := map[TileID]int{}
	for i := 0; i < 200; i++ {
		id, ok := c.PickRandom(rng)
		if !ok {
			t.Fatal("PickRandom should succeed on non-empty set")
		}
		seen[id]++
	}
	if seen[1] == 0 || seen[2] == 0 {
		t.Errorf("both entries should be picked over 200 draws, got %v", seen)
	}
	if c.Len() != 2 {
		t.Errorf("PickRandom must not remove entries, Len() = %d", c.Len())
	}
}

func TestCandidatesWeightedBias(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := NewCandidates(PolicyWeighted)
	c.Push(1)
	c.Push(1)
	c.Push(1)
	c.Push(2)

	ones := 0
	const draws = 4000
	for i := 0; i < draws; i++ {
		if id, _ := c.PickRandom(rng); id == 1 {
			ones++
		}
	}
	// Expect about 75%; allow a generous band.
	if ones < draws*65/100 || ones > draws*85/100 {
		t.Errorf("tile with three entries picked %d/%d times, expected ~75%%", ones, draws)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
		err  bool
	}{
		{"", PolicyWeighted, false},
		{"weighted", PolicyWeighted, false},
		{"unique", PolicyUnique, false},
		{"random", PolicyWeighted, true},
	}

	for _, tc := range tests {
		got, err := ParsePolicy(tc.in)
		if (err != nil) != tc.err || got != tc.want {
			t.Errorf("ParsePolicy(%q) = (%v, %v), expected %v", tc.in, got, err, tc.want)
		}
	}
}
