package corruption

import (
	"math"
	"math/rand"
	"testing"
)

// newGreenField builds a w*h field of green tiles with corrupted seeds at
// the given coordinates, expanded the way stage generation does it.
func newGreenField(w, h int, policy Policy, seed int64, seeds ...Coord) *Field {
	f := NewField(w, h, FieldOptions{
		Policy:          policy,
		CorruptedVisual: "corrupted_tile_1",
		Rand:            rand.New(rand.NewSource(seed)),
	})
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			f.Place(C(x, y), KindGreen, "tile_0000")
		}
	}
	for _, s := range seeds {
		f.Place(s, KindCorrupted, "corrupted_tile_1")
	}
	for _, s := range seeds {
		f.ExpandFrom(s)
	}
	return f
}

func TestFieldScenarioFiveByFive(t *testing.T) {
	f := newGreenField(5, 5, PolicyWeighted, 7, C(0, 0))
	s := NewSpreader(f, NewClock(10, 0.9))

	if f.Candidates().Len() != 2 {
		t.Fatalf("seed frontier size = %d, expected 2", f.Candidates().Len())
	}

	events := s.Advance(10)
	if len(events) != 1 {
		t.Fatalf("first fire produced %d events, expected 1", len(events))
	}
	first := events[0].Coord
	if first != C(1, 0) && first != C(0, 1) {
		t.Errorf("first corruption at %v, expected (1,0) or (0,1)", first)
	}
	if math.Abs(s.Clock().Period()-9) > tolerance {
		t.Errorf("period after one fire = %v, expected 9", s.Clock().Period())
	}

	events = s.Advance(s.Clock().Remaining())
	if len(events) != 1 {
		t.Fatalf("second fire produced %d events, expected 1", len(events))
	}
	if f.CorruptedCount() != 3 {
		t.Errorf("CorruptedCount() = %d, expected seed + 2", f.CorruptedCount())
	}
	if math.Abs(s.Clock().Period()-8.1) > tolerance {
		t.Errorf("period after two fires = %v, expected 8.1", s.Clock().Period())
	}
}

func TestFieldStepEmptyFrontierIsNoop(t *testing.T) {
	f := newGreenField(3, 3, PolicyWeighted, 1)

	before := make([]TileID, 0, 9)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			id, _ := f.Index().Get(x, y)
			before = append(before, id)
		}
	}

	if _, ok := f.Step(); ok {
		t.Fatal("Step on empty frontier should report no event")
	}
	if f.Candidates().Len() != 0 {
		t.Errorf("frontier changed: Len() = %d", f.Candidates().Len())
	}
	i := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if id, _ := f.Index().Get(x, y); id != before[i] {
				t.Errorf("index changed at (%d,%d): %d -> %d", x, y, before[i], id)
			}
			i++
		}
	}

	clock := NewClock(1, 0.5)
	s := NewSpreader(f, clock)
	if events := s.Advance(1); len(events) != 0 {
		t.Errorf("spreader reported %d events on empty frontier", len(events))
	}
	if clock.Period() != 1 {
		t.Errorf("empty tick should not accelerate, Period() = %v", clock.Period())
	}
}

func TestFieldStepNeighborCorrectness(t *testing.T) {
	// Corner at (0,0) is corrupted so (1,1)'s left/up neighbors differ.
	f := newGreenField(4, 4, PolicyWeighted, 3, C(0, 0))

	target, _ := f.TileAt(1, 0)
	f.candidates = NewCandidates(PolicyWeighted)
	f.candidates.Push(target.ID)

	ev, ok := f.Step()
	if !ok || ev.Coord != C(1, 0) {
		t.Fatalf("Step() = (%v, %v), expected corruption at (1,0)", ev, ok)
	}

	// (0,0) is corrupted and (1,-1) is off the stage.
	want := map[Coord]bool{C(2, 0): true, C(1, 1): true}
	for _, id := range f.Candidates().IDs() {
		tile, _ := f.Tile(id)
		if !want[tile.Coord] {
			t.Errorf("unexpected candidate at %v", tile.Coord)
		}
		delete(want, tile.Coord)
	}
	if len(want) != 0 {
		t.Errorf("missing candidates: %v", want)
	}
}

func TestFieldStepReplacesIdentity(t *testing.T) {
	f := newGreenField(2, 1, PolicyWeighted, 5, C(0, 0))
	old, _ := f.TileAt(1, 0)

	ev, ok := f.Step()
	if !ok {
		t.Fatal("expected a corruption event")
	}
	if ev.Old != old.ID || ev.New == old.ID {
		t.Errorf("event identities old=%d new=%d, previous live id %d", ev.Old, ev.New, old.ID)
	}
	if ev.Visual != "corrupted_tile_1" {
		t.Errorf("event visual = %q", ev.Visual)
	}

	live, _ := f.Index().Get(1, 0)
	if live != ev.New {
		t.Errorf("index holds %d, expected new identity %d", live, ev.New)
	}
	retired, _ := f.Tile(old.ID)
	if retired.Kind.IsCorrupted() {
		t.Error("retired identity should keep its old kind")
	}
}

func TestFieldStepRetriesStaleDuplicate(t *testing.T) {
	f := newGreenField(3, 1, PolicyWeighted, 11)
	left, _ := f.TileAt(0, 0)
	right, _ := f.TileAt(2, 0)

	// Corrupt (0,0) out from under a stale frontier entry.
	f.Place(C(0, 0), KindCorrupted, "corrupted_tile_1")
	for i := 0; i < 5; i++ {
		f.Candidates().Push(left.ID)
	}
	f.Candidates().Push(right.ID)

	ev, ok := f.Step()
	if !ok {
		t.Fatal("Step should skip stale entries and corrupt the live candidate")
	}
	if ev.Coord != C(2, 0) {
		t.Errorf("corrupted %v, expected (2,0)", ev.Coord)
	}
}

func TestFieldStepAllStaleSkips(t *testing.T) {
	f := newGreenField(2, 1, PolicyWeighted, 11)
	stale, _ := f.TileAt(0, 0)
	f.Place(C(0, 0), KindCorrupted, "corrupted_tile_1")
	f.Candidates().Push(stale.ID)
	f.Candidates().Push(stale.ID)

	count := f.CorruptedCount()
	if _, ok := f.Step(); ok {
		t.Fatal("Step should report nothing when every candidate is stale")
	}
	if f.CorruptedCount() != count {
		t.Errorf("CorruptedCount changed from %d to %d", count, f.CorruptedCount())
	}
}

func TestFieldMaxRetries(t *testing.T) {
	f := NewField(3, 1, FieldOptions{MaxRetries: 1, Rand: rand.New(rand.NewSource(1))})
	a := f.Place(C(0, 0), KindGreen, "g")
	f.Place(C(1, 0), KindGreen, "g")
	f.Place(C(0, 0), KindCorrupted, "c")
	f.Candidates().Push(a)

	if _, ok := f.Step(); ok {
		t.Error("a single stale draw with MaxRetries=1 should end the step")
	}
}

func TestFieldSpreadInvariants(t *testing.T) {
	for _, policy := range []Policy{PolicyWeighted, PolicyUnique} {
		t.Run(policy.String(), func(t *testing.T) {
			f := newGreenField(12, 9, policy, 99, C(0, 0), C(11, 8))
			seen := map[Coord]bool{C(0, 0): true, C(11, 8): true}
			prev := f.CorruptedCount()

			for i := 0; i < 200; i++ {
				ev, ok := f.Step()
				if !ok {
					break
				}
				if seen[ev.Coord] {
					t.Fatalf("step %d corrupted %v twice", i, ev.Coord)
				}
				seen[ev.Coord] = true

				if f.CorruptedCount() != prev+1 {
					t.Fatalf("step %d: count %d, expected %d", i, f.CorruptedCount(), prev+1)
				}
				prev = f.CorruptedCount()
			}

			if f.CorruptedCount() != 12*9 {
				t.Errorf("connected stage should fully corrupt, got %d/%d", f.CorruptedCount(), 12*9)
			}
			if _, ok := f.Step(); ok {
				t.Error("fully corrupted stage should yield no further events")
			}
			if len(f.CorruptedCoords()) != f.CorruptedCount() {
				t.Errorf("CorruptedCoords() len %d != count %d", len(f.CorruptedCoords()), f.CorruptedCount())
			}
		})
	}
}

func TestFieldDeterministic(t *testing.T) {
	run := func() []Coord {
		f := newGreenField(8, 8, PolicyWeighted, 2024, C(0, 4))
		var out []Coord
		for i := 0; i < 20; i++ {
			ev, ok := f.Step()
			if !ok {
				break
			}
			out = append(out, ev.Coord)
		}
		return out
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("runs diverge at step %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestFieldWalkable(t *testing.T) {
	f := newGreenField(2, 2, PolicyWeighted, 1, C(1, 1))

	if !f.Walkable(0, 0) {
		t.Error("green tile should be walkable")
	}
	if f.Walkable(1, 1) || !f.IsCorrupted(1, 1) {
		t.Error("corrupted tile should block movement")
	}
	if f.Walkable(5, 5) || f.IsCorrupted(5, 5) {
		t.Error("missing tile is neither walkable nor corrupted")
	}
}
