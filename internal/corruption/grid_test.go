package corruption

import "testing"

func TestGridIndexGetSet(t *testing.T) {
	g := NewGridIndex(4, 3)

	if _, ok := g.Get(1, 1); ok {
		t.Error("empty index should report no tile")
	}

	g.Set(1, 1, 7)
	id, ok := g.Get(1, 1)
	if !ok || id != 7 {
		t.Errorf("Get(1, 1) = (%d, %v), expected (7, true)", id, ok)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", g.Len())
	}

	// Replacement keeps one live identity per coordinate
	g.Set(1, 1, 9)
	id, _ = g.Get(1, 1)
	if id != 9 {
		t.Errorf("Get after replace = %d, expected 9", id)
	}
	if g.Len() != 1 {
		t.Errorf("Len() after replace = %d, expected 1", g.Len())
	}
}

func TestGridIndexOutOfBounds(t *testing.T) {
	g := NewGridIndex(4, 3)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"top", 0, -1},
		{"right", 4, 0},
		{"bottom", 0, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g.Set(tc.x, tc.y, 5) // must not panic
			if _, ok := g.Get(tc.x, tc.y); ok {
				t.Errorf("Get(%d, %d) should report no tile", tc.x, tc.y)
			}
		})
	}
	if g.Len() != 0 {
		t.Errorf("out-of-bounds sets should not count, Len() = %d", g.Len())
	}
}

func TestGridIndexLargeStageNoCollision(t *testing.T) {
	const size = 256
	g := NewGridIndex(size, size)

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			g.Set(x, y, TileID(y*size+x+1))
		}
	}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			id, ok := g.Get(x, y)
			if !ok || id != TileID(y*size+x+1) {
				t.Fatalf("Get(%d, %d) = (%d, %v), expected (%d, true)", x, y, id, ok, y*size+x+1)
			}
		}
	}
	if g.Len() != size*size {
		t.Errorf("Len() = %d, expected %d", g.Len(), size*size)
	}
}

func TestCoordNeighbors(t *testing.T) {
	got := C(3, 4).Neighbors()
	want := map[Coord]bool{C(3, 5): true, C(3, 3): true, C(4, 4): true, C(2, 4): true}

	for _, n := range got {
		if !want[n] {
			t.Errorf("unexpected neighbor %v", n)
		}
		delete(want, n)
	}
	if len(want) != 0 {
		t.Errorf("missing neighbors: %v", want)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindGreen, KindGrass, KindFlower, KindSand, KindCorrupted} {
		parsed, err := ParseKind(k.String())
		if err != nil || parsed != k {
			t.Errorf("ParseKind(%q) = (%v, %v), expected %v", k.String(), parsed, err, k)
		}
	}
	if _, err := ParseKind("lava"); err == nil {
		t.Error("ParseKind should reject unknown kinds")
	}
}
