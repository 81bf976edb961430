package corruption

import "math/rand"

// Event reports one successful corruption so renderers can swap the tile
// drawn at Coord.
type Event struct {
	Coord  Coord
	Visual string
	Old    TileID // identity that was replaced
	New    TileID // identity of the corrupted tile
}

// FieldOptions configures a Field.
type FieldOptions struct {
	// Policy selects weighted or unique frontier behavior.
	Policy Policy
	// CorruptedVisual is the asset name given to every corrupted tile.
	CorruptedVisual string
	// MaxRetries bounds how many samples one Step may draw. Zero means the
	// bound is the frontier size: stale entries are pruned as they are
	// drawn, so the loop always ends.
	MaxRetries int
	// Rand drives candidate selection. Required.
	Rand *rand.Rand
}

// Field owns all corruption state for one stage: the grid index, the tile
// arena, and the frontier. It is not safe for concurrent use; a caller that
// shares one across goroutines must hold a single lock around each Step.
type Field struct {
	index      *GridIndex
	tiles      []Tile // arena indexed by TileID; tiles[0] is unused
	candidates *Candidates
	rng        *rand.Rand
	visual     string
	maxRetries int
	corrupted  int
}

// NewField creates an empty field for a width*height stage.
func NewField(width, height int, opts FieldOptions) *Field {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Field{
		index:      NewGridIndex(width, height),
		tiles:      make([]Tile, 1, width*height+1),
		candidates: NewCandidates(opts.Policy),
		rng:        rng,
		visual:     opts.CorruptedVisual,
		maxRetries: max(opts.MaxRetries, 0),
	}
}

// Index returns the grid index.
func (f *Field) Index() *GridIndex { return f.index }

// Candidates returns the frontier.
func (f *Field) Candidates() *Candidates { return f.candidates }

// Width returns the stage width.
func (f *Field) Width() int { return f.index.Width() }

// Height returns the stage height.
func (f *Field) Height() int { return f.index.Height() }

// CorruptedCount returns how many live tiles are corrupted.
func (f *Field) CorruptedCount() int { return f.corrupted }

// CorruptedVisual returns the asset name used for corrupted tiles.
func (f *Field) CorruptedVisual() string { return f.visual }

// Place creates a new tile identity at c and makes it live in the index,
// retiring any previous identity there. Used during stage generation.
func (f *Field) Place(c Coord, kind Kind, visual string) TileID {
	if !f.index.InBounds(c.X, c.Y) {
		return NoTile
	}
	if old, ok := f.TileAt(c.X, c.Y); ok && old.Kind.IsCorrupted() {
		f.corrupted--
	}

	id := TileID(len(f.tiles))
	f.tiles = append(f.tiles, Tile{ID: id, Coord: c, Kind: kind, Visual: visual})
	f.index.Set(c.X, c.Y, id)
	if kind.IsCorrupted() {
		f.corrupted++
	}
	return id
}

// Tile returns the tile with the given identity, live or retired.
func (f *Field) Tile(id TileID) (Tile, bool) {
	if id == NoTile || int(id) >= len(f.tiles) {
		return Tile{}, false
	}
	return f.tiles[id], true
}

// TileAt returns the live tile at (x, y).
func (f *Field) TileAt(x, y int) (Tile, bool) {
	id, ok := f.index.Get(x, y)
	if !ok {
		return Tile{}, false
	}
	return f.tiles[id], true
}

// IsCorrupted reports whether the live tile at (x, y) is corrupted.
// Missing coordinates are not corrupted.
func (f *Field) IsCorrupted(x, y int) bool {
	t, ok := f.TileAt(x, y)
	return ok && t.Kind.IsCorrupted()
}

// Walkable reports whether a tile exists at (x, y) and is not corrupted.
func (f *Field) Walkable(x, y int) bool {
	t, ok := f.TileAt(x, y)
	return ok && !t.Kind.IsCorrupted()
}

// ExpandFrom pushes every present, non-corrupted neighbor of c onto the
// frontier. Stage generation calls it for each seeded corrupted tile.
func (f *Field) ExpandFrom(c Coord) {
	for _, n := range c.Neighbors() {
		id, ok := f.index.Get(n.X, n.Y)
		if !ok {
			continue
		}
		if f.tiles[id].Kind.IsCorrupted() {
			continue
		}
		f.candidates.Push(id)
	}
}

// Step runs one corruption step. It returns false, and changes nothing
// but stale frontier entries, when there is nothing left to corrupt.
func (f *Field) Step() (Event, bool) {
	draws := 0
	for f.candidates.Len() > 0 {
		if f.maxRetries > 0 && draws >= f.maxRetries {
			return Event{}, false
		}
		draws++

		i, id := f.candidates.pick(f.rng)
		tile, ok := f.eligible(id)
		f.candidates.removeAt(i)
		if !ok {
			continue
		}
		return f.corrupt(tile), true
	}
	return Event{}, false
}

// eligible resolves a frontier entry to its tile if that identity is still
// live and not corrupted.
func (f *Field) eligible(id TileID) (Tile, bool) {
	tile, ok := f.Tile(id)
	if !ok || tile.Kind.IsCorrupted() {
		return Tile{}, false
	}
	if live, ok := f.index.Get(tile.Coord.X, tile.Coord.Y); !ok || live != id {
		return Tile{}, false
	}
	return tile, true
}

func (f *Field) corrupt(old Tile) Event {
	id := f.Place(old.Coord, KindCorrupted, f.visual)
	f.ExpandFrom(old.Coord)
	return Event{
		Coord:  old.Coord,
		Visual: f.visual,
		Old:    old.ID,
		New:    id,
	}
}

// CorruptedCoords returns the coordinates of all corrupted tiles in
// row-major order.
func (f *Field) CorruptedCoords() []Coord {
	out := make([]Coord, 0, f.corrupted)
	for y := 0; y < f.index.Height(); y++ {
		for x := 0; x < f.index.Width(); x++ {
			if f.IsCorrupted(x, y) {
				out = append(out, C(x, y))
			}
		}
	}
	return out
}
