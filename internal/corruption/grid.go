package corruption

// GridIndex maps grid coordinates to the live tile identity there.
// Storage is a dense row-major slice sized to the stage, so lookups are O(1)
// and distinct coordinates never collide.
type GridIndex struct {
	width  int
	height int
	ids    []TileID
	filled int
}

// NewGridIndex creates an empty index for a width*height stage.
func NewGridIndex(width, height int) *GridIndex {
	width = max(width, 0)
	height = max(height, 0)
	return &GridIndex{
		width:  width,
		height: height,
		ids:    make([]TileID, width*height),
	}
}

// Width returns the stage width the index covers.
func (g *GridIndex) Width() int { return g.width }

// Height returns the stage height the index covers.
func (g *GridIndex) Height() int { return g.height }

// Len returns how many coordinates currently hold a tile.
func (g *GridIndex) Len() int { return g.filled }

// InBounds reports whether (x, y) lies inside the indexed stage.
func (g *GridIndex) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile identity at (x, y). Coordinates outside the stage,
// or never set, report false.
func (g *GridIndex) Get(x, y int) (TileID, bool) {
	if !g.InBounds(x, y) {
		return NoTile, false
	}
	id := g.ids[y*g.width+x]
	return id, id != NoTile
}

// Set records id as the live identity at (x, y), replacing any previous one.
// Out-of-bounds coordinates are ignored.
func (g *GridIndex) Set(x, y int, id TileID) {
	if !g.InBounds(x, y) {
		return
	}
	i := y*g.width + x
	switch {
	case g.ids[i] == NoTile && id != NoTile:
		g.filled++
	case g.ids[i] != NoTile && id == NoTile:
		g.filled--
	}
	g.ids[i] = id
}
