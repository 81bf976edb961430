// Package corruption implements the blight that spreads across a stage.
//
// A Field owns the grid index, the tile arena and the candidate frontier.
// Each Step promotes one random candidate to Corrupted and pushes its
// axis-aligned neighbors onto the frontier. A Clock decides when steps run;
// its period shrinks geometrically after every successful step, so the
// spread accelerates over a session. Corruption is monotonic: no tile ever
// leaves the Corrupted kind.
package corruption

import "fmt"

// Coord is an integer grid coordinate. X grows right, Y grows down.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// neighborOffsets lists the four axis-aligned directions. No diagonals.
var neighborOffsets = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

// Neighbors returns the four axis-aligned neighbors of c.
func (c Coord) Neighbors() [4]Coord {
	var out [4]Coord
	for i, d := range neighborOffsets {
		out[i] = c.Add(d[0], d[1])
	}
	return out
}

// Kind is the terrain type of a tile.
type Kind uint8

const (
	KindGreen Kind = iota
	KindGrass
	KindFlower
	KindSand
	KindCorrupted
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGreen:
		return "green"
	case KindGrass:
		return "grass"
	case KindFlower:
		return "flower"
	case KindSand:
		return "sand"
	case KindCorrupted:
		return "corrupted"
	default:
		return "unknown"
	}
}

// ParseKind maps a config name to a Kind.
func ParseKind(name string) (Kind, error) {
	switch name {
	case "green":
		return KindGreen, nil
	case "grass":
		return KindGrass, nil
	case "flower":
		return KindFlower, nil
	case "sand":
		return KindSand, nil
	case "corrupted":
		return KindCorrupted, nil
	default:
		return KindGreen, fmt.Errorf("corruption: unknown tile kind %q", name)
	}
}

// IsCorrupted reports whether k is the terminal Corrupted kind.
func (k Kind) IsCorrupted() bool {
	return k == KindCorrupted
}

// TileID identifies one tile identity. Corrupting a tile replaces its
// identity, so a coordinate may have had several IDs over a session but
// has exactly one live ID at any time. The zero value is never issued.
type TileID uint32

// NoTile is the zero TileID.
const NoTile TileID = 0

// Tile is a grid cell. Visual names the asset the renderer draws for it;
// every kind carries it in the same field.
type Tile struct {
	ID     TileID
	Coord  Coord
	Kind   Kind
	Visual string
}
