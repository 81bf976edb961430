// Package stage builds the tile grid a session is played on: terrain kinds
// by weighted roll, corruption seeds along the border, the spawn point and
// the note pickups.
package stage

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/blightsong/internal/corruption"
)

// TileRule maps a roll to a terrain kind. A roll r in [0, 1) picks the
// first rule whose Upto is >= r, after the seed check.
type TileRule struct {
	Kind   corruption.Kind
	Visual string
	Upto   float64
}

// Params controls generation.
type Params struct {
	Width, Height int

	// SeedChance is the roll under which a border tile becomes a seed.
	SeedChance float64
	// MaxSeeds caps the number of initial corrupted tiles.
	MaxSeeds int
	// SafeRadius keeps seeds at least this many tiles from spawn.
	SafeRadius float64

	// Rules are the terrain bands. Rolls above every band fall back to
	// the last rule.
	Rules           []TileRule
	CorruptedVisual string

	Policy     corruption.Policy
	MaxRetries int
}

// DefaultRules returns the standard terrain bands.
func DefaultRules() []TileRule {
	return []TileRule{
		{Kind: corruption.KindGrass, Visual: "tile_0001", Upto: 0.08},
		{Kind: corruption.KindFlower, Visual: "tile_0002", Upto: 0.10},
		{Kind: corruption.KindSand, Visual: "tile_0003", Upto: 0.12},
		{Kind: corruption.KindGreen, Visual: "tile_0000", Upto: 1.0},
	}
}

// DefaultParams returns the standard 64x64 stage.
func DefaultParams() Params {
	return Params{
		Width:           64,
		Height:          64,
		SeedChance:      0.05,
		MaxSeeds:        24,
		SafeRadius:      8,
		Rules:           DefaultRules(),
		CorruptedVisual: "corrupted_tile_1",
		Policy:          corruption.PolicyWeighted,
	}
}

// Validate reports the first problem with p.
func (p Params) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("stage: invalid size %dx%d", p.Width, p.Height)
	}
	if len(p.Rules) == 0 {
		return fmt.Errorf("stage: no tile rules")
	}
	for _, r := range p.Rules {
		if r.Kind.IsCorrupted() {
			return fmt.Errorf("stage: tile rule %q may not be corrupted", r.Visual)
		}
	}
	if p.MaxSeeds < 0 {
		return fmt.Errorf("stage: negative max seeds")
	}
	return nil
}

// Stage is a generated level.
type Stage struct {
	Field *corruption.Field
	Spawn corruption.Coord
	Seeds []corruption.Coord
}

// Generate builds a stage from p using rng for every roll. The same seed
// always yields the same stage.
func Generate(p Params, rng *rand.Rand) (*Stage, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	rules := append([]TileRule(nil), p.Rules...)
	sort.SliceStable(rules, func(i, j int) bool { return rules[i].Upto < rules[j].Upto })

	field := corruption.NewField(p.Width, p.Height, corruption.FieldOptions{
		Policy:          p.Policy,
		CorruptedVisual: p.CorruptedVisual,
		MaxRetries:      p.MaxRetries,
		Rand:            rng,
	})
	spawn := corruption.C(p.Width/2, p.Height/2)

	st := &Stage{Field: field, Spawn: spawn}
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := corruption.C(x, y)
			roll := rng.Float64()

			if roll <= p.SeedChance && len(st.Seeds) < p.MaxSeeds &&
				onBorder(c, p.Width, p.Height) && distance(c, spawn) >= p.SafeRadius {
				field.Place(c, corruption.KindCorrupted, p.CorruptedVisual)
				st.Seeds = append(st.Seeds, c)
				continue
			}

			rule := pickRule(rules, roll)
			field.Place(c, rule.Kind, rule.Visual)
		}
	}

	// Neighbors only exist once the whole grid is placed.
	for _, s := range st.Seeds {
		field.ExpandFrom(s)
	}
	return st, nil
}

func pickRule(rules []TileRule, roll float64) TileRule {
	for _, r := range rules {
		if roll <= r.Upto {
			return r
		}
	}
	return rules[len(rules)-1]
}

func onBorder(c corruption.Coord, w, h int) bool {
	return c.X == 0 || c.Y == 0 || c.X == w-1 || c.Y == h-1
}

func distance(a, b corruption.Coord) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}
