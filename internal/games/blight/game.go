// Package blight is the corruption-spread game: explore a generated stage,
// collect the notes of a melody and play it back while the blight closes in.
package blight

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/core"
	"github.com/vovakirdan/blightsong/internal/corruption"
	"github.com/vovakirdan/blightsong/internal/melody"
	"github.com/vovakirdan/blightsong/internal/registry"
	"github.com/vovakirdan/blightsong/internal/stage"
)

const (
	hudHeight = 2
	minW      = 24
	minH      = 8

	pointsPerNote    = 10
	pointsPerPerform = 1
)

// End reasons recorded in run history.
const (
	EndEngulfed = "engulfed"
	EndQuit     = "quit"
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// logger receives corruption events; nil means log.Default().
var logger *log.Logger

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParsePreset(preset)
	if err != nil || preset == "" {
		difficultyPreset = ""
		return
	}
	difficultyPreset = p
}

// SetLogger routes game logs to l.
func SetLogger(l *log.Logger) {
	logger = l
}

// echo is a played note fading out where it was played.
type echo struct {
	at   corruption.Coord
	note melody.Note
	ttl  float64
}

// Game implements the blight game logic.
type Game struct {
	unique bool                    // forces the unique frontier policy
	preset config.DifficultyPreset // overrides the package preset when set

	runtime    core.RuntimeConfig
	cfg        config.BlightConfig
	difficulty *config.DifficultyManager
	palette    palette
	log        *log.Logger

	rng      *rand.Rand
	stage    *stage.Stage
	spreader *corruption.Spreader
	view     []string // tile visual per cell, row-major; "" is off-stage

	player    corruption.Coord
	sinceMove float64
	notes     map[corruption.Coord]melody.Note
	noteTotal int
	lost      int
	performer *melody.Performer
	echoes    []echo

	tick      uint64
	elapsed   float64
	score     int
	performed int

	gameOver  bool
	endReason string
	paused    bool
	tooSmall  bool
}

// New creates a blight game using the configured frontier policy.
func New() *Game {
	return &Game{}
}

// NewUnique creates a blight game whose frontier holds each tile once.
func NewUnique() *Game {
	return &Game{unique: true}
}

func init() {
	registry.Register("blight", func() registry.Game {
		return New()
	})
	registry.Register("blight_unique", func() registry.Game {
		return NewUnique()
	})
}

// SetDifficulty picks the preset for this instance, taking effect on the
// next Reset. An empty preset falls back to SetDifficultyPreset.
func (g *Game) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// difficultyFor returns the preset in effect for this instance.
func (g *Game) difficultyFor() config.DifficultyPreset {
	if g.preset != "" {
		return g.preset
	}
	return difficultyPreset
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.unique {
		return "blight_unique"
	}
	return "blight"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.unique {
		return "Blightsong (Even Spread)"
	}
	return "Blightsong"
}

// Description returns the menu blurb.
func (g *Game) Description() string {
	if g.unique {
		return "Every frontier tile is equally likely to fall next"
	}
	return "Tiles touched by more blight fall sooner"
}

// Reset loads config, generates a new stage and places the player.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.log = logger
	if g.log == nil {
		g.log = log.Default()
	}

	cfg, path, err := config.LoadBlight(configPath)
	if err != nil {
		g.log.Warn("config load failed, using defaults", "path", configPath, "err", err)
		cfg = config.DefaultBlightConfig()
	} else if path != "" {
		g.log.Debug("config loaded", "path", path)
	}
	g.setConfig(cfg)

	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.tick = 0
	g.elapsed = 0
	g.score = 0
	g.performed = 0
	g.lost = 0
	g.gameOver = false
	g.endReason = ""
	g.paused = false
	g.echoes = g.echoes[:0]
	g.tooSmall = runtime.ScreenW < minW || runtime.ScreenH < minH

	params, err := g.stageParams()
	if err != nil {
		g.log.Warn("invalid stage settings, using defaults", "err", err)
		g.setConfig(config.DefaultBlightConfig())
		params, _ = g.stageParams()
	}
	st, err := stage.Generate(params, g.rng)
	if err != nil {
		// Defaults always validate.
		st, _ = stage.Generate(stage.DefaultParams(), g.rng)
	}
	g.stage = st
	g.player = st.Spawn

	// The decay is fixed here for the whole run; only a config reload
	// changes it.
	clock := corruption.NewClock(
		g.difficulty.Period(g.cfg.Corruption.InitialPeriod),
		g.difficulty.Decay(g.cfg.Corruption.Decay),
	)
	clock.SetMaxFires(max(g.cfg.Corruption.MaxStepsPerFrame, 1))
	g.spreader = corruption.NewSpreader(st.Field, clock)
	g.view = tileView(st.Field)

	song := melody.Theme(g.eighth())
	g.performer = melody.NewPerformer(song, g.eighth())
	g.sinceMove = g.cfg.Player.MoveGrace

	distinct := song.DistinctNotes()
	spots := stage.Scatter(st.Field, st.Spawn, len(distinct), g.cfg.Stage.NoteRadius, g.rng)
	g.notes = make(map[corruption.Coord]melody.Note, len(spots))
	for i, c := range spots {
		g.notes[c] = distinct[i]
	}
	g.noteTotal = len(spots)

	g.log.Info("stage generated",
		"game", g.ID(),
		"seed", runtime.Seed,
		"size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"seeds", len(st.Seeds),
		"frontier", st.Field.Candidates().Len(),
		"policy", params.Policy)
}

// setConfig applies the difficulty preset to cfg and installs it with
// everything derived from it.
func (g *Game) setConfig(cfg config.BlightConfig) {
	if p := g.difficultyFor(); p != "" {
		config.ApplyBlightPreset(&cfg, p)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	g.palette = newPalette(cfg)
}

// ApplyConfig takes a reloaded config. Tuning applies immediately; stage
// settings wait for the next Reset.
func (g *Game) ApplyConfig(cfg config.BlightConfig) {
	if err := cfg.Validate(); err != nil {
		g.log.Warn("ignoring invalid config reload", "err", err)
		return
	}
	g.setConfig(cfg)
	if g.spreader != nil {
		clock := g.spreader.Clock()
		clock.SetMaxFires(max(g.cfg.Corruption.MaxStepsPerFrame, 1))
		clock.SetDecay(g.difficulty.Decay(g.cfg.Corruption.Decay))
	}
	g.log.Info("config reloaded",
		"decay", cfg.Corruption.Decay,
		"max_steps_per_frame", cfg.Corruption.MaxStepsPerFrame)
}

// Config returns the active config.
func (g *Game) Config() config.BlightConfig {
	return g.cfg
}

func (g *Game) stageParams() (stage.Params, error) {
	cfg := g.cfg
	policy, err := corruption.ParsePolicy(cfg.Corruption.Policy)
	if err != nil {
		return stage.Params{}, err
	}
	if g.unique {
		policy = corruption.PolicyUnique
	}

	rules := make([]stage.TileRule, 0, len(cfg.Tiles))
	for _, t := range cfg.Tiles {
		kind, err := corruption.ParseKind(t.Kind)
		if err != nil {
			return stage.Params{}, err
		}
		rules = append(rules, stage.TileRule{Kind: kind, Visual: t.Visual, Upto: t.Upto})
	}

	p := stage.Params{
		Width:           cfg.Stage.Width,
		Height:          cfg.Stage.Height,
		SeedChance:      cfg.Stage.SeedChance,
		MaxSeeds:        cfg.Stage.MaxSeeds,
		SafeRadius:      cfg.Stage.SafeRadius,
		Rules:           rules,
		CorruptedVisual: cfg.Corruption.Visual,
		Policy:          policy,
		MaxRetries:      cfg.Corruption.MaxRetries,
	}
	return p, p.Validate()
}

func (g *Game) eighth() float64 {
	return 60.0 / g.cfg.Melody.BPM / 2.0
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	// Handle restart
	if in.Has(core.ActionRestart) && g.gameOver {
		g.Reset(core.RuntimeConfig{
			Seed:     g.rng.Int63(),
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
		})
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	dt := in.FrameSeconds(g.runtime)
	g.elapsed += dt

	g.handleMove(in)

	var cues []core.SoundCue
	moving := g.sinceMove < g.cfg.Player.MoveGrace
	if beat, ok := g.performer.Tick(dt, moving); ok {
		cues = append(cues, core.SoundCue{Semitone: int(beat.Note), Seconds: beat.Seconds})
		g.echoes = append(g.echoes, echo{at: g.player, note: beat.Note, ttl: g.cfg.Melody.EchoSeconds})
		g.performed++
		g.score += pointsPerPerform
	}
	g.sinceMove += dt

	g.spread(dt)
	g.fadeEchoes(dt)

	return core.StepResult{State: g.State(), Cues: cues}
}

// handleMove moves the player one tile if the target is walkable.
func (g *Game) handleMove(in core.InputFrame) {
	var dx, dy int
	switch {
	case in.Has(core.ActionUp):
		dy = -1
	case in.Has(core.ActionDown):
		dy = 1
	case in.Has(core.ActionLeft):
		dx = -1
	case in.Has(core.ActionRight):
		dx = 1
	default:
		return
	}

	target := g.player.Add(dx, dy)
	if !g.stage.Field.Walkable(target.X, target.Y) {
		return
	}
	g.player = target
	g.sinceMove = 0

	if n, ok := g.notes[target]; ok {
		delete(g.notes, target)
		if g.performer.Collect(n) {
			g.score += pointsPerNote
			g.log.Debug("note collected", "note", n, "x", target.X, "y", target.Y)
		}
	}
}

// spread runs the corruption for dt seconds and resolves what it touched.
func (g *Game) spread(dt float64) {
	for _, ev := range g.spreader.Advance(dt) {
		g.setVisual(ev.Coord, ev.Visual)
		g.log.Debug("+1 corrupt tile",
			"x", ev.Coord.X,
			"y", ev.Coord.Y,
			"period", g.spreader.Clock().Period())

		if _, ok := g.notes[ev.Coord]; ok {
			delete(g.notes, ev.Coord)
			g.lost++
		}
		if ev.Coord == g.player {
			g.gameOver = true
			g.endReason = EndEngulfed
			g.log.Info("player engulfed",
				"score", g.score,
				"corrupted", g.stage.Field.CorruptedCount(),
				"seconds", g.elapsed)
		}
	}
}

// tileView snapshots the visual of every placed tile.
func tileView(f *corruption.Field) []string {
	w, h := f.Width(), f.Height()
	view := make([]string, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if t, ok := f.TileAt(x, y); ok {
				view[y*w+x] = t.Visual
			}
		}
	}
	return view
}

func (g *Game) setVisual(c corruption.Coord, visual string) {
	w := g.stage.Field.Width()
	if c.X < 0 || c.Y < 0 || c.X >= w || c.Y >= g.stage.Field.Height() {
		return
	}
	g.view[c.Y*w+c.X] = visual
}

// visualAt returns the cached visual at (x, y), or "" off-stage.
func (g *Game) visualAt(x, y int) string {
	w := g.stage.Field.Width()
	if x < 0 || y < 0 || x >= w || y >= g.stage.Field.Height() {
		return ""
	}
	return g.view[y*w+x]
}

func (g *Game) fadeEchoes(dt float64) {
	kept := g.echoes[:0]
	for _, e := range g.echoes {
		e.ttl -= dt
		if e.ttl > 0 {
			kept = append(kept, e)
		}
	}
	g.echoes = kept
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// RunStats summarizes the run so far.
func (g *Game) RunStats() core.RunStats {
	reason := g.endReason
	if reason == "" {
		reason = EndQuit
	}
	corrupted := 0
	if g.stage != nil {
		corrupted = g.stage.Field.CorruptedCount()
	}
	collected := 0
	if g.performer != nil {
		collected = g.performer.Collected()
	}
	return core.RunStats{
		Notes:     collected,
		Performed: g.performed,
		Corrupted: corrupted,
		Seconds:   g.elapsed,
		EndReason: reason,
	}
}
