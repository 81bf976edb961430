package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blightsong/internal/audio"
	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/core"
	"github.com/vovakirdan/blightsong/internal/registry"
	"github.com/vovakirdan/blightsong/internal/storage"
)

// Options wires a GameModel to the services around it.
// The zero value runs without persistence, sound or config reloads.
type Options struct {
	Store      *storage.Store
	Audio      audio.Player
	Player     string // recorded with each run
	Difficulty config.DifficultyPreset
	Reloads    <-chan config.Reload
	Logger     *log.Logger

	// QuitOnBack ends the program when the player backs out to the menu.
	// Standalone programs need it; the SSH session model swaps views instead.
	QuitOnBack bool
}

// ReloadMsg delivers a config reload to a running game.
type ReloadMsg config.Reload

// difficultySetter is implemented by games with per-instance presets.
type difficultySetter interface {
	SetDifficulty(config.DifficultyPreset)
}

// configApplier is implemented by games that accept live config reloads.
type configApplier interface {
	ApplyConfig(config.BlightConfig)
}

// volumeSetter is implemented by audio players with adjustable volume.
type volumeSetter interface {
	SetVolume(float64)
}

// maxFrame caps the wall-clock time one tick may hand to the game, so a
// stalled terminal does not dump seconds of blight at once.
const maxFrame = 500 * time.Millisecond

// GameModel is the Bubble Tea model for running a game.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	log        *log.Logger
	gen        uint64
	ticks      int
	lastTick   time.Time // zero until the first tick of a run
	quitting   bool
	backToMenu bool
	recorded   bool // Whether the current run has been saved
	lastRunID  string
}

// NewGameModel creates a new Bubble Tea model for the given game.
func NewGameModel(game registry.Game, cfg core.RuntimeConfig, opts Options) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if opts.Audio == nil {
		opts.Audio = audio.Silent{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	if ds, ok := game.(difficultySetter); ok && opts.Difficulty != "" {
		ds.SetDifficulty(opts.Difficulty)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		log:        logger,
		gen:        nextGen(),
	}
}

// Init initializes the model and starts the game.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick(msg.Time)

	case ReloadMsg:
		return m.handleReload(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.finishRun()
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves a paused or finished game; during play it pauses.
	if m.inputFrame.Has(core.ActionBack) {
		if m.gameState.GameOver || m.gameState.Paused {
			m.finishRun()
			m.backToMenu = true
			if m.opts.QuitOnBack {
				return m, tea.Quit
			}
			return m, nil
		}
		m.inputFrame.Set(core.ActionPause)
	}

	return m, nil
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Games that cannot adapt start over with the new dimensions.
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick(at time.Time) (tea.Model, tea.Cmd) {
	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.ticks = 0
		m.recorded = false
		m.lastTick = at
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	m.inputFrame.Dt = m.frameSeconds(at)
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.ticks++

	for _, cue := range result.Cues {
		m.opts.Audio.Play(cue.Semitone, cue.Seconds)
	}

	if m.gameState.GameOver && !m.recorded {
		m.finishRun()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate, m.gen)
}

// frameSeconds returns the time since the previous tick, capped at maxFrame.
// The first tick has nothing to measure against and returns zero, which the
// game reads as one nominal tick.
func (m *GameModel) frameSeconds(at time.Time) float64 {
	prev := m.lastTick
	m.lastTick = at
	if prev.IsZero() || !at.After(prev) {
		return 0
	}
	return min(at.Sub(prev), maxFrame).Seconds()
}

// handleReload hands a reloaded config to the game.
func (m GameModel) handleReload(msg ReloadMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.log.Warn("config reload failed", "path", msg.Path, "err", msg.Err)
		return m, nil
	}
	if a, ok := m.game.(configApplier); ok {
		a.ApplyConfig(msg.Config)
	}
	if v, ok := m.opts.Audio.(volumeSetter); ok {
		v.SetVolume(msg.Config.Melody.Volume)
	}
	return m, nil
}

// finishRun saves the score and run history once per run.
func (m *GameModel) finishRun() {
	if m.recorded {
		return
	}
	m.recorded = true
	if m.ticks == 0 || m.opts.Store == nil {
		return
	}

	id := m.game.ID()
	score := m.gameState.Score
	if score > 0 {
		if _, err := m.opts.Store.SaveScore(id, score); err != nil {
			m.log.Warn("could not save score", "game", id, "err", err)
		}
	}

	run := storage.Run{
		GameID: id,
		Player: m.opts.Player,
		Seed:   m.config.Seed,
		Score:  score,
	}
	if r, ok := m.game.(registry.Reporter); ok {
		st := r.RunStats()
		run.Notes = st.Notes
		run.Performed = st.Performed
		run.Corrupted = st.Corrupted
		run.Duration = st.Seconds
		run.EndReason = st.EndReason
	}

	runID, err := m.opts.Store.SaveRun(run)
	if err != nil {
		m.log.Warn("could not save run", "game", id, "err", err)
		return
	}
	m.lastRunID = runID
	m.log.Info("run saved", "run", runID, "game", id, "score", score, "end", run.EndReason)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}
	dir := filepath.Join(home, ".blightsong", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.log.Warn("screenshot skipped", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("screenshot failed", "path", path, "err", err)
		return
	}
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m GameModel) LastRunID() string {
	return m.lastRunID
}

// RunResult reports how a standalone game program ended.
type RunResult struct {
	BackToMenu bool
	RunID      string
}

// Run starts a Bubble Tea program for the game and blocks until it exits.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (RunResult, error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	done := make(chan struct{})
	defer close(done)
	if opts.Reloads != nil {
		go forwardReloads(p, opts.Reloads, done)
	}

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}

	m, ok := final.(GameModel)
	if !ok {
		return RunResult{}, nil
	}
	return RunResult{BackToMenu: m.BackToMenu(), RunID: m.LastRunID()}, nil
}

// forwardReloads feeds watcher reloads into the program until done closes.
func forwardReloads(p *tea.Program, reloads <-chan config.Reload, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case r, ok := <-reloads:
			if !ok {
				return
			}
			p.Send(ReloadMsg(r))
		}
	}
}
