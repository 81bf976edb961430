package tui

import (
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/core"
	"github.com/vovakirdan/blightsong/internal/storage"
)

// fakeGame ends after a fixed number of steps and emits one cue per step.
type fakeGame struct {
	resets    int
	steps     int
	endAfter  int
	w, h      int
	resized   bool
	applied   *config.BlightConfig
	preset    config.DifficultyPreset
	lastInput core.InputFrame
}

func (g *fakeGame) ID() string    { return "fake" }
func (g *fakeGame) Title() string { return "Fake" }

func (g *fakeGame) Reset(cfg core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.w, g.h = cfg.ScreenW, cfg.ScreenH
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	g.lastInput = core.NewInputFrame()
	for a := range in.Actions {
		g.lastInput.Set(a)
	}
	g.lastInput.Dt = in.Dt
	return core.StepResult{
		State: g.State(),
		Cues:  []core.SoundCue{{Semitone: g.steps, Seconds: 0.1}},
	}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState {
	return core.GameState{Score: g.steps * 10, GameOver: g.endAfter > 0 && g.steps >= g.endAfter}
}

func (g *fakeGame) RunStats() core.RunStats {
	return core.RunStats{Notes: 3, Performed: g.steps, Corrupted: 7, Seconds: 1.5, EndReason: "engulfed"}
}

func (g *fakeGame) Resize(w, h int) {
	g.resized = true
	g.w, g.h = w, h
}

func (g *fakeGame) ApplyConfig(cfg config.BlightConfig) {
	g.applied = &cfg
}

func (g *fakeGame) SetDifficulty(p config.DifficultyPreset) {
	g.preset = p
}

// recorder is an audio.Player that remembers what it was asked to play.
type recorder struct {
	played []int
	volume float64
}

func (r *recorder) SetVolume(v float64) { r.volume = v }

func (r *recorder) Play(semitone int, _ float64) { r.played = append(r.played, semitone) }
func (r *recorder) Close()                       {}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(g *fakeGame, opts Options) GameModel {
	opts.Logger = quietLogger()
	m := NewGameModel(g, core.RuntimeConfig{ScreenW: 40, ScreenH: 12, TickRate: 60, Seed: 99}, opts)
	m.Init()
	return m
}

func update(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm, cmd
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	m, _ = update(t, m, TickMsg{Time: time.Now(), Gen: m.gen})
	return m
}

func TestTickMeasuresFrameTime(t *testing.T) {
	tests := []struct {
		name string
		gap  time.Duration
		want float64
	}{
		{"measured", 250 * time.Millisecond, 0.25},
		{"capped", 3 * time.Second, maxFrame.Seconds()},
		{"clock went back", -time.Second, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := &fakeGame{}
			m := newTestModel(g, Options{})
			start := time.Now()

			m, _ = update(t, m, TickMsg{Time: start, Gen: m.gen})
			if g.lastInput.Dt != 0 {
				t.Errorf("first tick Dt = %v, expected 0", g.lastInput.Dt)
			}
			m, _ = update(t, m, TickMsg{Time: start.Add(tc.gap), Gen: m.gen})
			if diff := g.lastInput.Dt - tc.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Dt = %v, expected %v", g.lastInput.Dt, tc.want)
			}
			if m.inputFrame.Dt != 0 {
				t.Error("frame time should be cleared after the step")
			}
		})
	}
}

func TestTickVoicesCues(t *testing.T) {
	g := &fakeGame{}
	rec := &recorder{}
	m := newTestModel(g, Options{Audio: rec})

	m = tick(t, m)
	m = tick(t, m)

	if g.steps != 2 {
		t.Fatalf("steps = %d, want 2", g.steps)
	}
	if len(rec.played) != 2 || rec.played[0] != 1 || rec.played[1] != 2 {
		t.Errorf("played = %v, want [1 2]", rec.played)
	}
}

func TestStaleTickIgnored(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{})

	m, cmd := update(t, m, TickMsg{Time: time.Now(), Gen: m.gen + 1000})
	if cmd != nil || g.steps != 0 {
		t.Errorf("stale tick stepped the game: steps=%d", g.steps)
	}
	_ = m
}

func TestDifficultyPassedToGame(t *testing.T) {
	g := &fakeGame{}
	newTestModel(g, Options{Difficulty: config.DifficultyHard})
	if g.preset != config.DifficultyHard {
		t.Errorf("preset = %q, want hard", g.preset)
	}
}

func TestGameOverSavesRunOnce(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{endAfter: 3}
	m := newTestModel(g, Options{Store: store, Player: "tester"})

	for range 5 {
		m = tick(t, m)
	}

	runs, err := store.RecentRuns("fake", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(runs))
	}
	r := runs[0]
	if r.Player != "tester" || r.Seed != 99 || r.Notes != 3 || r.Corrupted != 7 || r.EndReason != "engulfed" {
		t.Errorf("unexpected run %+v", r)
	}
	if m.LastRunID() != r.RunID {
		t.Errorf("LastRunID = %q, want %q", m.LastRunID(), r.RunID)
	}

	hs, err := store.HighScore("fake")
	if err != nil {
		t.Fatalf("HighScore: %v", err)
	}
	if hs != r.Score || hs == 0 {
		t.Errorf("high score = %d, run score = %d", hs, r.Score)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{endAfter: 1}
	m := newTestModel(g, Options{Store: store})

	m = tick(t, m)
	m, _ = update(t, m, runeKey('r'))
	m = tick(t, m)
	if g.resets != 2 {
		t.Fatalf("resets = %d, want 2", g.resets)
	}
	if m.config.Seed == 99 {
		t.Error("restart should pick a new seed")
	}

	m = tick(t, m)
	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 2 {
		t.Errorf("runs = %d, want one per finished game", len(runs))
	}
}

func TestQuitRecordsRun(t *testing.T) {
	store := openStore(t)
	g := &fakeGame{}
	m := newTestModel(g, Options{Store: store})

	m = tick(t, m)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Fatal("q should quit")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 1 {
		t.Errorf("runs = %d, want 1", len(runs))
	}
}

func TestQuitBeforeFirstTickSavesNothing(t *testing.T) {
	store := openStore(t)
	m := newTestModel(&fakeGame{}, Options{Store: store})

	update(t, m, runeKey('q'))

	runs, _ := store.RecentRuns("fake", 10)
	if len(runs) != 0 {
		t.Errorf("runs = %d, want 0", len(runs))
	}
}

func TestBackPausesThenLeaves(t *testing.T) {
	g := &fakeGame{endAfter: 2}
	m := newTestModel(g, Options{QuitOnBack: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m = tick(t, m)
	if !g.lastInput.Has(core.ActionPause) {
		t.Error("esc during play should pause")
	}
	if m.BackToMenu() {
		t.Error("esc during play should not leave")
	}

	m = tick(t, m) // game over
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() || cmd == nil {
		t.Error("esc after game over should leave and quit the program")
	}
}

func TestResizeUsesResizer(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(g, Options{})

	update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !g.resized || g.w != 100 || g.h != 30 {
		t.Errorf("resize not forwarded: %+v", g)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, a resizable game should not restart", g.resets)
	}
}

func TestReloadApplied(t *testing.T) {
	g := &fakeGame{}
	rec := &recorder{}
	m := newTestModel(g, Options{Audio: rec})

	cfg := config.DefaultBlightConfig()
	cfg.Corruption.Decay = 0.9
	cfg.Melody.Volume = 0.25
	m, _ = update(t, m, ReloadMsg{Config: cfg, Path: "blight.yaml"})
	if g.applied == nil || g.applied.Corruption.Decay != 0.9 {
		t.Fatalf("reload not applied: %+v", g.applied)
	}
	if rec.volume != 0.25 {
		t.Errorf("volume = %v, want 0.25", rec.volume)
	}

	g.applied = nil
	update(t, m, ReloadMsg{Err: errors.New("bad yaml")})
	if g.applied != nil {
		t.Error("failed reload must not reach the game")
	}
}

func TestView(t *testing.T) {
	m := newTestModel(&fakeGame{}, Options{})
	if !strings.Contains(m.View(), "fake") {
		t.Errorf("view missing game output: %q", m.View())
	}
}
