package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/core"
	"github.com/vovakirdan/blightsong/internal/platform/tui"
	"github.com/vovakirdan/blightsong/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagWatch      bool
	flagLogPath    string
	flagLogLevel   string
	flagMute       bool
	flagVolume     float64
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game, or open the menu when no game is given.

Controls:
  WASD/Arrows  - Move (keep moving to play the melody)
  P/Space/Esc  - Pause
  Esc          - Back to menu (while paused or after game over)
  R            - Restart (after game over)
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Wide safe zone, fewer blight seeds, slow start
  normal - 30% difficulty for the whole run
  hard   - Small safe zone, faster blight from the first tile
  fixed  - No difficulty scaling, config tuning as written

Examples:
  blightsong play blight
  blightsong play blight_unique --difficulty easy
  blightsong play blight --config ./my-blight.yaml --watch
  blightsong play blight --mute --log-level debug`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the flags shared by play and menu.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file when it changes")
	cmd.Flags().StringVar(&flagLogPath, "log", "~/.blightsong/blightsong.log", "Log file path")
	cmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 0 {
		runMenu(cmd, args)
		return
	}
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'blightsong list' to see available games.")
		os.Exit(1)
	}

	sess, err := openLocalSession(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		sess.Close()
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Run the game
	res, runErr := tui.Run(game, runtimeConfig(), sess.options(config.DifficultyPreset(flagDifficulty)))

	// Close session before potential exit
	sess.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
	if res.RunID != "" {
		fmt.Printf("Run %s saved.\n", res.RunID)
	}
}

// runtimeConfig builds the runtime config from the terminal and global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
