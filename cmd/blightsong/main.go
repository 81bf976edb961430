// blightsong is a terminal game: gather the notes of a melody and play it
// back while a blight spreads across the map.
//
// Usage:
//
//	blightsong list              - List available games
//	blightsong play [game]       - Play a game (menu when no game is given)
//	blightsong menu              - Start menu to pick games interactively
//	blightsong serve             - Start SSH server for remote play
//	blightsong scores [game]     - Show high scores and run history
//	blightsong config            - Print the effective game config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.blightsong/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/blightsong/internal/games/blight"
	"github.com/vovakirdan/blightsong/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blightsong",
	Short: "Blightsong - outplay the blight in your terminal",
	Long: `Blightsong is a terminal game. Walk the map, gather the notes of a
melody and keep moving to play it back, while a blight spreads tile by
tile from the edges of the world.

Available commands:
  list     - Show all available games
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and run history
  config   - Print the effective game config

Examples:
  blightsong list
  blightsong play blight
  blightsong play blight --difficulty hard --watch
  blightsong serve --ssh :2222
  blightsong scores blight --runs 10`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
