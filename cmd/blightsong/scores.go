package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blightsong/internal/registry"
	"github.com/vovakirdan/blightsong/internal/storage"
)

var (
	flagRuns    int
	flagLongest bool
	flagPlayer  string
	flagRunID   string
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and run history",
	Long: `Display the top 10 high scores and the most recent runs for a game.
Without a game, shows a summary of every game played.

Examples:
  blightsong scores
  blightsong scores blight
  blightsong scores blight --runs 20
  blightsong scores blight --longest
  blightsong scores --player alice
  blightsong scores --run 2f0c6b9e-...
  blightsong scores blight --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRuns, "runs", 5, "Number of recent runs to show")
	scoresCmd.Flags().BoolVar(&flagLongest, "longest", false, "Show the longest-surviving runs instead of the most recent")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Show run history for a player")
	scoresCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by its ID")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and runs for the game")
}

func runScores(cmd *cobra.Command, args []string) {
	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagRunID != "":
		err = showRun(store, flagRunID)
	case flagPlayer != "":
		err = showPlayer(store, flagPlayer)
	case len(args) == 0:
		err = showSummary(store)
	default:
		err = showGame(store, args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

func showGame(store *storage.Store, gameID string) error {
	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q; run 'blightsong list' to see available games", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores and runs for %s.\n", gameID)
		return nil
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Get top scores
	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	// Display scores
	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blightsong play %s' to set the first high score!\n", gameID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, dateStr)
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.1f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}

	var runs []storage.Run
	title := "Recent runs"
	if flagLongest {
		title = "Longest runs"
		runs, err = store.LongestRuns(gameID, flagRuns)
	} else {
		runs, err = store.RecentRuns(gameID, flagRuns)
	}
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(title)
	printRuns(runs)
	return nil
}

func showPlayer(store *storage.Store, player string) error {
	runs, err := store.PlayerRuns(player, flagRuns)
	if err != nil {
		return err
	}
	fmt.Printf("Runs by %s\n", player)
	printRuns(runs)
	return nil
}

func showRun(store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with ID %q", runID)
	}

	fmt.Printf("Run %s\n\n", r.RunID)
	fmt.Printf("  Game:       %s\n", r.GameID)
	fmt.Printf("  Player:     %s\n", r.Player)
	fmt.Printf("  Seed:       %d\n", r.Seed)
	fmt.Printf("  Score:      %d\n", r.Score)
	fmt.Printf("  Notes:      %d collected, %d played\n", r.Notes, r.Performed)
	fmt.Printf("  Blight:     %d tiles\n", r.Corrupted)
	fmt.Printf("  Survived:   %s\n", formatSeconds(r.Duration))
	fmt.Printf("  Ended:      %s\n", r.EndReason)
	fmt.Printf("  Played at:  %s\n", r.CreatedAt.Format("2006-01-02 15:04"))
	fmt.Println()
	fmt.Printf("Replay the same stage with: blightsong play %s --seed %d\n", r.GameID, r.Seed)
	return nil
}

func showSummary(store *storage.Store) error {
	all, err := store.GetAllGamesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No games played yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "Game", "Games", "Best", "Average", "Last played")
	fmt.Printf("  %-16s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
	for _, id := range ids {
		gs := all[id]
		fmt.Printf("  %-16s  %-6d  %-6d  %-8.1f  %s\n",
			id, gs.GamesCount, gs.HighScore, gs.AvgScore, gs.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

func printRuns(runs []storage.Run) {
	if len(runs) == 0 {
		fmt.Println("  No runs recorded yet.")
		return
	}
	fmt.Printf("  %-8s  %-6s  %-6s  %-8s  %-9s  %-12s  %s\n", "Score", "Notes", "Blight", "Time", "End", "Player", "Run")
	for _, r := range runs {
		fmt.Printf("  %-8d  %-6d  %-6d  %-8s  %-9s  %-12s  %s\n",
			r.Score, r.Notes, r.Corrupted, formatSeconds(r.Duration), r.EndReason, r.Player, r.RunID)
	}
}

// formatSeconds renders seconds as m:ss.
func formatSeconds(secs float64) string {
	total := int(secs)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
