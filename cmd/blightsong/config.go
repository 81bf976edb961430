package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blightsong/internal/config"
)

var (
	flagShowConfig     string
	flagShowDifficulty string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game config",
	Long: `Resolve the game config the way 'play' does and print it as YAML.

Search order: --config, ~/.blightsong/configs/blight.yaml,
./configs/blight.yaml, then the built-in defaults. A difficulty preset is
applied on top when given. Redirect the output to start a custom config.

Examples:
  blightsong config
  blightsong config --difficulty hard
  blightsong config > ~/.blightsong/configs/blight.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagShowConfig, "config", "", "Path to custom game config YAML")
	configCmd.Flags().StringVar(&flagShowDifficulty, "difficulty", "", "Difficulty preset to apply: easy, normal, hard, fixed")
}

func runConfig(_ *cobra.Command, _ []string) {
	preset, err := config.ParsePreset(flagShowDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, path, err := config.LoadBlight(flagShowConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagShowDifficulty != "" {
		config.ApplyBlightPreset(&cfg, preset)
	}

	if path == "" {
		path = "built-in defaults"
	}
	fmt.Printf("# source: %s\n", path)
	if flagShowDifficulty != "" {
		fmt.Printf("# difficulty: %s\n", preset)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	_ = enc.Close()
}
