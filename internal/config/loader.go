package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in every search directory.
const FileName = "blight.yaml"

// LoadBlight loads the blight configuration.
// Search order: customPath -> ~/.blightsong/configs/blight.yaml -> ./configs/blight.yaml -> embedded default
//
// The returned path is the file that was read, or "" for the embedded default.
func LoadBlight(customPath string) (BlightConfig, string, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, "", err
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath(FileName), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultBlightConfig()
	if err := yaml.Unmarshal(defaultBlightYAML, &cfg); err != nil {
		return DefaultBlightConfig(), "", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "", nil
}

// loadFile reads path over the hardcoded defaults, so a file may set only
// the keys it cares about.
func loadFile(path string) (BlightConfig, error) {
	cfg := DefaultBlightConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blightsong", "configs", filename)
}

// ApplyBlightPreset modifies the config based on a difficulty preset.
func ApplyBlightPreset(cfg *BlightConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the stage based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Stage.SafeRadius = max(cfg.Stage.SafeRadius, 12)
		cfg.Stage.MaxSeeds = min(cfg.Stage.MaxSeeds, 12)
	case DifficultyHard:
		cfg.Stage.SafeRadius = min(cfg.Stage.SafeRadius, 6)
		cfg.Corruption.InitialPeriod *= 0.75
	}
}
