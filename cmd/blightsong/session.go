package main

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blightsong/internal/audio"
	"github.com/vovakirdan/blightsong/internal/config"
	"github.com/vovakirdan/blightsong/internal/games/blight"
	"github.com/vovakirdan/blightsong/internal/platform/tui"
	"github.com/vovakirdan/blightsong/internal/storage"
)

// localSession holds everything a local play session opens and must close.
type localSession struct {
	store   *storage.Store
	audio   audio.Player
	watcher *config.Watcher
	logger  *log.Logger
	logFile *os.File
	player  string
}

// openLocalSession prepares logging, storage, sound and the config watcher
// from the play flags. Only an unusable log file or difficulty is fatal;
// everything else degrades with a warning.
func openLocalSession(cmd *cobra.Command) (*localSession, error) {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return nil, err
	}

	logger, logFile, err := openFileLogger(flagLogPath, flagLogLevel)
	if err != nil {
		return nil, err
	}
	log.SetDefault(logger)

	s := &localSession{
		logger:  logger,
		logFile: logFile,
		player:  currentUser(),
	}

	blight.SetConfigPath(flagConfig)
	blight.SetDifficultyPreset(flagDifficulty)
	blight.SetLogger(logger)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("scores disabled", "db", flagDBPath, "err", err)
		// Continue without storage - game still works
	} else {
		s.store = store
	}

	// Sound settings come from the config unless a flag overrides them.
	sound, volume := true, flagVolume
	if cfg, _, err := config.LoadBlight(flagConfig); err == nil {
		sound = cfg.Melody.Sound
		if !cmd.Flags().Changed("volume") {
			volume = cfg.Melody.Volume
		}
	}
	player, err := audio.OpenOrSilent(sound && !flagMute, volume)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		logger.Warn("sound disabled", "err", err)
	}
	s.audio = player

	if flagWatch {
		s.openWatcher()
	}

	return s, nil
}

// openWatcher watches whichever config file the game would load.
func (s *localSession) openWatcher() {
	_, path, err := config.LoadBlight(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config not watched: %v\n", err)
		return
	}
	w, err := config.NewWatcher(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config not watched: %v\n", err)
		s.logger.Warn("config watch disabled", "err", err)
		return
	}
	s.watcher = w
	s.logger.Info("watching config", "path", path)
}

// options returns the game model options for preset.
func (s *localSession) options(preset config.DifficultyPreset) tui.Options {
	opts := tui.Options{
		Store:      s.store,
		Audio:      s.audio,
		Player:     s.player,
		Difficulty: preset,
		Logger:     s.logger,
		QuitOnBack: true,
	}
	if s.watcher != nil {
		opts.Reloads = s.watcher.Reloads
	}
	return opts
}

// Close releases the session's resources in reverse order of opening.
func (s *localSession) Close() {
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			s.logger.Warn("closing config watcher", "err", err)
		}
	}
	if s.audio != nil {
		s.audio.Close()
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Warn("closing scores database", "err", err)
		}
	}
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// openFileLogger logs to path because the game owns the terminal.
func openFileLogger(path, level string) (*log.Logger, *os.File, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", level, err)
	}

	path, err = expandHome(path)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "blightsong",
		Level:           lvl,
	})
	return logger, f, nil
}

// expandHome replaces a leading ~ with the home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// currentUser names the local player in run history.
func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "local"
}
