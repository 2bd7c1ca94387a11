package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/storage"
	"github.com/vovakirdan/wordhunt/internal/themes"
)

// loadConfig reads the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagSeed != 0 {
		cfg.Game.Seed = flagSeed
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := config.ApplyPresetName(&cfg, flagDifficulty); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger creates the process logger. Output goes to w so the TUI can
// silence it while it owns the terminal.
func newLogger(w io.Writer, level, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level == "" {
		return logger, nil
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// openStore opens the database and imports the built-in theme packs plus
// any configured extra directory.
func openStore(ctx context.Context, cfg config.Config, logger *log.Logger) (*storage.Store, error) {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return nil, err
	}

	res, err := themes.Seed(ctx, store)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("seed themes: %w", err)
	}
	logger.Debug("built-in themes ready", "themes", res.Themes, "new_words", res.Words)

	if dir := cfg.Storage.ThemesDir; dir != "" {
		extra, err := themes.NewDirLoader(dir).LoadAll()
		if err != nil {
			logger.Warn("could not load theme directory", "dir", dir, "error", err)
		} else if res, err := themes.Import(ctx, store, extra); err != nil {
			logger.Warn("could not import themes", "dir", dir, "error", err)
		} else {
			logger.Debug("themes imported", "dir", dir, "themes", res.Themes, "new_words", res.Words)
		}
	}
	return store, nil
}

// mustEngine loads everything a command needs to play, exiting on failure.
func mustEngine(ctx context.Context, logOut io.Writer, prefix string) (*engine.Engine, *storage.Store, *log.Logger, config.Config) {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger, err := newLogger(logOut, cfg.Log.Level, prefix)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return engine.New(store, cfg, logger), store, logger, cfg
}
