package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/wordhunt/internal/config"
	"github.com/vovakirdan/wordhunt/internal/engine"
)

// withFlags sets the global flags for one test.
func withFlags(t *testing.T, cfgPath, db string, seed int64, difficulty string) {
	t.Helper()
	for _, env := range []string{config.EnvDBPath, config.EnvLogLevel, config.EnvMaxLevels, config.EnvSeed} {
		t.Setenv(env, "")
	}
	oldConfig, oldDB, oldSeed, oldDifficulty, oldLevel := flagConfig, flagDBPath, flagSeed, flagDifficulty, flagLogLevel
	flagConfig, flagDBPath, flagSeed, flagDifficulty, flagLogLevel = cfgPath, db, seed, difficulty, ""
	t.Cleanup(func() {
		flagConfig, flagDBPath, flagSeed, flagDifficulty, flagLogLevel = oldConfig, oldDB, oldSeed, oldDifficulty, oldLevel
	})
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "wordhunt.yaml")
	writeFile(t, cfgPath, "game:\n  max_levels: 3\n  seed: 5\n")

	withFlags(t, cfgPath, filepath.Join(dir, "flag.db"), 99, "")
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig failed: %v", err)
	}
	if cfg.Game.MaxLevels != 3 {
		t.Errorf("expected max levels from file, got %d", cfg.Game.MaxLevels)
	}
	if cfg.Game.Seed != 99 {
		t.Errorf("expected seed from flag, got %d", cfg.Game.Seed)
	}
	if cfg.Storage.DBPath != filepath.Join(dir, "flag.db") {
		t.Errorf("expected db path from flag, got %s", cfg.Storage.DBPath)
	}
}

func TestLoadConfigRejectsUnknownDifficulty(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "wordhunt.yaml")
	writeFile(t, cfgPath, "game:\n  max_levels: 2\n")

	withFlags(t, cfgPath, "", 0, "nightmare")
	if _, err := loadConfig(); err == nil {
		t.Error("expected error for unknown difficulty")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		level   string
		wantErr bool
	}{
		{"", false},
		{"debug", false},
		{"warn", false},
		{"loud", true},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			_, err := newLogger(io.Discard, tt.level, "test")
			if (err != nil) != tt.wantErr {
				t.Errorf("newLogger(%q) error = %v, wantErr %v", tt.level, err, tt.wantErr)
			}
		})
	}
}

func TestOpenStoreSeedsAndImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "packs", "extra.yaml"),
		"themes:\n  - name: Zzz Extra\n    words: [alpha, beta, gamma]\n")

	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(dir, "test.db")
	cfg.Storage.ThemesDir = filepath.Join(dir, "packs")

	logger, err := newLogger(io.Discard, "", "test")
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("openStore failed: %v", err)
	}
	defer store.Close()

	list, err := engine.New(store, cfg, logger).Themes(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) < 2 {
		t.Fatalf("expected builtin and imported themes, got %+v", list)
	}
	found := false
	for _, th := range list {
		if th.Name == "Zzz Extra" && th.WordCount == 3 {
			found = true
		}
	}
	if !found {
		t.Errorf("imported theme missing from %+v", list)
	}
}
