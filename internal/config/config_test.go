package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedYAMLMatchesDefault(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() disagree:\nyaml:    %+v\ndefault: %+v", cfg, Default())
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("game:\n  max_levels: 3\nprogression:\n  base_time_limit: 45s\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Game.MaxLevels != 3 {
		t.Errorf("expected max_levels 3, got %d", cfg.Game.MaxLevels)
	}
	if cfg.Progression.BaseTimeLimit != 45*time.Second {
		t.Errorf("expected base_time_limit 45s, got %v", cfg.Progression.BaseTimeLimit)
	}
	if cfg.Progression.MinWords != Default().Progression.MinWords {
		t.Errorf("unset fields should keep defaults, got min_words %d", cfg.Progression.MinWords)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvDBPath, "/tmp/other.db")
	t.Setenv(EnvMaxLevels, "2")
	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Storage.DBPath != "/tmp/other.db" {
		t.Errorf("expected db override, got %q", cfg.Storage.DBPath)
	}
	if cfg.Game.MaxLevels != 2 || cfg.Game.Seed != 99 {
		t.Errorf("expected max_levels 2 and seed 99, got %d and %d", cfg.Game.MaxLevels, cfg.Game.Seed)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}

	t.Setenv(EnvMaxLevels, "lots")
	if _, err := Load(path); err == nil {
		t.Error("expected error for non-numeric max levels")
	}
}

func TestValidateRejectsUnplayableConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no levels", func(c *Config) { c.Game.MaxLevels = 0 }},
		{"too few words", func(c *Config) { c.Progression.MinWords = 2 }},
		{"max below min", func(c *Config) { c.Progression.MaxWords = 2 }},
		{"tiny grid", func(c *Config) { c.Progression.BaseFieldSize = 2 }},
		{"max grid below base", func(c *Config) { c.Progression.MaxFieldSize = 5 }},
		{"no trials", func(c *Config) { c.Generator.MaxTrials = 0 }},
		{"negative score", func(c *Config) { c.Scoring.MissPenalty = -1 }},
	}

	if err := Default().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestProgressionIsMonotonic(t *testing.T) {
	p := Default().Progression
	prevWords, prevSize := 0, 0
	for level := 1; level <= 10; level++ {
		words := p.WordCount(level, 100)
		size := p.FieldSize(level)
		if words < prevWords {
			t.Errorf("level %d: word count dropped from %d to %d", level, prevWords, words)
		}
		if size < prevSize {
			t.Errorf("level %d: field size dropped from %d to %d", level, prevSize, size)
		}
		prevWords, prevSize = words, size
	}

	if got := p.WordCount(1, 100); got != 3 {
		t.Errorf("level 1 should hide 3 words, got %d", got)
	}
	if got := p.WordCount(10, 100); got != p.MaxWords {
		t.Errorf("word count should cap at %d, got %d", p.MaxWords, got)
	}
	if got := p.WordCount(10, 4); got != 4 {
		t.Errorf("word count should cap at bank size 4, got %d", got)
	}
	if got := p.FieldSize(50); got != p.MaxFieldSize {
		t.Errorf("field size should cap at %d, got %d", p.MaxFieldSize, got)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	if err := ApplyPresetName(&cfg, "hard"); err != nil {
		t.Fatal(err)
	}
	if cfg.Progression.BaseTimeLimit != 42*time.Second {
		t.Errorf("hard base time = %v, want 42s", cfg.Progression.BaseTimeLimit)
	}
	if !cfg.Progression.Diagonals(1) || !cfg.Progression.Backwards(1) {
		t.Error("hard should allow every direction from level 1")
	}

	cfg = Default()
	if err := ApplyPresetName(&cfg, "easy"); err != nil {
		t.Fatal(err)
	}
	if cfg.Progression.BaseTimeLimit != 90*time.Second {
		t.Errorf("easy base time = %v, want 90s", cfg.Progression.BaseTimeLimit)
	}
	if cfg.Progression.Diagonals(2) {
		t.Error("easy should delay diagonals past level 2")
	}

	if err := ApplyPresetName(&cfg, "nightmare"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
