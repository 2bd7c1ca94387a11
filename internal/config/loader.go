package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file configuration.
const (
	EnvDBPath    = "WORDHUNT_DB"
	EnvLogLevel  = "WORDHUNT_LOG_LEVEL"
	EnvMaxLevels = "WORDHUNT_MAX_LEVELS"
	EnvSeed      = "WORDHUNT_SEED"
)

// Load loads the wordhunt configuration.
// Search order: customPath -> ~/.wordhunt/configs/wordhunt.yaml -> ./configs/wordhunt.yaml -> embedded default.
// Values from a .env file and the environment are applied on top.
func Load(customPath string) (Config, error) {
	cfg := Default()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
	} else if !loadFirst(&cfg, userConfigPath("wordhunt.yaml"), filepath.Join("configs", "wordhunt.yaml")) {
		if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
			cfg = Default() // Fallback to hardcoded if embed fails
		}
	}

	// A missing .env file is the normal case.
	_ = godotenv.Load()
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// loadFirst unmarshals the first readable and parseable file into cfg.
func loadFirst(cfg *Config, paths ...string) bool {
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := *cfg
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			*cfg = candidate
			return true
		}
	}
	return false
}

// applyEnv overrides configuration values from the environment.
func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDBPath); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv(EnvMaxLevels); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxLevels, v, err)
		}
		cfg.Game.MaxLevels = n
	}
	if v := os.Getenv(EnvSeed); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvSeed, v, err)
		}
		cfg.Game.Seed = n
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".wordhunt", "configs", filename)
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	var errs []error
	if c.Game.MaxLevels < 1 {
		errs = append(errs, fmt.Errorf("game.max_levels must be at least 1, got %d", c.Game.MaxLevels))
	}

	p := c.Progression
	if p.MinWords < minPlayableWords {
		errs = append(errs, fmt.Errorf("progression.min_words must be at least %d, got %d", minPlayableWords, p.MinWords))
	}
	if p.MaxWords != 0 && p.MaxWords < p.MinWords {
		errs = append(errs, fmt.Errorf("progression.max_words (%d) is below min_words (%d)", p.MaxWords, p.MinWords))
	}
	if p.WordsPerLevel < 0 || p.FieldSizeStep < 0 {
		errs = append(errs, errors.New("progression steps must not be negative"))
	}
	if p.BaseFieldSize < minPlayableWords {
		errs = append(errs, fmt.Errorf("progression.base_field_size must be at least %d, got %d", minPlayableWords, p.BaseFieldSize))
	}
	if p.MaxFieldSize != 0 && p.MaxFieldSize < p.BaseFieldSize {
		errs = append(errs, fmt.Errorf("progression.max_field_size (%d) is below base_field_size (%d)", p.MaxFieldSize, p.BaseFieldSize))
	}
	if p.BaseTimeLimit < 0 || p.TimePerWord < 0 {
		errs = append(errs, errors.New("progression time limits must not be negative"))
	}

	if c.Generator.MaxTrials < 1 {
		errs = append(errs, fmt.Errorf("generator.max_trials must be at least 1, got %d", c.Generator.MaxTrials))
	}
	if c.Generator.MaxRestarts < 0 {
		errs = append(errs, fmt.Errorf("generator.max_restarts must not be negative, got %d", c.Generator.MaxRestarts))
	}

	s := c.Scoring
	if s.WordPoints < 0 || s.MissPenalty < 0 || s.CompletionBonus < 0 || s.TimeBonusPerSecond < 0 {
		errs = append(errs, errors.New("scoring weights must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ApplyPresetName applies a preset by name; empty and "normal" are no-ops.
func ApplyPresetName(cfg *Config, name string) error {
	switch DifficultyPreset(strings.ToLower(name)) {
	case "", DifficultyNormal:
		return nil
	case DifficultyEasy:
		ApplyPreset(cfg, DifficultyEasy)
	case DifficultyHard:
		ApplyPreset(cfg, DifficultyHard)
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
	return nil
}
