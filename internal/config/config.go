// Package config provides YAML-based configuration loading and
// level progression rules for wordhunt.
package config

import "time"

// Config is the complete wordhunt configuration.
type Config struct {
	Game        GameConfig        `yaml:"game"`
	Progression ProgressionConfig `yaml:"progression"`
	Generator   GeneratorConfig   `yaml:"generator"`
	Scoring     ScoringConfig     `yaml:"scoring"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Log         LogConfig         `yaml:"log"`
}

// GameConfig holds session-wide settings.
type GameConfig struct {
	MaxLevels int   `yaml:"max_levels"`
	Seed      int64 `yaml:"seed"` // 0 = seed from time
}

// ProgressionConfig defines how levels get harder.
// Word count and field size grow with the level index up to their caps.
type ProgressionConfig struct {
	MinWords      int `yaml:"min_words"`       // Words on level 1 (at least 3)
	MaxWords      int `yaml:"max_words"`       // Cap on words per level (0 = bank size)
	WordsPerLevel int `yaml:"words_per_level"` // Extra words per level

	BaseFieldSize int `yaml:"base_field_size"` // Grid size on level 1
	FieldSizeStep int `yaml:"field_size_step"` // Grid growth per level
	MaxFieldSize  int `yaml:"max_field_size"`  // Largest grid

	BaseTimeLimit time.Duration `yaml:"base_time_limit"` // Time on every level
	TimePerWord   time.Duration `yaml:"time_per_word"`   // Added per hidden word

	DiagonalsFromLevel int `yaml:"diagonals_from_level"` // First level with diagonal words
	BackwardsFromLevel int `yaml:"backwards_from_level"` // First level with reversed words
}

// GeneratorConfig bounds the grid generator's retry budget.
type GeneratorConfig struct {
	MaxTrials   int `yaml:"max_trials"`   // Placement attempts per word
	MaxRestarts int `yaml:"max_restarts"` // Full-grid restarts
}

// ScoringConfig holds the level score weights.
type ScoringConfig struct {
	WordPoints         int `yaml:"word_points"`
	MissPenalty        int `yaml:"miss_penalty"`
	CompletionBonus    int `yaml:"completion_bonus"`
	TimeBonusPerSecond int `yaml:"time_bonus_per_second"`
}

// StorageConfig locates persistent data.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	ThemesDir string `yaml:"themes_dir"` // Extra YAML theme packs to import on start
}

// ServerConfig configures the remote play surfaces.
type ServerConfig struct {
	SSHAddr     string        `yaml:"ssh_addr"`
	HTTPAddr    string        `yaml:"http_addr"`
	HostKeyPath string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}
