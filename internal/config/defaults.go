package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/wordhunt.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			MaxLevels: 5,
		},
		Progression: ProgressionConfig{
			MinWords:           3,
			MaxWords:           12,
			WordsPerLevel:      2,
			BaseFieldSize:      8,
			FieldSizeStep:      1,
			MaxFieldSize:       15,
			BaseTimeLimit:      60 * time.Second,
			TimePerWord:        20 * time.Second,
			DiagonalsFromLevel: 2,
			BackwardsFromLevel: 3,
		},
		Generator: GeneratorConfig{
			MaxTrials:   200,
			MaxRestarts: 50,
		},
		Scoring: ScoringConfig{
			WordPoints:         100,
			MissPenalty:        25,
			CompletionBonus:    250,
			TimeBonusPerSecond: 5,
		},
		Storage: StorageConfig{
			DBPath: "~/.wordhunt/wordhunt.db",
		},
		Server: ServerConfig{
			SSHAddr:     ":23235",
			HTTPAddr:    ":8080",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
