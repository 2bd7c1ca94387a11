package config

import "time"

// minPlayableWords is the floor on words per level.
const minPlayableWords = 3

// WordCount returns the number of words to hide on a level, capped by
// MaxWords and by the number of words available in the bank.
func (p ProgressionConfig) WordCount(level, available int) int {
	level = maxInt(level, 1)
	count := maxInt(p.MinWords, minPlayableWords) + (level-1)*maxInt(p.WordsPerLevel, 0)
	if p.MaxWords > 0 && count > p.MaxWords {
		count = p.MaxWords
	}
	if count > available {
		count = available
	}
	return count
}

// FieldSize returns the grid size for a level before word-length adjustments.
func (p ProgressionConfig) FieldSize(level int) int {
	level = maxInt(level, 1)
	size := p.BaseFieldSize + (level-1)*maxInt(p.FieldSizeStep, 0)
	if p.MaxFieldSize > 0 && size > p.MaxFieldSize {
		size = p.MaxFieldSize
	}
	return size
}

// TimeLimit returns the time allowed for a level with the given word count.
func (p ProgressionConfig) TimeLimit(words int) time.Duration {
	return p.BaseTimeLimit + time.Duration(words)*p.TimePerWord
}

// Diagonals reports whether diagonal placements are allowed on a level.
func (p ProgressionConfig) Diagonals(level int) bool {
	return level >= p.DiagonalsFromLevel
}

// Backwards reports whether reversed placements are allowed on a level.
func (p ProgressionConfig) Backwards(level int) bool {
	return level >= p.BackwardsFromLevel
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// TimeFactorForPreset returns the time limit multiplier for a preset.
func TimeFactorForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.7
	default:
		return 1.0
	}
}

// ApplyPreset adjusts the progression for a difficulty preset.
// Hard also allows every direction from the first level.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	factor := TimeFactorForPreset(preset)
	p := &cfg.Progression
	p.BaseTimeLimit = scaleDuration(p.BaseTimeLimit, factor)
	p.TimePerWord = scaleDuration(p.TimePerWord, factor)

	switch preset {
	case DifficultyEasy:
		p.DiagonalsFromLevel = maxInt(p.DiagonalsFromLevel, 3)
		p.BackwardsFromLevel = maxInt(p.BackwardsFromLevel, 4)
	case DifficultyHard:
		p.DiagonalsFromLevel = 1
		p.BackwardsFromLevel = 1
	}
}

func scaleDuration(d time.Duration, factor float64) time.Duration {
	return time.Duration(float64(d) * factor).Round(time.Second)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
