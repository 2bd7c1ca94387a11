// Package scoring turns level performance into points.
package scoring

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/wordhunt/internal/config"
)

// Policy holds the weights for scoring a level.
type Policy struct {
	WordPoints         int
	MissPenalty        int
	CompletionBonus    int
	TimeBonusPerSecond int
}

// NewPolicy builds a policy from configuration.
func NewPolicy(cfg config.ScoringConfig) Policy {
	return Policy{
		WordPoints:         cfg.WordPoints,
		MissPenalty:        cfg.MissPenalty,
		CompletionBonus:    cfg.CompletionBonus,
		TimeBonusPerSecond: cfg.TimeBonusPerSecond,
	}
}

// DefaultPolicy returns the policy for the default configuration.
func DefaultPolicy() Policy {
	return NewPolicy(config.Default().Scoring)
}

// ScoreLevel scores one level. Every found word earns points and every
// missed word costs a penalty. Finding all words adds the completion bonus
// plus a bonus per whole second left on the clock. Never negative.
func (p Policy) ScoreLevel(found, total int, spent, limit time.Duration) int {
	if found < 0 {
		found = 0
	}
	if total < found {
		total = found
	}
	missed := total - found

	score := found*p.WordPoints - missed*p.MissPenalty
	if total > 0 && missed == 0 {
		score += p.CompletionBonus
		if left := limit - spent; left > 0 {
			score += int(left/time.Second) * p.TimeBonusPerSecond
		}
	}
	if score < 0 {
		return 0
	}
	return score
}

// ScoreSession aggregates level scores into a session score.
func (p Policy) ScoreSession(levelScores []int) int {
	total := 0
	for _, s := range levelScores {
		total += s
	}
	return total
}

// LevelResult is the outcome of one finished level.
type LevelResult struct {
	Level     int
	Found     int
	Total     int
	TimeSpent time.Duration
	TimeLimit time.Duration
	Score     int
}

// Tally accumulates level results for a session. Recording the same level
// again replaces the earlier result, so totals are idempotent.
type Tally struct {
	mu      sync.Mutex
	policy  Policy
	results map[int]LevelResult
}

// NewTally creates an empty tally scored with policy.
func NewTally(policy Policy) *Tally {
	return &Tally{
		policy:  policy,
		results: make(map[int]LevelResult),
	}
}

// Record scores a level and stores it under its level index.
func (t *Tally) Record(level, found, total int, spent, limit time.Duration) LevelResult {
	r := LevelResult{
		Level:     level,
		Found:     found,
		Total:     total,
		TimeSpent: spent,
		TimeLimit: limit,
		Score:     t.policy.ScoreLevel(found, total, spent, limit),
	}
	t.mu.Lock()
	t.results[level] = r
	t.mu.Unlock()
	return r
}

// Results returns recorded levels ordered by level index.
func (t *Tally) Results() []LevelResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]LevelResult, 0, len(t.results))
	for _, r := range t.results {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// Total returns the session score over all recorded levels.
func (t *Tally) Total() int {
	results := t.Results()
	scores := make([]int, len(results))
	for i, r := range results {
		scores[i] = r.Score
	}
	return t.policy.ScoreSession(scores)
}

// FormatDuration renders a duration as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
