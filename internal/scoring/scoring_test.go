package scoring

import (
	"sync"
	"testing"
	"time"
)

func TestScoreLevelMonotonicInWordsFound(t *testing.T) {
	p := DefaultPolicy()
	s3 := p.ScoreLevel(3, 5, 10*time.Second, 60*time.Second)
	s4 := p.ScoreLevel(4, 5, 10*time.Second, 60*time.Second)
	s5 := p.ScoreLevel(5, 5, 10*time.Second, 60*time.Second)

	if !(s3 <= s4 && s4 <= s5) {
		t.Errorf("expected %d <= %d <= %d", s3, s4, s5)
	}
}

func TestScoreLevelMonotonicInTime(t *testing.T) {
	p := DefaultPolicy()
	slow := p.ScoreLevel(5, 5, 50*time.Second, 60*time.Second)
	fast := p.ScoreLevel(5, 5, 10*time.Second, 60*time.Second)

	if slow > fast {
		t.Errorf("slower completion scored higher: %d > %d", slow, fast)
	}
}

func TestScoreLevel(t *testing.T) {
	p := Policy{WordPoints: 100, MissPenalty: 25, CompletionBonus: 250, TimeBonusPerSecond: 5}

	tests := []struct {
		name         string
		found, total int
		spent, limit time.Duration
		want         int
	}{
		{"complete with time left", 3, 3, 20 * time.Second, 60 * time.Second, 300 + 250 + 40*5},
		{"complete at the buzzer", 3, 3, 60 * time.Second, 60 * time.Second, 300 + 250},
		{"partial", 2, 3, 60 * time.Second, 60 * time.Second, 200 - 25},
		{"nothing found clamps to zero", 0, 4, 60 * time.Second, 60 * time.Second, 0},
		{"fractional seconds drop", 1, 1, 500 * time.Millisecond, 2 * time.Second, 100 + 250 + 5},
		{"empty level", 0, 0, 0, 60 * time.Second, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ScoreLevel(tt.found, tt.total, tt.spent, tt.limit)
			if got != tt.want {
				t.Errorf("ScoreLevel(%d, %d, %v, %v) = %d, want %d",
					tt.found, tt.total, tt.spent, tt.limit, got, tt.want)
			}
		})
	}
}

func TestScoreSession(t *testing.T) {
	p := DefaultPolicy()
	if got := p.ScoreSession(nil); got != 0 {
		t.Errorf("empty session scored %d", got)
	}
	if got := p.ScoreSession([]int{100, 0, 250}); got != 350 {
		t.Errorf("ScoreSession = %d, want 350", got)
	}
}

func TestTallyUpsertIsIdempotent(t *testing.T) {
	tally := NewTally(DefaultPolicy())
	tally.Record(1, 3, 3, 10*time.Second, 60*time.Second)
	first := tally.Total()

	tally.Record(1, 3, 3, 10*time.Second, 60*time.Second)
	if got := tally.Total(); got != first {
		t.Errorf("re-recording level 1 changed total from %d to %d", first, got)
	}

	tally.Record(2, 1, 5, 90*time.Second, 90*time.Second)
	results := tally.Results()
	if len(results) != 2 || results[0].Level != 1 || results[1].Level != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if tally.Total() != results[0].Score+results[1].Score {
		t.Errorf("total %d does not match level sum", tally.Total())
	}
}

func TestTallyConcurrentRecord(t *testing.T) {
	tally := NewTally(DefaultPolicy())

	var wg sync.WaitGroup
	for level := 1; level <= 10; level++ {
		wg.Add(1)
		go func(level int) {
			defer wg.Done()
			tally.Record(level, 1, 1, 0, 10*time.Second)
		}(level)
	}
	wg.Wait()

	if n := len(tally.Results()); n != 10 {
		t.Errorf("expected 10 results, got %d", n)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{9 * time.Second, "0:09"},
		{75 * time.Second, "1:15"},
		{10*time.Minute + 1500*time.Millisecond, "10:01"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
