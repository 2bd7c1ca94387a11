package httpapi

import (
	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/scoring"
	"github.com/vovakirdan/wordhunt/internal/session"
)

// Request payloads.
type (
	loginReq struct {
		Name string `json:"name"`
	}
	createSessionReq struct {
		PlayerID int64 `json:"player_id"`
		ThemeID  int64 `json:"theme_id"`
	}
	submitReq struct {
		Cells [][]int `json:"cells"` // [[row, col], ...]
	}
	tickReq struct {
		ElapsedMS int64 `json:"elapsed_ms"`
	}
)

// Response payloads.
type (
	playerRes struct {
		ID      int64  `json:"id"`
		Name    string `json:"name"`
		Created bool   `json:"created"`
	}
	themeRes struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		WordCount int    `json:"word_count"`
	}
	levelRes struct {
		Index       int      `json:"index"`
		FieldSize   int      `json:"field_size"`
		TimeLimitMS int64    `json:"time_limit_ms"`
		RemainingMS int64    `json:"remaining_ms"`
		ElapsedMS   int64    `json:"elapsed_ms"`
		Grid        []string `json:"grid"`
		Words       []string `json:"words"`
		Found       []string `json:"found"`
		Reason      string   `json:"reason"`
	}
	resultRes struct {
		Level       int   `json:"level"`
		Found       int   `json:"found"`
		Total       int   `json:"total"`
		TimeSpentMS int64 `json:"time_spent_ms"`
		Score       int   `json:"score"`
	}
	sessionRes struct {
		ID         string      `json:"id"`
		PlayerID   int64       `json:"player_id"`
		PlayerName string      `json:"player_name"`
		ThemeID    int64       `json:"theme_id"`
		ThemeName  string      `json:"theme_name"`
		State      string      `json:"state"`
		Level      int         `json:"level"`
		MaxLevels  int         `json:"max_levels"`
		Current    *levelRes   `json:"current,omitempty"`
		Results    []resultRes `json:"results"`
		Score      int         `json:"score"`
		FinalScore *int        `json:"final_score,omitempty"`
	}
	verdictRes struct {
		Outcome string     `json:"outcome"`
		Word    string     `json:"word,omitempty"`
		Session sessionRes `json:"session"`
	}
	endRes struct {
		Score int    `json:"score"`
		Saved bool   `json:"saved"`
		Error string `json:"error,omitempty"`
	}
	scoreRes struct {
		Rank       int    `json:"rank"`
		PlayerName string `json:"player_name"`
		Score      int    `json:"score"`
	}
	errorRes struct {
		Error string `json:"error"`
	}
)

func toPlayer(p engine.Player, created bool) playerRes {
	return playerRes{ID: p.ID, Name: p.Name, Created: created}
}

func toThemes(ts []engine.ThemeSummary) []themeRes {
	out := make([]themeRes, len(ts))
	for i, t := range ts {
		out[i] = themeRes{ID: t.ID, Name: t.Name, WordCount: t.WordCount}
	}
	return out
}

// toSession converts a snapshot. Word placements are never exposed.
func toSession(s session.Snapshot) sessionRes {
	res := sessionRes{
		ID:         s.ID,
		PlayerID:   s.PlayerID,
		PlayerName: s.PlayerName,
		ThemeID:    s.ThemeID,
		ThemeName:  s.ThemeName,
		State:      s.State.String(),
		Level:      s.Level,
		MaxLevels:  s.MaxLevels,
		Results:    toResults(s.Results),
		Score:      s.Score,
	}
	if s.Ended {
		score := s.FinalScore
		res.FinalScore = &score
	}
	if lvl := s.Current; lvl != nil {
		res.Current = &levelRes{
			Index:       lvl.Index,
			FieldSize:   lvl.FieldSize,
			TimeLimitMS: lvl.TimeLimit.Milliseconds(),
			RemainingMS: lvl.Remaining.Milliseconds(),
			ElapsedMS:   lvl.Elapsed.Milliseconds(),
			Words:       append([]string{}, lvl.Targets...),
			Found:       append([]string{}, lvl.Found...),
			Reason:      lvl.Reason.String(),
		}
		if lvl.Grid != nil {
			res.Current.Grid = lvl.Grid.Rows()
		}
	}
	return res
}

func toResults(rs []scoring.LevelResult) []resultRes {
	out := make([]resultRes, len(rs))
	for i, r := range rs {
		out[i] = resultRes{
			Level:       r.Level,
			Found:       r.Found,
			Total:       r.Total,
			TimeSpentMS: r.TimeSpent.Milliseconds(),
			Score:       r.Score,
		}
	}
	return out
}

func toScores(entries []engine.ScoreEntry) []scoreRes {
	out := make([]scoreRes, len(entries))
	for i, e := range entries {
		out[i] = scoreRes{Rank: i + 1, PlayerName: e.PlayerName, Score: e.Score}
	}
	return out
}

// toCells converts [[row, col], ...] pairs.
func toCells(pairs [][]int) ([]puzzle.Coord, bool) {
	cells := make([]puzzle.Coord, len(pairs))
	for i, p := range pairs {
		if len(p) != 2 {
			return nil, false
		}
		cells[i] = puzzle.C(p[0], p[1])
	}
	return cells, true
}
