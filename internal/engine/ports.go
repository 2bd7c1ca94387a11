package engine

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

// Sentinel errors returned by stores.
var (
	ErrNotFound     = errors.New("not found")
	ErrPlayerExists = errors.New("player already exists")
)

// Player is a registered player.
type Player struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// ThemeSummary describes a playable theme.
type ThemeSummary struct {
	ID        int64
	Name      string
	WordCount int
}

// LevelRecord is the persisted outcome of one level.
type LevelRecord struct {
	SessionID  string
	Level      int
	WordsFound int
	WordsTotal int
	TimeSpent  time.Duration
	Score      int
}

// ScoreEntry is one row of the leaderboard.
type ScoreEntry struct {
	PlayerName string
	Score      int
}

// PlayerDirectory finds and registers players. Name lookup ignores case.
type PlayerDirectory interface {
	// FindPlayerByName returns ErrNotFound when no player has the name.
	FindPlayerByName(ctx context.Context, name string) (Player, error)
	// FindPlayerByID returns ErrNotFound for an unknown ID.
	FindPlayerByID(ctx context.Context, id int64) (Player, error)
	// CreatePlayer returns ErrPlayerExists when the name is taken.
	CreatePlayer(ctx context.Context, name string) (Player, error)
}

// ThemeCatalog lists themes and loads their word banks.
type ThemeCatalog interface {
	// ListEligibleThemes returns themes with at least three words, ordered by name.
	ListEligibleThemes(ctx context.Context) ([]ThemeSummary, error)
	// LoadWordBank returns ErrNotFound for an unknown theme.
	LoadWordBank(ctx context.Context, themeID int64) (wordbank.Theme, error)
}

// ResultsStore persists sessions and their results.
type ResultsStore interface {
	CreateSession(ctx context.Context, playerID, themeID int64) (string, error)
	// SaveLevelResult replaces any earlier result for the same session and level.
	SaveLevelResult(ctx context.Context, rec LevelRecord) (int64, error)
	SaveSessionScore(ctx context.Context, sessionID string, score int) error
	// TopScores returns each player's best session score, highest first.
	TopScores(ctx context.Context, limit int) ([]ScoreEntry, error)
}

// Store is the full set of collaborators the engine needs.
type Store interface {
	PlayerDirectory
	ThemeCatalog
	ResultsStore
}
