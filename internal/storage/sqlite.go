// Package storage provides persistence for players, themes and session
// results. Store uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies; Memory keeps everything in process.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/wordhunt/internal/engine"
	"github.com/vovakirdan/wordhunt/internal/puzzle"
	"github.com/vovakirdan/wordhunt/internal/wordbank"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != MemoryPath {
		// Expand ~ to home directory
		if dbPath != "" && dbPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
			}
			dbPath = filepath.Join(home, dbPath[1:])
		}

		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One connection: SQLite has a single writer, and each connection to
	// :memory: would otherwise see its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			name_key TEXT NOT NULL UNIQUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS themes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS words (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			theme_id INTEGER NOT NULL REFERENCES themes(id) ON DELETE CASCADE,
			word TEXT NOT NULL,
			UNIQUE (theme_id, word)
		);
		CREATE INDEX IF NOT EXISTS idx_words_theme ON words(theme_id);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			player_id INTEGER NOT NULL REFERENCES players(id),
			theme_id INTEGER NOT NULL REFERENCES themes(id),
			score INTEGER,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_id);
		CREATE INDEX IF NOT EXISTS idx_sessions_score ON sessions(score DESC);

		CREATE TABLE IF NOT EXISTS level_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			level INTEGER NOT NULL,
			words_found INTEGER NOT NULL,
			words_total INTEGER NOT NULL,
			time_spent_ms INTEGER NOT NULL,
			score INTEGER NOT NULL,
			UNIQUE (session_id, level)
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.rekeyPlayers()
}

// rekeyPlayers rewrites name keys stored by an older nameKey. A key that
// would collide with another player's is left as it is.
func (s *Store) rekeyPlayers() error {
	rows, err := s.db.Query("SELECT id, name, name_key FROM players")
	if err != nil {
		return err
	}
	type stale struct {
		id  int64
		key string
	}
	var todo []stale
	for rows.Next() {
		var (
			id        int64
			name, key string
		)
		if err := rows.Scan(&id, &name, &key); err != nil {
			rows.Close()
			return err
		}
		if want := nameKey(name); want != key {
			todo = append(todo, stale{id: id, key: want})
		}
	}
	if err := rows.Close(); err != nil {
		return err
	}

	for _, p := range todo {
		if _, err := s.db.Exec("UPDATE OR IGNORE players SET name_key = ? WHERE id = ?", p.key, p.id); err != nil {
			return err
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// nameKey is the case-insensitive lookup key for a player name. Lowering
// the upper-cased name also folds letters such as the Kelvin sign that
// have no single upper-case form in common with their lower case.
func nameKey(name string) string {
	return strings.ToLower(strings.ToUpper(strings.TrimSpace(name)))
}

// FindPlayerByID looks a player up by ID.
func (s *Store) FindPlayerByID(ctx context.Context, id int64) (engine.Player, error) {
	var p engine.Player
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM players WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return engine.Player{}, fmt.Errorf("storage: player %d: %w", id, engine.ErrNotFound)
	}
	if err != nil {
		return engine.Player{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// FindPlayerByName looks a player up ignoring case.
func (s *Store) FindPlayerByName(ctx context.Context, name string) (engine.Player, error) {
	var p engine.Player
	var createdAt any
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM players WHERE name_key = ?",
		nameKey(name),
	).Scan(&p.ID, &p.Name, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return engine.Player{}, fmt.Errorf("storage: player %q: %w", name, engine.ErrNotFound)
	}
	if err != nil {
		return engine.Player{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

// CreatePlayer registers a new player. Names are unique ignoring case.
func (s *Store) CreatePlayer(ctx context.Context, name string) (engine.Player, error) {
	name = strings.TrimSpace(name)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO players (name, name_key) VALUES (?, ?)
		 ON CONFLICT(name_key) DO NOTHING`,
		name, nameKey(name),
	)
	if err != nil {
		return engine.Player{}, fmt.Errorf("storage: cannot create player: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return engine.Player{}, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return engine.Player{}, fmt.Errorf("storage: player %q: %w", name, engine.ErrPlayerExists)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return engine.Player{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return engine.Player{ID: id, Name: name, CreatedAt: time.Now().UTC()}, nil
}

// ListEligibleThemes returns themes with at least three words, by name.
func (s *Store) ListEligibleThemes(ctx context.Context) ([]engine.ThemeSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT t.id, t.name, COUNT(w.id) AS word_count
		 FROM themes t
		 JOIN words w ON w.theme_id = t.id
		 GROUP BY t.id, t.name
		 HAVING COUNT(w.id) >= ?
		 ORDER BY t.name`,
		wordbank.MinWords,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query themes: %w", err)
	}
	defer rows.Close()

	var themes []engine.ThemeSummary
	for rows.Next() {
		var t engine.ThemeSummary
		if err := rows.Scan(&t.ID, &t.Name, &t.WordCount); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		themes = append(themes, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return themes, nil
}

// LoadWordBank returns a theme with its words in insertion order.
func (s *Store) LoadWordBank(ctx context.Context, themeID int64) (wordbank.Theme, error) {
	theme := wordbank.Theme{ID: themeID}
	err := s.db.QueryRowContext(ctx, "SELECT name FROM themes WHERE id = ?", themeID).Scan(&theme.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return wordbank.Theme{}, fmt.Errorf("storage: theme %d: %w", themeID, engine.ErrNotFound)
	}
	if err != nil {
		return wordbank.Theme{}, fmt.Errorf("storage: cannot query theme: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, "SELECT word FROM words WHERE theme_id = ? ORDER BY id", themeID)
	if err != nil {
		return wordbank.Theme{}, fmt.Errorf("storage: cannot query words: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return wordbank.Theme{}, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		theme.Words = append(theme.Words, w)
	}

	if err := rows.Err(); err != nil {
		return wordbank.Theme{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return theme, nil
}

// ImportTheme creates the theme if needed and adds any new words to it.
// Words are normalized; entries that are not a single run of letters
// (blanks, phrases, hyphenated words) and duplicates are skipped. It returns the
// theme ID and how many words were added.
func (s *Store) ImportTheme(ctx context.Context, name string, words []string) (int64, int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, 0, errors.New("storage: theme name must not be empty")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO themes (name) VALUES (?) ON CONFLICT(name) DO NOTHING", name,
	); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot save theme: %w", err)
	}

	var id int64
	if err := tx.QueryRowContext(ctx, "SELECT id FROM themes WHERE name = ?", name).Scan(&id); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot query theme: %w", err)
	}

	added := 0
	for _, w := range words {
		w = puzzle.Normalize(w)
		if !puzzle.IsWord(w) {
			continue
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO words (theme_id, word) VALUES (?, ?) ON CONFLICT(theme_id, word) DO NOTHING",
			id, w,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("storage: cannot save word %q: %w", w, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot commit theme: %w", err)
	}
	return id, added, nil
}

// CreateSession records a new session and returns its ID.
func (s *Store) CreateSession(ctx context.Context, playerID, themeID int64) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO sessions (id, player_id, theme_id) VALUES (?, ?, ?)",
		id, playerID, themeID,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create session: %w", err)
	}
	return id, nil
}

// SaveLevelResult stores a level result, replacing an earlier result for
// the same session and level. Returns the ID of the result record.
func (s *Store) SaveLevelResult(ctx context.Context, rec engine.LevelRecord) (int64, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO level_results
		 (session_id, level, words_found, words_total, time_spent_ms, score)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, level) DO UPDATE SET
		   words_found = excluded.words_found,
		   words_total = excluded.words_total,
		   time_spent_ms = excluded.time_spent_ms,
		   score = excluded.score`,
		rec.SessionID, rec.Level, rec.WordsFound, rec.WordsTotal, rec.TimeSpent.Milliseconds(), rec.Score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx,
		"SELECT id FROM level_results WHERE session_id = ? AND level = ?",
		rec.SessionID, rec.Level,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get level result ID: %w", err)
	}
	return id, nil
}

// LevelResults returns the saved results of a session by level.
func (s *Store) LevelResults(ctx context.Context, sessionID string) ([]engine.LevelRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT session_id, level, words_found, words_total, time_spent_ms, score
		 FROM level_results
		 WHERE session_id = ?
		 ORDER BY level`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	defer rows.Close()

	var records []engine.LevelRecord
	for rows.Next() {
		var r engine.LevelRecord
		var ms int64
		if err := rows.Scan(&r.SessionID, &r.Level, &r.WordsFound, &r.WordsTotal, &ms, &r.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.TimeSpent = time.Duration(ms) * time.Millisecond
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SaveSessionScore sets the final score of a session. Saving again
// overwrites the earlier score.
func (s *Store) SaveSessionScore(ctx context.Context, sessionID string, score int) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE sessions SET score = ?, ended_at = CURRENT_TIMESTAMP WHERE id = ?",
		score, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save session score: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("storage: session %s: %w", sessionID, engine.ErrNotFound)
	}
	return nil
}

// TopScores returns each player's best finished session, highest first.
func (s *Store) TopScores(ctx context.Context, limit int) ([]engine.ScoreEntry, error) {
	if limit <= 0 {
		limit = engine.DefaultTopScores
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT p.name, MAX(s.score) AS best
		 FROM sessions s
		 JOIN players p ON p.id = s.player_id
		 WHERE s.score IS NOT NULL
		 GROUP BY p.id, p.name
		 ORDER BY best DESC, p.name
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []engine.ScoreEntry
	for rows.Next() {
		var e engine.ScoreEntry
		if err := rows.Scan(&e.PlayerName, &e.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerBest returns the best finished session score of a player.
// Returns 0 if the player has none.
func (s *Store) PlayerBest(ctx context.Context, playerID int64) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM sessions WHERE player_id = ?",
		playerID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Ensure Store implements the engine's collaborators.
var _ engine.Store = (*Store)(nil)
