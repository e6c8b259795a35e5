// Package storage provides SQLite-based persistence for snake sessions and
// the high score. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-snake/internal/games/snake"
)

const settingLastPlayer = "last_player_name"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionEntry is one finished session.
type SessionEntry struct {
	ID        int64
	Player    string
	Level     string
	Score     int
	Length    int
	Outcome   string
	Reason    string
	Ticks     uint64
	CreatedAt time.Time
}

// Stats contains aggregated statistics over all recorded sessions.
type Stats struct {
	SessionsCount int
	Wins          int
	HighScore     int
	AvgScore      float64
	TotalScore    int64
	LongestSnake  int
	LastPlayed    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player_name TEXT NOT NULL,
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			length INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			reason TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_top ON sessions(score DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_player ON sessions(player_name);

		CREATE TABLE IF NOT EXISTS high_score (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadHighScore returns the stored high score, or 0 if none was stored.
func (s *Store) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT score FROM high_score WHERE id = 1").Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	return score, nil
}

// StoreHighScore saves score if it beats the stored value. A lower score is
// ignored, so the stored high score never decreases.
func (s *Store) StoreHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO high_score (id, score) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP
		 WHERE excluded.score > high_score.score`,
		score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot store high score: %w", err)
	}
	return nil
}

// RecordSession saves a finished session.
func (s *Store) RecordSession(r snake.Result) error {
	_, err := s.SaveSession(r)
	return err
}

// SaveSession saves a finished session and returns the ID of the inserted record.
func (s *Store) SaveSession(r snake.Result) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO sessions (player_name, level, score, length, outcome, reason, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Level, r.Score, r.Length, string(r.Outcome), string(r.Reason), int64(r.Ticks),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const sessionColumns = `id, player_name, level, score, length, outcome, reason, ticks, created_at`

// TopScores retrieves the top N sessions ordered by score descending.
// Ties keep the earlier session first.
func (s *Store) TopScores(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// PlayerSessions retrieves the best sessions of one player.
func (s *Store) PlayerSessions(player string, limit int) ([]SessionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.querySessions(
		`SELECT `+sessionColumns+` FROM sessions WHERE player_name = ? ORDER BY score DESC, id ASC LIMIT ?`,
		player, limit,
	)
}

func (s *Store) querySessions(query string, args ...any) ([]SessionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var entries []SessionEntry
	for rows.Next() {
		var e SessionEntry
		var ticks int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Level, &e.Score, &e.Length,
			&e.Outcome, &e.Reason, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Ticks = uint64(ticks)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerBest returns the best score of a player, or 0 if they never played.
func (s *Store) PlayerBest(player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM sessions WHERE player_name = ?",
		player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query player best: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics over all sessions.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0),
		        COALESCE(MAX(length), 0),
		        MAX(created_at)
		 FROM sessions`,
		string(snake.StateWin),
	).Scan(&stats.SessionsCount, &stats.Wins, &stats.HighScore, &stats.AvgScore,
		&stats.TotalScore, &stats.LongestSnake, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearSessions deletes the session history and the high score.
func (s *Store) ClearSessions() error {
	if _, err := s.db.Exec("DELETE FROM sessions; DELETE FROM high_score;"); err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}

// LastPlayerName returns the most recently used player name, or "".
func (s *Store) LastPlayerName() (string, error) {
	var name string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", settingLastPlayer).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot query last player: %w", err)
	}
	return name, nil
}

// SetLastPlayerName remembers the player name for the next start screen.
func (s *Store) SetLastPlayerName(name string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		settingLastPlayer, name,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save last player: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and the SQLite text form of DATETIME.
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

var (
	_ snake.HighScoreStore  = (*Store)(nil)
	_ snake.SessionRecorder = (*Store)(nil)
)
