// Package storage persists run scores and per-player goal progress in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/sleigh-run/internal/goals"
)

// Store manages the SQLite database connection. It is safe for use by
// concurrent sessions.
type Store struct {
	db *sql.DB
}

// ScoreEntry is a single finished run.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Player    string
	Score     int
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// One writer at a time; SSH sessions share the store.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS goals (
			player TEXT NOT NULL,
			goal_id TEXT NOT NULL,
			progress INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, goal_id)
		);

		CREATE TABLE IF NOT EXISTS unlocks (
			player TEXT NOT NULL,
			category TEXT NOT NULL,
			item TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player, category, item)
		);

		CREATE TABLE IF NOT EXISTS equipped (
			player TEXT NOT NULL,
			category TEXT NOT NULL,
			item TEXT NOT NULL,
			PRIMARY KEY (player, category)
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

// SaveScore records a finished run of gameID by player.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID, player string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, player, score) VALUES (?, ?, ?)",
		gameID, player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, player, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// GetAllGamesStats retrieves statistics for every game that has been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and SQLite's text timestamps.
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

// LoadGoals returns goal progress by goal id for player.
func (s *Store) LoadGoals(player string) (map[string]int, error) {
	rows, err := s.db.Query("SELECT goal_id, progress FROM goals WHERE player = ?", player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query goals: %w", err)
	}
	defer rows.Close()

	progress := make(map[string]int)
	for rows.Next() {
		var id string
		var v int
		if err := rows.Scan(&id, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan goal row: %w", err)
		}
		progress[id] = v
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return progress, nil
}

// SaveGoal upserts one goal's progress.
func (s *Store) SaveGoal(player, goalID string, progress int, completed bool) error {
	done := 0
	if completed {
		done = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO goals (player, goal_id, progress, completed, updated_at)
		 VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player, goal_id) DO UPDATE SET
		   progress = excluded.progress,
		   completed = excluded.completed,
		   updated_at = excluded.updated_at`,
		player, goalID, progress, done,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save goal %s: %w", goalID, err)
	}
	return nil
}

// LoadUnlocks returns unlocked items grouped by category.
func (s *Store) LoadUnlocks(player string) (map[string][]string, error) {
	rows, err := s.db.Query(
		"SELECT category, item FROM unlocks WHERE player = ? ORDER BY created_at, item",
		player,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query unlocks: %w", err)
	}
	defer rows.Close()

	unlocks := make(map[string][]string)
	for rows.Next() {
		var category, item string
		if err := rows.Scan(&category, &item); err != nil {
			return nil, fmt.Errorf("storage: cannot scan unlock row: %w", err)
		}
		unlocks[category] = append(unlocks[category], item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return unlocks, nil
}

// SaveUnlock records an unlocked item. Saving it twice is a no-op.
func (s *Store) SaveUnlock(player, category, item string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO unlocks (player, category, item) VALUES (?, ?, ?)",
		player, category, item,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save unlock: %w", err)
	}
	return nil
}

// LoadEquipped returns the selected item per category.
func (s *Store) LoadEquipped(player string) (map[string]string, error) {
	rows, err := s.db.Query("SELECT category, item FROM equipped WHERE player = ?", player)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query equipped items: %w", err)
	}
	defer rows.Close()

	equipped := make(map[string]string)
	for rows.Next() {
		var category, item string
		if err := rows.Scan(&category, &item); err != nil {
			return nil, fmt.Errorf("storage: cannot scan equipped row: %w", err)
		}
		equipped[category] = item
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return equipped, nil
}

// SaveEquipped selects item for category.
func (s *Store) SaveEquipped(player, category, item string) error {
	_, err := s.db.Exec(
		`INSERT INTO equipped (player, category, item) VALUES (?, ?, ?)
		 ON CONFLICT(player, category) DO UPDATE SET item = excluded.item`,
		player, category, item,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save equipped item: %w", err)
	}
	return nil
}

// Ensure Store implements ProgressStore
var _ goals.ProgressStore = (*Store)(nil)
