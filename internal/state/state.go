// Package state persists session state (search history, last query)
// in a SQLite database under the XDG data directory.
package state

import (
	"database/sql"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	dbRelPath    = "glimpse/glimpse.db"
	saveDebounce = 500 * time.Millisecond
	historyMax   = 50
)

// Session is the restorable part of the UI state.
type Session struct {
	LastQuery string
	LastMode  string // "tags" or "id"
}

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *Session
}

func Open() (*Manager, error) {
	dbPath, err := xdg.DataFile(dbRelPath)
	if err != nil {
		return nil, err
	}
	return openAt(dbPath)
}

func openAt(dbPath string) (*Manager, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS search_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			query TEXT NOT NULL,
			searched_at INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS session (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			last_query TEXT NOT NULL DEFAULT '',
			last_mode TEXT NOT NULL DEFAULT 'tags'
		);
	`)
	return err
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	var flushErr error
	if pending != nil {
		flushErr = saveSession(m.db, *pending)
	}

	if err := m.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// AddSearch records a query in the search history, deduplicating on the
// query text and keeping only the most recent entries.
func (m *Manager) AddSearch(query string) error {
	if query == "" {
		return nil
	}

	tx, err := m.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM search_history WHERE query = ?`, query); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`INSERT INTO search_history (query, searched_at) VALUES (?, ?)`,
		query, time.Now().Unix(),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(`
		DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY searched_at DESC LIMIT ?
		)`, historyMax); err != nil {
		return err
	}

	return tx.Commit()
}

// RecentSearches returns up to limit queries, most recent first.
func (m *Manager) RecentSearches(limit int) ([]string, error) {
	rows, err := m.db.Query(
		`SELECT query FROM search_history ORDER BY searched_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// SaveSession schedules a debounced write of the session state.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveSession(m.db, *pending)
		}
	})
}

// GetSession returns the stored session, or nil if none was saved yet.
func (m *Manager) GetSession() (*Session, error) {
	var s Session
	err := m.db.QueryRow(
		`SELECT last_query, last_mode FROM session WHERE id = 1`,
	).Scan(&s.LastQuery, &s.LastMode)

	if err == sql.ErrNoRows {
		return nil, nil //nolint:nilnil // nil session means fresh start, not an error
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func saveSession(db *sql.DB, s Session) error {
	_, err := db.Exec(`
		INSERT INTO session (id, last_query, last_mode)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_query = excluded.last_query,
			last_mode = excluded.last_mode
	`, s.LastQuery, s.LastMode)
	return err
}
