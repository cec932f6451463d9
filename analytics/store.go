package analytics

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists the aggregate counters in SQLite.
//
// All counter writes are single-statement upserts (INSERT … ON CONFLICT DO
// UPDATE), so create-or-increment is atomic at the store level and concurrent
// first-views of a day cannot race each other into a lost count.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the analytics database at path and runs schema
// migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS daily_stats (
			date TEXT PRIMARY KEY,
			views INTEGER NOT NULL DEFAULT 0,
			visitors INTEGER NOT NULL DEFAULT 0,
			sessions INTEGER NOT NULL DEFAULT 0,
			last_updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS daily_page_views (
			date TEXT NOT NULL,
			path_key TEXT NOT NULL,
			views INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (date, path_key)
		);

		CREATE TABLE IF NOT EXISTS total_stats (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			views INTEGER NOT NULL DEFAULT 0,
			visitors INTEGER NOT NULL DEFAULT 0,
			sessions INTEGER NOT NULL DEFAULT 0,
			last_updated DATETIME NOT NULL
		);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	return err
}

// currentSchemaVersion is the latest schema version. Increment when adding migrations.
const currentSchemaVersion = 1

// migrate applies incremental schema migrations based on a version stored in
// the settings table.
func (s *Store) migrate() error {
	verStr, err := s.GetSetting("schema_version")
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	version := 0
	if verStr != "" {
		version, err = strconv.Atoi(verStr)
		if err != nil {
			return fmt.Errorf("parse schema version %q: %w", verStr, err)
		}
	}

	if version < currentSchemaVersion {
		version = currentSchemaVersion
	}

	return s.SetSetting("schema_version", strconv.Itoa(version))
}

// GetSetting retrieves a setting value by key. Returns empty string if not found.
func (s *Store) GetSetting(key string) (string, error) {
	var val string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&val)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return val, err
}

// SetSetting stores a setting value by key (upsert).
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IncrementDaily reflects one page view into the given day's counters: views
// always +1, visitors/sessions +1 only when the novelty flags say so, and the
// per-path breakdown +1 for pathKey. The day row is created on first view
// with the same arithmetic, so creation respects the flags. Both statements
// run in one transaction to keep views equal to the page-view sum.
func (s *Store) IncrementDaily(date, pathKey string, newVisitor, newSession bool, now time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin daily update: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO daily_stats (date, views, visitors, sessions, last_updated)
		VALUES (?, 1, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			views = views + 1,
			visitors = visitors + excluded.visitors,
			sessions = sessions + excluded.sessions,
			last_updated = excluded.last_updated`,
		date, boolToInt(newVisitor), boolToInt(newSession), now.UTC()); err != nil {
		return fmt.Errorf("upsert daily stat: %w", err)
	}

	if _, err := tx.Exec(`
		INSERT INTO daily_page_views (date, path_key, views)
		VALUES (?, ?, 1)
		ON CONFLICT(date, path_key) DO UPDATE SET views = views + 1`,
		date, pathKey); err != nil {
		return fmt.Errorf("upsert page view: %w", err)
	}

	return tx.Commit()
}

// IncrementTotal reflects one page view into the all-time counters with the
// same increment rule as IncrementDaily. Deliberately not linked to the daily
// write: each is its own best-effort operation.
func (s *Store) IncrementTotal(newVisitor, newSession bool, now time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO total_stats (id, views, visitors, sessions, last_updated)
		VALUES (1, 1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			views = views + 1,
			visitors = visitors + excluded.visitors,
			sessions = sessions + excluded.sessions,
			last_updated = excluded.last_updated`,
		boolToInt(newVisitor), boolToInt(newSession), now.UTC())
	if err != nil {
		return fmt.Errorf("upsert total stat: %w", err)
	}
	return nil
}

// GetDailyStat returns the counter record for the given date, including the
// per-path breakdown. Returns sql.ErrNoRows if no view was recorded that day.
func (s *Store) GetDailyStat(date string) (DailyStat, error) {
	stat := DailyStat{Date: date, PageViews: map[string]int{}}
	err := s.db.QueryRow(`SELECT views, visitors, sessions, last_updated FROM daily_stats WHERE date = ?`, date).
		Scan(&stat.Views, &stat.Visitors, &stat.Sessions, &stat.LastUpdated)
	if err != nil {
		return DailyStat{}, err
	}

	rows, err := s.db.Query(`SELECT path_key, views FROM daily_page_views WHERE date = ?`, date)
	if err != nil {
		return DailyStat{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var views int
		if err := rows.Scan(&key, &views); err != nil {
			return DailyStat{}, err
		}
		stat.PageViews[key] = views
	}
	return stat, rows.Err()
}

// GetTotalStat returns the all-time counter record. A store with no recorded
// view yet returns a zero-valued record rather than an error.
func (s *Store) GetTotalStat() (TotalStat, error) {
	var stat TotalStat
	err := s.db.QueryRow(`SELECT views, visitors, sessions, last_updated FROM total_stats WHERE id = 1`).
		Scan(&stat.Views, &stat.Visitors, &stat.Sessions, &stat.LastUpdated)
	if err == sql.ErrNoRows {
		return TotalStat{}, nil
	}
	if err != nil {
		return TotalStat{}, err
	}
	return stat, nil
}

// DailyViews returns the view counts per day over [from, to] inclusive,
// ordered by date.
func (s *Store) DailyViews(from, to string) ([]DailyView, error) {
	rows, err := s.db.Query(`SELECT date, views FROM daily_stats WHERE date >= ? AND date <= ? ORDER BY date`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []DailyView
	for rows.Next() {
		var v DailyView
		if err := rows.Scan(&v.Date, &v.Views); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// TopPages returns the most-viewed path keys over [from, to] inclusive.
func (s *Store) TopPages(from, to string, limit int) ([]PageStat, error) {
	rows, err := s.db.Query(`
		SELECT path_key, SUM(views) AS views FROM daily_page_views
		WHERE date >= ? AND date <= ?
		GROUP BY path_key ORDER BY views DESC LIMIT ?`, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []PageStat
	for rows.Next() {
		var p PageStat
		if err := rows.Scan(&p.Path, &p.Views); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}
