package summitweb

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"
)

// Store wraps a SQLite database and provides CRUD operations for pages,
// trainings, and gallery photos.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Enable WAL mode for concurrent read/write access, set a busy timeout
	// so writers wait instead of returning SQLITE_BUSY immediately, and tune
	// performance: synchronous=NORMAL is safe with WAL and avoids an fsync
	// per transaction; larger cache and mmap reduce disk I/O.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
		PRAGMA mmap_size=268435456;
	`); err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS pages (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    body TEXT NOT NULL,
    updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trainings (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    end_date TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    summary TEXT NOT NULL DEFAULT '',
    body TEXT NOT NULL DEFAULT '',
    published INTEGER NOT NULL DEFAULT 1
);

CREATE INDEX IF NOT EXISTS idx_trainings_date ON trainings(date);

CREATE TABLE IF NOT EXISTS photos (
    id TEXT PRIMARY KEY,
    filename TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    caption TEXT NOT NULL DEFAULT '',
    album TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL,
    source_id TEXT NOT NULL DEFAULT '',
    taken_at TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_photos_source_id ON photos(source_id);
`)
	return err
}

// GetPage returns a single content page by slug.
func (s *Store) GetPage(slug string) (Page, error) {
	var p Page
	p.Slug = slug
	err := s.db.QueryRow(`SELECT title, body, updated_at FROM pages WHERE slug = ?`, slug).
		Scan(&p.Title, &p.Body, &p.UpdatedAt)
	if err != nil {
		return Page{}, err
	}
	return p, nil
}

// ListPages returns all content pages ordered by slug.
func (s *Store) ListPages() ([]Page, error) {
	rows, err := s.db.Query(`SELECT slug, title, body, updated_at FROM pages ORDER BY slug`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Slug, &p.Title, &p.Body, &p.UpdatedAt); err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// SavePage upserts a content page and stamps updated_at.
func (s *Store) SavePage(p Page) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO pages (slug, title, body, updated_at) VALUES (?, ?, ?, ?)`,
		p.Slug, p.Title, p.Body, time.Now().UTC().Format(time.RFC3339))
	return err
}

// ListTrainings returns published trainings ordered by date ascending.
// If from is non-empty, only trainings on or after that date are returned.
func (s *Store) ListTrainings(from string) ([]Training, error) {
	var rows *sql.Rows
	var err error
	if from == "" {
		rows, err = s.db.Query(`SELECT id, title, date, end_date, location, summary, body, published FROM trainings WHERE published = 1 ORDER BY date ASC`)
	} else {
		rows, err = s.db.Query(`SELECT id, title, date, end_date, location, summary, body, published FROM trainings WHERE published = 1 AND date >= ? ORDER BY date ASC`, from)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

// ListAllTrainings returns every training (published and drafts) ordered by
// date descending, for the admin dashboard.
func (s *Store) ListAllTrainings() ([]Training, error) {
	rows, err := s.db.Query(`SELECT id, title, date, end_date, location, summary, body, published FROM trainings ORDER BY date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTrainings(rows)
}

func scanTrainings(rows *sql.Rows) ([]Training, error) {
	var trainings []Training
	for rows.Next() {
		var t Training
		var published int
		if err := rows.Scan(&t.ID, &t.Title, &t.Date, &t.EndDate, &t.Location, &t.Summary, &t.Body, &published); err != nil {
			return nil, err
		}
		t.Published = published == 1
		trainings = append(trainings, t)
	}
	return trainings, rows.Err()
}

// GetTraining returns a training by id regardless of published status (for admin).
func (s *Store) GetTraining(id string) (Training, error) {
	var t Training
	var published int
	t.ID = id
	err := s.db.QueryRow(`SELECT title, date, end_date, location, summary, body, published FROM trainings WHERE id = ?`, id).
		Scan(&t.Title, &t.Date, &t.EndDate, &t.Location, &t.Summary, &t.Body, &published)
	if err != nil {
		return Training{}, err
	}
	t.Published = published == 1
	return t, nil
}

// SaveTraining upserts a training record.
func (s *Store) SaveTraining(t Training) error {
	published := 0
	if t.Published {
		published = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO trainings (id, title, date, end_date, location, summary, body, published) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Date, t.EndDate, t.Location, t.Summary, t.Body, published)
	return err
}

// DeleteTraining removes a training by id.
func (s *Store) DeleteTraining(id string) error {
	_, err := s.db.Exec(`DELETE FROM trainings WHERE id = ?`, id)
	return err
}

// ListPhotos returns all gallery photos, newest first.
func (s *Store) ListPhotos() ([]Photo, error) {
	rows, err := s.db.Query(`SELECT id, filename, url, caption, album, source, source_id, taken_at, created_at FROM photos ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var photos []Photo
	for rows.Next() {
		var p Photo
		if err := rows.Scan(&p.ID, &p.Filename, &p.URL, &p.Caption, &p.Album, &p.Source, &p.SourceID, &p.TakenAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		photos = append(photos, p)
	}
	return photos, rows.Err()
}

// GetPhoto returns a photo by id.
func (s *Store) GetPhoto(id string) (Photo, error) {
	var p Photo
	p.ID = id
	err := s.db.QueryRow(`SELECT filename, url, caption, album, source, source_id, taken_at, created_at FROM photos WHERE id = ?`, id).
		Scan(&p.Filename, &p.URL, &p.Caption, &p.Album, &p.Source, &p.SourceID, &p.TakenAt, &p.CreatedAt)
	if err != nil {
		return Photo{}, err
	}
	return p, nil
}

// SavePhoto inserts or replaces a photo metadata row.
func (s *Store) SavePhoto(p Photo) error {
	if p.CreatedAt == "" {
		p.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO photos (id, filename, url, caption, album, source, source_id, taken_at, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Filename, p.URL, p.Caption, p.Album, p.Source, p.SourceID, p.TakenAt, p.CreatedAt)
	return err
}

// DeletePhoto removes a photo row by id.
func (s *Store) DeletePhoto(id string) error {
	_, err := s.db.Exec(`DELETE FROM photos WHERE id = ?`, id)
	return err
}

// HasPhotoSource reports whether a photo imported from the given source id
// already exists. Used by the Google Photos sync to skip re-imports.
func (s *Store) HasPhotoSource(sourceID string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM photos WHERE source_id = ?`, sourceID).Scan(&n)
	return n > 0, err
}
