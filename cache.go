package summitweb

import (
	"database/sql"
	"sync"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// ContentCache is an in-memory cache of content pages and published trainings
// with TTL. Public handlers read through it; admin writes call Invalidate.
type ContentCache struct {
	mu        sync.RWMutex
	pages     map[string]Page
	trainings []Training
	fetched   time.Time
	ttl       time.Duration
	store     *Store
}

// NewContentCache creates a ContentCache backed by the given Store.
func NewContentCache(s *Store, ttl time.Duration) *ContentCache {
	return &ContentCache{store: s, ttl: ttl}
}

func (c *ContentCache) valid() bool {
	return c.pages != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *ContentCache) Invalidate() {
	c.mu.Lock()
	c.pages = nil
	c.trainings = nil
	c.mu.Unlock()
}

func (c *ContentCache) load() error {
	if c.valid() {
		return nil
	}
	pages, err := c.store.ListPages()
	if err != nil {
		return err
	}
	trainings, err := c.store.ListTrainings("")
	if err != nil {
		return err
	}
	byslug := make(map[string]Page, len(pages))
	for _, p := range pages {
		byslug[p.Slug] = p
	}
	c.pages = byslug
	c.trainings = trainings
	c.fetched = time.Now()
	return nil
}

// ensureLoaded returns cached pages and trainings after ensuring the cache is
// fresh. It tries a read lock first; only takes a write lock if a reload is needed.
func (c *ContentCache) ensureLoaded() (map[string]Page, []Training, error) {
	c.mu.RLock()
	if c.valid() {
		pages, trainings := c.pages, c.trainings
		c.mu.RUnlock()
		return pages, trainings, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, nil, err
	}
	return c.pages, c.trainings, nil
}

// GetPage returns a content page by slug from the cache.
func (c *ContentCache) GetPage(slug string) (Page, error) {
	pages, _, err := c.ensureLoaded()
	if err != nil {
		return Page{}, err
	}
	p, ok := pages[slug]
	if !ok {
		return Page{}, ErrNotFound
	}
	return p, nil
}

// ListTrainings returns published trainings. If from is non-empty, only
// trainings on or after that YYYY-MM-DD date are returned.
func (c *ContentCache) ListTrainings(from string) ([]Training, error) {
	_, trainings, err := c.ensureLoaded()
	if err != nil {
		return nil, err
	}
	if from == "" {
		return trainings, nil
	}
	var upcoming []Training
	for _, t := range trainings {
		end := t.EndDate
		if end == "" {
			end = t.Date
		}
		if end >= from {
			upcoming = append(upcoming, t)
		}
	}
	return upcoming, nil
}
