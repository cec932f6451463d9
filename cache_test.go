package summitweb

import (
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
)

func TestCacheServesStaleUntilInvalidated(t *testing.T) {
	store := newTestStore(t)
	cache := NewContentCache(store, time.Hour)

	if err := store.SavePage(Page{Slug: "home", Title: "v1"}); err != nil {
		t.Fatalf("SavePage: %v", err)
	}

	page, err := cache.GetPage("home")
	if err != nil {
		t.Fatalf("GetPage: %v", err)
	}
	if page.Title != "v1" {
		t.Fatalf("got %q, want v1", page.Title)
	}

	// A direct store write is invisible until the cache is invalidated.
	if err := store.SavePage(Page{Slug: "home", Title: "v2"}); err != nil {
		t.Fatalf("SavePage: %v", err)
	}
	page, _ = cache.GetPage("home")
	if page.Title != "v1" {
		t.Errorf("cache should serve the cached copy, got %q", page.Title)
	}

	cache.Invalidate()
	page, err = cache.GetPage("home")
	if err != nil {
		t.Fatalf("GetPage after invalidate: %v", err)
	}
	if page.Title != "v2" {
		t.Errorf("got %q after invalidate, want v2", page.Title)
	}
}

func TestCacheMissingPage(t *testing.T) {
	cache := NewContentCache(newTestStore(t), time.Hour)

	if _, err := cache.GetPage("nope"); err != ErrNotFound {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestCacheListTrainingsFrom(t *testing.T) {
	store := newTestStore(t)
	cache := NewContentCache(store, time.Hour)

	trainings := []Training{
		{ID: ulid.Make().String(), Title: "Single past", Date: "2026-08-01", Published: true},
		{ID: ulid.Make().String(), Title: "Running retreat", Date: "2026-08-28", EndDate: "2026-09-02", Published: true},
		{ID: ulid.Make().String(), Title: "Future", Date: "2026-10-01", Published: true},
	}
	for _, tr := range trainings {
		if err := store.SaveTraining(tr); err != nil {
			t.Fatalf("SaveTraining: %v", err)
		}
	}

	// A multi-day training still in progress counts as upcoming.
	got, err := cache.ListTrainings("2026-09-01")
	if err != nil {
		t.Fatalf("ListTrainings: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d trainings, want 2", len(got))
	}
	if got[0].Title != "Running retreat" || got[1].Title != "Future" {
		t.Errorf("got %+v", got)
	}

	all, err := cache.ListTrainings("")
	if err != nil {
		t.Fatalf("ListTrainings all: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d trainings, want 3", len(all))
	}
}
