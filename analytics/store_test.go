package analytics

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "analytics.db"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestIncrementDailyCreatesDay(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	// First view of the day from a brand-new visitor.
	if err := store.IncrementDaily("2026-03-14", "home", true, true, now); err != nil {
		t.Fatalf("IncrementDaily: %v", err)
	}

	stat, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	if stat.Views != 1 || stat.Visitors != 1 || stat.Sessions != 1 {
		t.Errorf("got views=%d visitors=%d sessions=%d, want 1/1/1", stat.Views, stat.Visitors, stat.Sessions)
	}
	if stat.PageViews["home"] != 1 {
		t.Errorf("PageViews[home] = %d, want 1", stat.PageViews["home"])
	}
}

func TestIncrementDailyFlagsOnDayCreation(t *testing.T) {
	store := newTestStore(t)

	// A returning visitor in an existing session opening the first view of
	// the day: the day row is created with visitors and sessions still zero.
	if err := store.IncrementDaily("2026-03-14", "about", false, false, time.Now()); err != nil {
		t.Fatalf("IncrementDaily: %v", err)
	}

	stat, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	if stat.Views != 1 || stat.Visitors != 0 || stat.Sessions != 0 {
		t.Errorf("got views=%d visitors=%d sessions=%d, want 1/0/0", stat.Views, stat.Visitors, stat.Sessions)
	}
}

func TestIncrementDailyExistingDay(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	// Build up a day: 5 views, 2 visitors, 3 sessions.
	seed := []struct{ visitor, session bool }{
		{true, true}, {false, false}, {true, true}, {false, true}, {false, false},
	}
	for _, s := range seed {
		if err := store.IncrementDaily("2026-03-14", "home", s.visitor, s.session, now); err != nil {
			t.Fatalf("IncrementDaily: %v", err)
		}
	}

	// New session only: views and sessions advance, visitors does not.
	if err := store.IncrementDaily("2026-03-14", "programs", false, true, now); err != nil {
		t.Fatalf("IncrementDaily: %v", err)
	}

	stat, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	if stat.Views != 6 || stat.Visitors != 2 || stat.Sessions != 4 {
		t.Errorf("got views=%d visitors=%d sessions=%d, want 6/2/4", stat.Views, stat.Visitors, stat.Sessions)
	}
	if stat.PageViews["home"] != 5 || stat.PageViews["programs"] != 1 {
		t.Errorf("page views = %v, want home:5 programs:1", stat.PageViews)
	}
}

func TestDailyViewsEqualPageViewSum(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	paths := []string{"home", "about", "home", "programs_leadership", "contact"}
	for _, p := range paths {
		if err := store.IncrementDaily("2026-03-14", p, false, false, now); err != nil {
			t.Fatalf("IncrementDaily: %v", err)
		}
	}

	stat, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	sum := 0
	for _, v := range stat.PageViews {
		sum += v
	}
	if stat.Views != sum {
		t.Errorf("views = %d but page view sum = %d", stat.Views, sum)
	}
}

func TestIncrementTotal(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	if err := store.IncrementTotal(true, true, now); err != nil {
		t.Fatalf("IncrementTotal: %v", err)
	}
	if err := store.IncrementTotal(false, true, now); err != nil {
		t.Fatalf("IncrementTotal: %v", err)
	}
	if err := store.IncrementTotal(false, false, now); err != nil {
		t.Fatalf("IncrementTotal: %v", err)
	}

	stat, err := store.GetTotalStat()
	if err != nil {
		t.Fatalf("GetTotalStat: %v", err)
	}
	if stat.Views != 3 || stat.Visitors != 1 || stat.Sessions != 2 {
		t.Errorf("got views=%d visitors=%d sessions=%d, want 3/1/2", stat.Views, stat.Visitors, stat.Sessions)
	}
}

func TestGetTotalStatEmpty(t *testing.T) {
	store := newTestStore(t)

	stat, err := store.GetTotalStat()
	if err != nil {
		t.Fatalf("GetTotalStat on empty store: %v", err)
	}
	if stat.Views != 0 || stat.Visitors != 0 || stat.Sessions != 0 {
		t.Errorf("empty store should return zero counters, got %+v", stat)
	}
}

func TestGetDailyStatMissingDay(t *testing.T) {
	store := newTestStore(t)

	_, err := store.GetDailyStat("1999-01-01")
	if err != sql.ErrNoRows {
		t.Errorf("got %v, want sql.ErrNoRows", err)
	}
}

func TestRepeatedIncrementDoubleCounts(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	// Recording is not idempotent: the same view applied twice counts twice.
	for i := 0; i < 2; i++ {
		if err := store.IncrementDaily("2026-03-14", "home", true, true, now); err != nil {
			t.Fatalf("IncrementDaily: %v", err)
		}
	}

	stat, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	if stat.Views != 2 || stat.Visitors != 2 || stat.Sessions != 2 {
		t.Errorf("got views=%d visitors=%d sessions=%d, want 2/2/2", stat.Views, stat.Visitors, stat.Sessions)
	}
}

func TestDailyViewsRange(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	for _, d := range []string{"2026-03-12", "2026-03-13", "2026-03-14", "2026-03-20"} {
		if err := store.IncrementDaily(d, "home", false, false, now); err != nil {
			t.Fatalf("IncrementDaily: %v", err)
		}
	}

	views, err := store.DailyViews("2026-03-12", "2026-03-14")
	if err != nil {
		t.Fatalf("DailyViews: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("got %d days, want 3", len(views))
	}
	if views[0].Date != "2026-03-12" || views[2].Date != "2026-03-14" {
		t.Errorf("days out of order or out of range: %+v", views)
	}
}

func TestTopPages(t *testing.T) {
	store := newTestStore(t)
	now := time.Now()

	counts := map[string]int{"home": 5, "about": 2, "programs": 8}
	for key, n := range counts {
		for i := 0; i < n; i++ {
			if err := store.IncrementDaily("2026-03-14", key, false, false, now); err != nil {
				t.Fatalf("IncrementDaily: %v", err)
			}
		}
	}

	pages, err := store.TopPages("2026-03-01", "2026-03-31", 2)
	if err != nil {
		t.Fatalf("TopPages: %v", err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if pages[0].Path != "programs" || pages[0].Views != 8 {
		t.Errorf("top page = %+v, want programs with 8 views", pages[0])
	}
	if pages[1].Path != "home" || pages[1].Views != 5 {
		t.Errorf("second page = %+v, want home with 5 views", pages[1])
	}
}

func TestSettings(t *testing.T) {
	store := newTestStore(t)

	val, err := store.GetSetting("missing")
	if err != nil || val != "" {
		t.Errorf("missing setting: got (%q, %v), want empty", val, err)
	}

	if err := store.SetSetting("retention", "90"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := store.SetSetting("retention", "180"); err != nil {
		t.Fatalf("SetSetting overwrite: %v", err)
	}

	val, err = store.GetSetting("retention")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if val != "180" {
		t.Errorf("got %q, want 180", val)
	}
}
