package analytics

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestRecordViewUpdatesBothCounters(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	agg.RecordView("/programs/leadership", Identity{NewVisitorToday: true, NewSession: true}, now)
	agg.RecordView("/", Identity{}, now)

	daily, err := store.GetDailyStat("2026-03-14")
	if err != nil {
		t.Fatalf("GetDailyStat: %v", err)
	}
	if daily.Views != 2 || daily.Visitors != 1 || daily.Sessions != 1 {
		t.Errorf("daily: got views=%d visitors=%d sessions=%d, want 2/1/1",
			daily.Views, daily.Visitors, daily.Sessions)
	}
	if daily.PageViews["programs_leadership"] != 1 || daily.PageViews["home"] != 1 {
		t.Errorf("page views = %v, want programs_leadership:1 home:1", daily.PageViews)
	}

	total, err := store.GetTotalStat()
	if err != nil {
		t.Fatalf("GetTotalStat: %v", err)
	}
	if total.Views != 2 || total.Visitors != 1 || total.Sessions != 1 {
		t.Errorf("total: got views=%d visitors=%d sessions=%d, want 2/1/1",
			total.Views, total.Visitors, total.Sessions)
	}
}

func TestRecordViewSkipsAdminPaths(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)
	now := time.Now()

	agg.RecordView("/admin/", Identity{NewVisitorToday: true, NewSession: true}, now)
	agg.RecordView("/admin/page/home/", Identity{NewVisitorToday: true, NewSession: true}, now)

	if _, err := store.GetDailyStat(now.Format(DateLayout)); err != sql.ErrNoRows {
		t.Errorf("admin views should leave no daily row, got err=%v", err)
	}
	total, err := store.GetTotalStat()
	if err != nil {
		t.Fatalf("GetTotalStat: %v", err)
	}
	if total.Views != 0 {
		t.Errorf("admin views should not touch totals, got %d views", total.Views)
	}
}

func TestRecordViewSwallowsStoreErrors(t *testing.T) {
	store := newTestStore(t)
	agg := NewAggregator(store)

	var logged []string
	agg.SetLogger(func(format string, args ...interface{}) {
		logged = append(logged, fmt.Sprintf(format, args...))
	})

	// Closing the database makes both writes fail; RecordView must not panic
	// or surface the errors.
	store.Close()
	agg.RecordView("/about", Identity{NewVisitorToday: true, NewSession: true}, time.Now())

	if len(logged) != 2 {
		t.Fatalf("expected 2 logged errors (daily and total), got %d: %v", len(logged), logged)
	}
	for _, msg := range logged {
		if !strings.Contains(msg, "about") {
			t.Errorf("log message should name the path key: %q", msg)
		}
	}
}

func TestDispatchRecoversFromPanic(t *testing.T) {
	agg := &Aggregator{store: nil, logf: func(string, ...interface{}) {}}

	done := make(chan struct{})
	agg.SetLogger(func(format string, args ...interface{}) {
		close(done)
	})

	// A nil store panics inside RecordView; the dispatch boundary must
	// recover and log instead of crashing the process.
	agg.Dispatch("/about", Identity{}, time.Now())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("panic was not recovered and logged")
	}
}
