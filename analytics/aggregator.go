package analytics

import (
	"log"
	"time"
)

// Aggregator applies page-view events to the daily and total counters.
//
// Recording is best-effort by contract: every failure is logged and swallowed
// so that analytics can never surface an error into the page-serving path.
type Aggregator struct {
	store *Store
	logf  func(format string, args ...interface{})
}

// NewAggregator creates an Aggregator over the given store.
func NewAggregator(store *Store) *Aggregator {
	return &Aggregator{store: store, logf: log.Printf}
}

// SetLogger replaces the error log sink (defaults to the standard logger).
// Call it before the first Dispatch: the field is read by recording
// goroutines without synchronization.
func (a *Aggregator) SetLogger(logf func(format string, args ...interface{})) {
	if logf != nil {
		a.logf = logf
	}
}

// RecordView reflects one page view into the day and all-time counters.
// Administrative paths are skipped entirely. The daily and total updates are
// independent operations: a failure in one does not prevent the other, and
// neither is reported to the caller.
func (a *Aggregator) RecordView(path string, id Identity, now time.Time) {
	if !IsTracked(path) {
		return
	}
	key := NormalizePath(path)
	date := now.Format(DateLayout)

	if err := a.store.IncrementDaily(date, key, id.NewVisitorToday, id.NewSession, now); err != nil {
		a.logf("analytics: daily update for %s: %v", key, err)
	}
	if err := a.store.IncrementTotal(id.NewVisitorToday, id.NewSession, now); err != nil {
		a.logf("analytics: total update for %s: %v", key, err)
	}
}

// Dispatch schedules RecordView on a detached goroutine so the caller never
// waits on the counter writes. The recover boundary keeps a panicking write
// from taking down the server; there is no cancellation and no deduplication
// of rapid repeat navigations.
func (a *Aggregator) Dispatch(path string, id Identity, now time.Time) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logf("analytics: record view panicked: %v", r)
			}
		}()
		a.RecordView(path, id, now)
	}()
}
