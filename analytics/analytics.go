// Package analytics provides privacy-first page-view analytics.
//
// Every tracked navigation updates two aggregate counters: the current day's
// DailyStat and the all-time TotalStat. Recording is strictly best-effort:
// storage failures are logged and swallowed, and a client without working
// cookie storage is simply counted as a new visitor and session on every view.
package analytics

import (
	"strings"
	"time"
)

// DateLayout is the calendar-day bucket format for daily counters.
const DateLayout = "2006-01-02"

// adminPrefix marks paths excluded from public analytics.
const adminPrefix = "/admin"

// DailyStat is the aggregate counter record for one calendar day.
// Views always equals the sum of the PageViews values.
type DailyStat struct {
	Date        string         `json:"date"`
	Views       int            `json:"views"`
	Visitors    int            `json:"visitors"`
	Sessions    int            `json:"sessions"`
	PageViews   map[string]int `json:"pageViews"`
	LastUpdated time.Time      `json:"lastUpdated"`
}

// TotalStat is the singleton all-time counter record.
type TotalStat struct {
	Views       int       `json:"views"`
	Visitors    int       `json:"visitors"`
	Sessions    int       `json:"sessions"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// PageStat is a per-path view count for stats responses.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyView is a date/views pair for range queries.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// IsTracked reports whether path is subject to analytics. Administrative
// paths are excluded entirely: no counter is touched for them.
func IsTracked(path string) bool {
	return !strings.HasPrefix(path, adminPrefix)
}

// NormalizePath maps a navigation path to a flat counter key: the root path
// becomes "home", otherwise the leading slash is stripped and the remaining
// slashes are replaced with underscores. Never fails.
func NormalizePath(path string) string {
	key := strings.TrimPrefix(path, "/")
	key = strings.ReplaceAll(key, "/", "_")
	if key == "" {
		return "home"
	}
	return key
}
