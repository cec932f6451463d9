package analytics

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// Handler handles analytics HTTP requests.
type Handler struct {
	store          *Store
	agg            *Aggregator
	collectLimiter *rateLimiter
	cookieSecure   bool
}

// NewHandler creates a new analytics handler.
// The collect endpoint is rate-limited to 60 requests per IP per minute.
func NewHandler(store *Store, cookieSecure bool) *Handler {
	return &Handler{
		store:          store,
		agg:            NewAggregator(store),
		collectLimiter: newRateLimiter(60, time.Minute),
		cookieSecure:   cookieSecure,
	}
}

// CollectRequest is the expected request body for the collect endpoint.
type CollectRequest struct {
	Path string `json:"path"`
}

const maxPathLen = 2048

// canonicalPath trims the trailing slash the site's route style adds, so
// "/about/" and "/about" count under one key. The root path is kept as is.
func canonicalPath(path string) string {
	if path == "/" {
		return path
	}
	return strings.TrimRight(path, "/")
}

// validateCollectRequest checks field lengths and shape.
func validateCollectRequest(req *CollectRequest) error {
	if req.Path == "" || req.Path[0] != '/' {
		return fmt.Errorf("path must begin with /")
	}
	if len(req.Path) > maxPathLen {
		return fmt.Errorf("path exceeds maximum length of %d", maxPathLen)
	}
	return nil
}

// Collect handles incoming page-view beacons from clients. The response never
// reflects whether the counters were actually written: identity is resolved,
// the aggregation is dispatched fire-and-forget, and 204 goes back regardless.
func (h *Handler) Collect(c echo.Context) error {
	// Rate limit by IP to prevent analytics flooding.
	if !h.collectLimiter.allow(c.RealIP()) {
		return c.NoContent(http.StatusTooManyRequests)
	}

	// Check for Do Not Track
	if c.Request().Header.Get("DNT") == "1" {
		return c.NoContent(http.StatusNoContent)
	}

	var req CollectRequest
	if err := c.Bind(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}
	if err := validateCollectRequest(&req); err != nil {
		return c.String(http.StatusBadRequest, "Invalid request")
	}

	id := Resolve(DurableCookies(c, h.cookieSecure), SessionCookies(c, h.cookieSecure), time.Now())
	h.agg.Dispatch(canonicalPath(req.Path), id, time.Now())

	return c.NoContent(http.StatusNoContent)
}

// StatsResponse is the JSON response for the stats endpoint.
type StatsResponse struct {
	Total      TotalStat   `json:"total"`
	Today      DailyStat   `json:"today"`
	DailyViews []DailyView `json:"daily_views"`
	TopPages   []PageStat  `json:"top_pages"`
	PeriodDays int         `json:"period_days"`
}

// GetStats returns aggregate statistics as JSON for the admin dashboard.
func (h *Handler) GetStats(c echo.Context) error {
	days := parsePeriod(c.QueryParam("period"))

	now := time.Now()
	today := now.Format(DateLayout)
	from := now.AddDate(0, 0, -(days - 1)).Format(DateLayout)

	total, err := h.store.GetTotalStat()
	if err != nil {
		c.Logger().Errorf("Failed to get total stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	daily, err := h.store.GetDailyStat(today)
	if err != nil && err != sql.ErrNoRows {
		c.Logger().Errorf("Failed to get daily stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	if err == sql.ErrNoRows {
		daily = DailyStat{Date: today, PageViews: map[string]int{}}
	}

	views, err := h.store.DailyViews(from, today)
	if err != nil {
		c.Logger().Errorf("Failed to get daily views: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	pages, err := h.store.TopPages(from, today, 10)
	if err != nil {
		c.Logger().Errorf("Failed to get top pages: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, StatsResponse{
		Total:      total,
		Today:      daily,
		DailyViews: fillDailyData(views, from, days),
		TopPages:   pages,
		PeriodDays: days,
	})
}

// GetDayStats returns one day's full counter record as JSON.
func (h *Handler) GetDayStats(c echo.Context) error {
	date := c.QueryParam("date")
	if _, err := time.Parse(DateLayout, date); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
	}
	stat, err := h.store.GetDailyStat(date)
	if err == sql.ErrNoRows {
		return c.JSON(http.StatusOK, DailyStat{Date: date, PageViews: map[string]int{}})
	}
	if err != nil {
		c.Logger().Errorf("Failed to get day stats: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, stat)
}

// parsePeriod maps the period query parameter to a day count.
func parsePeriod(period string) int {
	switch period {
	case "today":
		return 1
	case "week":
		return 7
	case "month":
		return 30
	case "year":
		return 365
	default:
		return 7
	}
}

// fillDailyData ensures every day in the period is present, filling gaps with zero.
func fillDailyData(sparse []DailyView, from string, days int) []DailyView {
	dataMap := make(map[string]int, len(sparse))
	for _, v := range sparse {
		dataMap[v.Date] = v.Views
	}

	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return sparse
	}
	result := make([]DailyView, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i).Format(DateLayout)
		result[i] = DailyView{Date: date, Views: dataMap[date]}
	}
	return result
}

// RegisterRoutes registers analytics routes with the Echo router.
func (h *Handler) RegisterRoutes(e *echo.Echo, authMiddleware echo.MiddlewareFunc) {
	// Wire the error log sink once, before any request can dispatch a
	// recording goroutine that reads it.
	h.agg.SetLogger(e.Logger.Errorf)

	// Public endpoint for collecting page views
	e.POST("/api/analytics/collect", h.Collect)

	// Admin API endpoints (JSON)
	admin := e.Group("/admin/analytics")
	admin.Use(authMiddleware)
	admin.GET("/api/stats", h.GetStats)
	admin.GET("/api/day", h.GetDayStats)
}
