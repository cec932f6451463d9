package summitweb

import "time"

// SiteConfig holds all configuration for a summitweb site.
type SiteConfig struct {
	Name        string // Site name (default "Summit Leadership Group")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for meta tags
	Author      string // Organization contact name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/site.db")

	AnalyticsEnabled      bool   // Enable page-view analytics
	AnalyticsDatabasePath string // Analytics SQLite path (default "data/analytics.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	// Outbound email (contact-form notifications). Empty API key disables it.
	ResendAPIKey string
	EmailFrom    string
	EmailTo      string

	// Google Photos import. Empty client ID disables the import routes.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	ContentCacheTTL time.Duration // Content cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Summit Leadership Group"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/site.db"
	}
	if c.AnalyticsDatabasePath == "" {
		c.AnalyticsDatabasePath = "data/analytics.db"
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}
