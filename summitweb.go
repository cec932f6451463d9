// Package summitweb is the marketing site and lightweight CMS backend for a
// leadership-consulting business, built with Go, Echo, and templ.
// It provides editable page content, training records, a photo gallery with
// Google Photos import, page-view analytics, and outbound email notifications.
//
// Users provide their own templ templates via the ViewFuncs struct, and
// summitweb handles all the handler logic, middleware, and database operations.
package summitweb

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/summitleadership/summitweb/analytics"
	"github.com/summitleadership/summitweb/email"
	"github.com/summitleadership/summitweb/photosync"
)

// ViewFuncs holds user-provided templ components that the engine calls when
// rendering pages. This is the inversion-of-control mechanism that lets users
// own and customize all templates.
type ViewFuncs struct {
	Home              func(page Page, upcoming []Training, siteURL string) templ.Component
	Page              func(page Page, meta PageMeta) templ.Component
	Programs          func(page Page, trainings []Training) templ.Component
	Calendar          func(page Page, months []CalendarMonth, active string) templ.Component
	Gallery           func(page Page, photos []Photo) templ.Component
	Contact           func(page Page, sent bool, csrfToken string) templ.Component
	AdminLogin        func(showError bool, csrfToken string) templ.Component
	AdminDashboard    func(pages []Page, trainings []Training, message string, csrfToken string) templ.Component
	AdminPageForm     func(page Page, csrfToken string) templ.Component
	AdminTrainingForm func(t Training, csrfToken string) templ.Component
	AdminPhotos       func(photos []Photo, csrfToken string) templ.Component
	NotFound          func() templ.Component
	ServerError       func() templ.Component
}

// App is the central summitweb application. It wires together the stores,
// cache, handlers, middleware, and user-provided templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *ContentCache
	Views  ViewFuncs

	loginLimiter     *LoginLimiter
	analyticsStore   *analytics.Store
	analyticsHandler *analytics.Handler
	mailer           *email.Client
	photos           *photosync.Client
	customRoutes     []func(*App)
	staticDir        string
}

// New creates a new summitweb App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		Views:     views,
		staticDir: "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, middleware, routes, and starts the server.
func (a *App) Start() error {
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("summitweb: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("summitweb: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("summitweb: init store: %w", err)
	}
	a.Store = store

	a.Cache = NewContentCache(a.Store, a.Config.ContentCacheTTL)
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	if a.Config.AnalyticsEnabled {
		analyticsStore, err := analytics.NewStore(a.Config.AnalyticsDatabasePath)
		if err != nil {
			return fmt.Errorf("summitweb: init analytics: %w", err)
		}
		a.analyticsStore = analyticsStore
		a.analyticsHandler = analytics.NewHandler(analyticsStore, a.Config.CookieSecure)
	}

	if a.Config.ResendAPIKey != "" {
		a.mailer = email.NewClient(a.Config.ResendAPIKey, a.Config.EmailFrom, a.Config.Name, a.Config.EmailTo)
	}

	if a.Config.GoogleClientID != "" {
		a.photos = photosync.NewClient(photosync.Config{
			ClientID:     a.Config.GoogleClientID,
			ClientSecret: a.Config.GoogleClientSecret,
			RedirectURL:  a.Config.GoogleRedirectURL,
		})
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// Serve the embedded analytics beacon under /public/, falling through to
	// the user's static dir for everything else.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/analytics.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	// Public pages
	e.GET("/", a.handleHome)
	e.GET("/about/", a.handlePage("about"))
	e.GET("/mission/", a.handlePage("mission"))
	e.GET("/programs/", a.handlePrograms)
	e.GET("/calendar/", a.handleCalendar)
	e.GET("/gallery/", a.handleGallery)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/page/:slug/", a.handleAdminPage)
	e.POST("/admin/save-page/", a.handleAdminSavePage)
	e.GET("/admin/training/:id/", a.handleAdminTraining)
	e.POST("/admin/save-training/", a.handleAdminSaveTraining)
	e.DELETE("/admin/training/:id/", a.handleAdminDeleteTraining)
	e.GET("/admin/photos/", a.handlePhotoList)
	e.POST("/admin/photos/upload/", a.handlePhotoUpload)
	e.DELETE("/admin/photos/:id/", a.handlePhotoDelete)

	// Google Photos import
	if a.photos != nil {
		e.GET("/admin/photos/import/", a.handlePhotoImport)
		e.GET("/admin/photos/import/callback", a.handlePhotoImportCallback)
	}

	// Analytics routes
	if a.analyticsHandler != nil {
		adminOnly := func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				if !IsAdmin(c) {
					return c.Redirect(http.StatusSeeOther, "/admin/")
				}
				return next(c)
			}
		}
		a.analyticsHandler.RegisterRoutes(e, adminOnly)
	}
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		a.Store.Close()
	}
	if a.analyticsStore != nil {
		a.analyticsStore.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("summitweb: required environment variable %s is not set", key)
	}
	return v
}
