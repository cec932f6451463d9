package summitweb

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// CalendarMonth groups published trainings under one calendar month.
type CalendarMonth struct {
	Month     string // YYYY-MM
	Label     string // e.g. "March 2026"
	Trainings []Training
}

func (a *App) handleHome(c echo.Context) error {
	page, err := a.Cache.GetPage("home")
	if err != nil && err != ErrNotFound {
		return err
	}
	today := time.Now().Format("2006-01-02")
	upcoming, err := a.Cache.ListTrainings(today)
	if err != nil {
		return err
	}
	if len(upcoming) > 3 {
		upcoming = upcoming[:3]
	}
	return Render(c, a.Views.Home(page, upcoming, a.Config.URL))
}

// handlePage returns a handler serving one stored content page by slug.
func (a *App) handlePage(slug string) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := a.Cache.GetPage(slug)
		if err != nil {
			if err == sql.ErrNoRows {
				return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
			}
			return err
		}
		meta := PageMeta{
			Title:       page.Title + " | " + a.Config.Name,
			Description: a.Config.Description,
			URL:         BuildURL(a.Config.URL, slug),
			OGType:      "website",
		}
		return Render(c, a.Views.Page(page, meta))
	}
}

func (a *App) handlePrograms(c echo.Context) error {
	page, err := a.Cache.GetPage("programs")
	if err != nil && err != ErrNotFound {
		return err
	}
	trainings, err := a.Cache.ListTrainings("")
	if err != nil {
		return err
	}
	return Render(c, a.Views.Programs(page, trainings))
}

func (a *App) handleCalendar(c echo.Context) error {
	page, err := a.Cache.GetPage("calendar")
	if err != nil && err != ErrNotFound {
		return err
	}
	trainings, err := a.Cache.ListTrainings("")
	if err != nil {
		return err
	}
	active := c.QueryParam("month")
	months := groupByMonth(trainings)
	if active != "" {
		var filtered []CalendarMonth
		for _, m := range months {
			if m.Month == active {
				filtered = append(filtered, m)
			}
		}
		months = filtered
	}
	return Render(c, a.Views.Calendar(page, months, active))
}

// groupByMonth buckets trainings by the YYYY-MM prefix of their start date,
// preserving the ascending date order the store returns.
func groupByMonth(trainings []Training) []CalendarMonth {
	var months []CalendarMonth
	index := make(map[string]int)
	for _, t := range trainings {
		if len(t.Date) < 7 {
			continue
		}
		key := t.Date[:7]
		i, ok := index[key]
		if !ok {
			label := key
			if m, err := time.Parse("2006-01", key); err == nil {
				label = m.Format("January 2006")
			}
			months = append(months, CalendarMonth{Month: key, Label: label})
			i = len(months) - 1
			index[key] = i
		}
		months[i].Trainings = append(months[i].Trainings, t)
	}
	return months
}

func (a *App) handleGallery(c echo.Context) error {
	page, err := a.Cache.GetPage("gallery")
	if err != nil && err != ErrNotFound {
		return err
	}
	photos, err := a.Store.ListPhotos()
	if err != nil {
		return err
	}
	return Render(c, a.Views.Gallery(page, photos))
}

func (a *App) handleContact(c echo.Context) error {
	page, err := a.Cache.GetPage("contact")
	if err != nil && err != ErrNotFound {
		return err
	}
	sent := c.QueryParam("sent") == "1"
	return Render(c, a.Views.Contact(page, sent, CsrfToken(c)))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	msg := ContactMessage{
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}
	if msg.Name == "" || msg.Message == "" || !strings.Contains(msg.Email, "@") {
		return c.Redirect(http.StatusSeeOther, "/contact/?sent=0")
	}
	// Fire-and-forget: the visitor gets the confirmation page regardless of
	// whether the notification email goes through.
	if a.mailer != nil {
		logf := c.Echo().Logger.Errorf
		go func(m ContactMessage) {
			if err := a.mailer.SendContactNotification(m.Name, m.Email, m.Message); err != nil {
				logf("contact notification: %v", err)
			}
		}(msg)
	}
	return c.Redirect(http.StatusSeeOther, "/contact/?sent=1")
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.staticDir + "/favicon.svg")
}

// handleRobots generates robots.txt dynamically using the site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
