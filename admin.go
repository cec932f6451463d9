package summitweb

import (
	"crypto/subtle"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Check(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(c.RealIP())
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminPage(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	page, err := a.Store.GetPage(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			// Editing a page that has no row yet still works; the save creates it.
			page = Page{Slug: slug}
		} else {
			return err
		}
	}
	return Render(c, a.Views.AdminPageForm(page, CsrfToken(c)))
}

func (a *App) handleAdminSavePage(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Page+slug+is+required.")
	}
	if err := a.Store.SavePage(Page{
		Slug:  Slugify(slug),
		Title: strings.TrimSpace(c.FormValue("title")),
		Body:  c.FormValue("body"),
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminTraining(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if id == "new" {
		return Render(c, a.Views.AdminTrainingForm(Training{}, CsrfToken(c)))
	}
	t, err := a.Store.GetTraining(id)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminTrainingForm(t, CsrfToken(c)))
}

func (a *App) handleAdminSaveTraining(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	id := strings.TrimSpace(c.FormValue("id"))
	if id == "" {
		id = ulid.Make().String()
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Training+title+is+required.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	endDate := strings.TrimSpace(c.FormValue("end_date"))
	if endDate != "" {
		if _, err := time.Parse("2006-01-02", endDate); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+end+date+format.+Use+YYYY-MM-DD.")
		}
	}
	if err := a.Store.SaveTraining(Training{
		ID:        id,
		Title:     title,
		Date:      date,
		EndDate:   endDate,
		Location:  strings.TrimSpace(c.FormValue("location")),
		Summary:   c.FormValue("summary"),
		Body:      c.FormValue("body"),
		Published: c.FormValue("published") != "",
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDeleteTraining(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := a.Store.DeleteTraining(c.Param("id")); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	pages, err := a.Store.ListPages()
	if err != nil {
		return err
	}
	trainings, err := a.Store.ListAllTrainings()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(pages, trainings, msg, CsrfToken(c)))
}
