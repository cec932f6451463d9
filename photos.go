package summitweb

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/summitleadership/summitweb/photosync"
)

// importSaver adapts the photo store to the photosync.Saver interface.
type importSaver struct {
	store *Store
}

func (s importSaver) HasSource(sourceID string) (bool, error) {
	return s.store.HasPhotoSource(sourceID)
}

func (s importSaver) SaveImported(item photosync.MediaItem) error {
	return s.store.SavePhoto(Photo{
		ID:       ulid.Make().String(),
		URL:      item.BaseURL,
		Caption:  item.Description,
		Source:   "google",
		SourceID: item.ID,
		TakenAt:  item.Metadata.CreationTime,
	})
}

// handlePhotoImport starts the Google Photos OAuth flow.
func (a *App) handlePhotoImport(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	state := ulid.Make().String()
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values["oauth_state"] = state
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, a.photos.AuthURL(state))
}

// handlePhotoImportCallback exchanges the authorization code and imports the
// library's photo metadata into the gallery.
func (a *App) handlePhotoImportCallback(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	want, _ := sess.Values["oauth_state"].(string)
	delete(sess.Values, "oauth_state")
	_ = sess.Save(c.Request(), c.Response())
	if want == "" || c.QueryParam("state") != want {
		return c.String(http.StatusForbidden, "Invalid OAuth state")
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Import+cancelled.")
	}

	ctx := c.Request().Context()
	token, err := a.photos.Exchange(ctx, code)
	if err != nil {
		c.Logger().Errorf("photo import: %v", err)
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Photo+import+failed.")
	}

	res, err := a.photos.Sync(ctx, token, importSaver{store: a.Store}, maxImportItems)
	if err != nil {
		c.Logger().Errorf("photo import: %v", err)
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Photo+import+failed.")
	}

	msg := fmt.Sprintf("Imported+%d+photos,+skipped+%d.", res.Imported, res.Skipped)
	return c.Redirect(http.StatusSeeOther, "/admin/?msg="+msg)
}

// maxImportItems caps one import run so a huge library cannot stall the callback.
const maxImportItems = 500
