package summitweb

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render streams a templ component to the client as a 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus streams a templ component with the given status code. The
// status is committed before rendering starts, so component errors after the
// first write cannot change it.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	res.WriteHeader(code)
	return cmp.Render(c.Request().Context(), res.Writer)
}
