package analytics

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// cookieStorage adapts request/response cookies to the Storage interface.
// maxAge zero produces session cookies; a positive maxAge produces durable
// ones. Set also records the value locally so a Get later in the same request
// sees it (response cookies are not visible through the request).
type cookieStorage struct {
	c       echo.Context
	maxAge  int
	secure  bool
	written map[string]string
}

// DurableCookies returns Storage backed by one-year cookies.
func DurableCookies(c echo.Context, secure bool) Storage {
	return &cookieStorage{c: c, maxAge: 365 * 24 * 60 * 60, secure: secure}
}

// SessionCookies returns Storage backed by session-scoped cookies, which the
// browser discards when the browsing session ends.
func SessionCookies(c echo.Context, secure bool) Storage {
	return &cookieStorage{c: c, secure: secure}
}

func (s *cookieStorage) Get(key string) (string, bool) {
	if v, ok := s.written[key]; ok {
		return v, true
	}
	cookie, err := s.c.Cookie(key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *cookieStorage) Set(key, value string) {
	if s.written == nil {
		s.written = make(map[string]string)
	}
	s.written[key] = value
	s.c.SetCookie(&http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		MaxAge:   s.maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
	})
}
