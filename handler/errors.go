package handler

import (
	"demoblog/session"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HTTPErrorHandler renders the error page for errors returned by handlers.
func (h *Handler) HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code != http.StatusNotFound {
		h.Logger.Error("request failed",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("uri", c.Request().RequestURI))
	}

	if c.Request().Method == http.MethodHead {
		if err := c.NoContent(code); err != nil {
			h.Logger.Error("writing error response", zap.Error(err))
		}
		return
	}

	data := struct {
		LayoutDTO
		Code    int
		Message string
	}{
		LayoutDTO: LayoutDTO{Site: h.Site, CSRF: csrfToken(c)},
		Code:      code,
		Message:   http.StatusText(code),
	}
	// Errors raised before the session middleware ran have no session;
	// the page then shows the anonymous navbar.
	if s, err := session.From(c); err == nil {
		data.LoggedIn = s.IsAuthenticated()
	}
	if err := c.Render(code, "error.html", data); err != nil {
		h.Logger.Error("rendering error page", zap.Error(err))
	}
}
