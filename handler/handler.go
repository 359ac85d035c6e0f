package handler

import (
	"demoblog/domain"
	"demoblog/router"
	"demoblog/session"
	"demoblog/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Posts  store.Posts
	Routes router.Table
	Site   domain.Site
	// AdminPasswordHash is a bcrypt hash. Empty means demo login.
	AdminPasswordHash string
	Logger            *zap.Logger
}

// LayoutDTO is what base.html needs on every page.
type LayoutDTO struct {
	Site     domain.Site
	LoggedIn bool
	CSRF     string
}

func (h *Handler) layout(c echo.Context, s session.State) LayoutDTO {
	return LayoutDTO{
		Site:     h.Site,
		LoggedIn: s.IsAuthenticated(),
		CSRF:     csrfToken(c),
	}
}

func csrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}
