package handler

import (
	"demoblog/router"
	"demoblog/session"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type featureDTO struct {
	Title       string
	Description string
}

var features = []featureDTO{
	{Title: "Learn React", Description: "Comprehensive guides on React fundamentals and advanced topics"},
	{Title: "Modern Patterns", Description: "Explore best practices and design patterns for React applications"},
	{Title: "Practical Examples", Description: "Code examples you can use in your own projects"},
}

// Navigate serves every page route. The route table decides which view the
// path selects and whether the session may see it.
func (h *Handler) Navigate(c echo.Context) error {
	state := session.MustFrom(c)
	// Escaped, so the table splits segments the way echo's router did.
	path := c.Request().URL.EscapedPath()

	d := h.Routes.Resolve(path, state)
	if d.Route.Protected {
		c.Response().Header().Set(echo.HeaderCacheControl, "no-store")
	}
	if d.NotFound {
		return echo.ErrNotFound
	}
	if d.Redirect != "" {
		h.Logger.Debug("guard redirect",
			zap.String("from", path),
			zap.String("to", d.Redirect),
			zap.String("session", session.ID(c)))
		return c.Redirect(http.StatusSeeOther, d.Redirect)
	}

	switch d.View {
	case router.ViewHome:
		return h.home(c, state)
	case router.ViewBlogList:
		return h.blogList(c, state)
	case router.ViewBlogPost:
		return h.blogPost(c, state, d.Params[router.ParamSlug])
	case router.ViewLogin:
		return h.renderLogin(c, state, http.StatusOK, "")
	case router.ViewAdmin:
		return h.admin(c, state)
	}
	return fmt.Errorf("no page for view %q", d.View)
}

func (h *Handler) home(c echo.Context, s session.State) error {
	return c.Render(http.StatusOK, "home.html", struct {
		LayoutDTO
		Features []featureDTO
	}{
		LayoutDTO: h.layout(c, s),
		Features:  features,
	})
}

func (h *Handler) admin(c echo.Context, s session.State) error {
	return c.Render(http.StatusOK, "admin.html", h.layout(c, s))
}
