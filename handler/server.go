package handler

import (
	"demoblog/router"
	"demoblog/session"
	"demoblog/web"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// NewServer builds the echo instance serving h.
func NewServer(h *Handler, sessions session.Config) (*echo.Echo, error) {
	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}
	if h.Routes == nil {
		h.Routes = router.DefaultTable()
	}
	renderer, err := web.NewTemplateRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	if sessions.Logger == nil {
		sessions.Logger = h.Logger
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.HTTPErrorHandler = h.HTTPErrorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(requestLogger(h.Logger))
	e.Use(middleware.Recover())
	e.Use(session.Middleware(sessions))
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup:    "form:_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   sessions.Secure,
		CookieSameSite: http.SameSiteLaxMode,
	}))

	h.Register(e)
	return e, nil
}

// Register mounts one GET route per route table entry, all dispatched by
// Navigate, plus the login and logout actions.
func (h *Handler) Register(e *echo.Echo) {
	for _, r := range h.Routes {
		e.GET(r.Pattern, h.Navigate)
	}
	e.POST(router.LoginPath, h.Login)
	e.POST("/logout", h.Logout)
	e.StaticFS("/static", web.Static())
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				logger.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
