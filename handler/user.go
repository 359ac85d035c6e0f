package handler

import (
	"demoblog/router"
	"demoblog/session"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Login authenticates the session and sends the browser to the admin page.
// In demo mode no credentials are checked.
func (h *Handler) Login(c echo.Context) error {
	state := session.MustFrom(c)

	if h.AdminPasswordHash != "" {
		err := bcrypt.CompareHashAndPassword([]byte(h.AdminPasswordHash), []byte(c.FormValue("password")))
		if err != nil {
			if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				h.Logger.Error("checking admin password", zap.Error(err))
			}
			h.Logger.Info("login rejected", zap.String("session", session.ID(c)))
			return h.renderLogin(c, state, http.StatusUnauthorized, "Wrong password")
		}
	}

	state.Login()
	h.Logger.Info("logged in", zap.String("session", session.ID(c)))
	return c.Redirect(http.StatusSeeOther, router.AdminPath)
}

func (h *Handler) Logout(c echo.Context) error {
	session.MustFrom(c).Logout()
	h.Logger.Info("logged out", zap.String("session", session.ID(c)))
	return c.Redirect(http.StatusSeeOther, router.HomePath)
}

func (h *Handler) renderLogin(c echo.Context, s session.State, code int, message string) error {
	return c.Render(code, "login.html", struct {
		LayoutDTO
		Demo  bool
		Error string
	}{
		LayoutDTO: h.layout(c, s),
		Demo:      h.AdminPasswordHash == "",
		Error:     message,
	})
}
