package session

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "session"

const (
	tokenKey = "session.token"
	stateKey = "session.state"
	idKey    = "session.id"
)

// ErrNoProvider reports a handler reading the session on a route that the
// session middleware does not wrap. It is a wiring bug, not a runtime
// condition.
var ErrNoProvider = errors.New("session: state requested outside the session middleware")

type Config struct {
	Registry *Registry
	Tokens   *Tokens
	Logger   *zap.Logger
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// Middleware attaches the browser's State to every request, issuing a new
// session cookie when the cookie is missing or forged. A validly signed
// cookie naming a session the registry does not hold stays anonymous under
// the same ID.
func Middleware(cfg Config) echo.MiddlewareFunc {
	if cfg.Registry == nil || cfg.Tokens == nil {
		panic("session: middleware needs a registry and tokens")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parse := echojwt.WithConfig(echojwt.Config{
		SigningKey:             cfg.Tokens.Key(),
		TokenLookup:            "cookie:" + CookieName,
		ContextKey:             tokenKey,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			// A bad or missing cookie only means a new session.
			return nil
		},
	})

	resolve := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token, ok := c.Get(tokenKey).(*jwt.Token); ok {
				if id, ok := SessionID(token); ok {
					attach(c, id, cfg.Registry.Lookup(id))
					return next(c)
				}
			}

			id := cfg.Registry.NewID()
			raw, err := cfg.Tokens.Issue(id)
			if err != nil {
				return fmt.Errorf("issuing session token: %w", err)
			}
			c.SetCookie(&http.Cookie{
				Name:     CookieName,
				Value:    raw,
				Path:     "/",
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})
			logger.Debug("session started", zap.String("session", id))
			attach(c, id, cfg.Registry.Lookup(id))
			return next(c)
		}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(resolve(next))
	}
}

func attach(c echo.Context, id string, s State) {
	c.Set(idKey, id)
	c.Set(stateKey, s)
}

// From returns the State attached by Middleware.
func From(c echo.Context) (State, error) {
	s, ok := c.Get(stateKey).(State)
	if !ok || s == nil {
		return nil, ErrNoProvider
	}
	return s, nil
}

// MustFrom is From for handlers that are always mounted behind Middleware.
// It panics with ErrNoProvider otherwise.
func MustFrom(c echo.Context) State {
	s, err := From(c)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the session ID attached by Middleware, or "".
func ID(c echo.Context) string {
	id, _ := c.Get(idKey).(string)
	return id
}
