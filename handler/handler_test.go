package handler

import (
	"demoblog/domain"
	"demoblog/session"
	"demoblog/store"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	posts, err := store.DefaultPosts()
	require.NoError(t, err)
	mem, err := store.NewMemory(posts)
	require.NoError(t, err)

	return &Handler{
		Posts:  mem,
		Site:   domain.DefaultSite(),
		Logger: zap.NewNop(),
	}
}

func newTestServer(t *testing.T, h *Handler) *echo.Echo {
	t.Helper()
	return newTestServerSize(t, h, 16)
}

// newTestServerSize bounds the session registry to size logins.
func newTestServerSize(t *testing.T, h *Handler, size int) *echo.Echo {
	t.Helper()
	registry, err := session.NewRegistry(size)
	require.NoError(t, err)
	tokens, err := session.NewTokens("test-secret")
	require.NoError(t, err)

	e, err := NewServer(h, session.Config{Registry: registry, Tokens: tokens})
	require.NoError(t, err)
	return e
}

// browser replays cookies between requests the way a real one would.
type browser struct {
	t       *testing.T
	e       *echo.Echo
	cookies map[string]*http.Cookie
}

func newBrowser(t *testing.T, e *echo.Echo) *browser {
	return &browser{t: t, e: e, cookies: map[string]*http.Cookie{}}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	b.e.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(target string) *httptest.ResponseRecorder {
	b.t.Helper()
	return b.do(httptest.NewRequest(http.MethodGet, target, nil))
}

// post submits a form with the CSRF token of the browser's cookie.
func (b *browser) post(target string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	if c, ok := b.cookies["_csrf"]; ok {
		form.Set("_csrf", c.Value)
	}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return b.do(req)
}

// login visits the login page for a CSRF token, then submits the form.
func (b *browser) login(form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	b.get("/login")
	return b.post("/login", form)
}
