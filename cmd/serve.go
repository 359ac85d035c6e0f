package cmd

import (
	"context"
	"demoblog/config"
	"demoblog/domain"
	"demoblog/handler"
	"demoblog/session"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

const (
	shutdownTimeout = 10 * time.Second

	httpAddress       = ":80"
	httpsAddress      = ":443"
	acmeChallengePath = "/.well-known/acme-challenge/"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the blog server",
	Long: `Run the blog server.

Environment:
  ENV                  dev or pro (default pro)
  ADDRESS_LISTEN       plain HTTP address; empty outside dev serves HTTPS on :443 via Let's Encrypt
                       and redirects :80 to it
  WHITELIST_HOST       only request certificates for this host
  AUTOCERT_CACHE       certificate cache directory (default /var/www/.cache)
  SESSION_SECRET       key signing session cookies (random per process when empty)
  MAX_SESSIONS         sessions kept in memory (default 10000)
  ADMIN_PASSWORD_HASH  bcrypt hash; when empty login needs no password
  DB_DRIVER            memory or sqlite (default memory)
  DB_URL               sqlite data source (default in-memory)
  SITE_TITLE           overrides the site title
  LOG_LEVEL            debug, info, warn or error (default info)`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	posts, closePosts, err := openPosts(ctx, cfg)
	if err != nil {
		logger.Error("opening post store", zap.Error(err))
		return err
	}
	defer closePosts()

	registry, err := session.NewRegistry(cfg.MaxSessions)
	if err != nil {
		return err
	}
	tokens, err := session.NewTokens(cfg.SessionSecret)
	if err != nil {
		return err
	}

	site := domain.DefaultSite()
	if cfg.SiteTitle != "" {
		site.Title = cfg.SiteTitle
	}
	if cfg.DemoLogin() {
		logger.Warn("ADMIN_PASSWORD_HASH not set, login needs no credentials")
	}

	h := &handler.Handler{
		Posts:             posts,
		Site:              site,
		AdminPasswordHash: cfg.AdminPasswordHash,
		Logger:            logger,
	}
	e, err := handler.NewServer(h, session.Config{
		Registry: registry,
		Tokens:   tokens,
		Logger:   logger,
		Secure:   cfg.AutoTLS(),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var redirect *echo.Echo
	if cfg.AutoTLS() {
		// Cache certificates to avoid issues with rate limits (https://letsencrypt.org/docs/rate-limits)
		e.AutoTLSManager.Cache = autocert.DirCache(cfg.AutocertCache)
		if cfg.WhitelistHost != "" {
			e.AutoTLSManager.HostPolicy = autocert.HostWhitelist(cfg.WhitelistHost)
		}
		redirect = newRedirectServer(&e.AutoTLSManager)
	}

	errc := make(chan error, 2)
	go func() {
		errc <- start(e, cfg, logger)
	}()
	if redirect != nil {
		go func() {
			logger.Info("redirecting plain HTTP", zap.String("address", httpAddress))
			errc <- redirect.Start(httpAddress)
		}()
	}

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err = e.Shutdown(shutdownCtx)
	if redirect != nil {
		err = errors.Join(err, redirect.Shutdown(shutdownCtx))
	}
	return err
}

func start(e *echo.Echo, cfg config.Config, logger *zap.Logger) error {
	if !cfg.AutoTLS() {
		logger.Info("listening", zap.String("address", cfg.Address), zap.String("env", cfg.Environment))
		return e.Start(cfg.Address)
	}
	logger.Info("listening with automatic TLS", zap.String("address", httpsAddress))
	return e.StartAutoTLS(httpsAddress)
}

// newRedirectServer answers plain HTTP next to the TLS server: ACME HTTP-01
// challenges go to the certificate manager, everything else is sent to
// HTTPS.
func newRedirectServer(m *autocert.Manager) *echo.Echo {
	r := echo.New()
	r.HideBanner = true
	r.HidePort = true
	r.Pre(middleware.HTTPSRedirectWithConfig(middleware.RedirectConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Request().URL.Path, acmeChallengePath)
		},
	}))
	r.Any(acmeChallengePath+"*", echo.WrapHandler(m.HTTPHandler(nil)))
	return r
}
