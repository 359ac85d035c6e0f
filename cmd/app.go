package cmd

import (
	"context"
	"demoblog/config"
	"demoblog/store"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func newLogger(cfg config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if cfg.Dev() {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// openPosts returns the configured post store and a func releasing it.
func openPosts(ctx context.Context, cfg config.Config) (store.Posts, func() error, error) {
	posts, err := store.DefaultPosts()
	if err != nil {
		return nil, nil, fmt.Errorf("loading posts: %w", err)
	}

	if cfg.DBDriver == config.DriverSQLite {
		s, err := store.OpenSQLite(ctx, cfg.DBURL, posts)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	m, err := store.NewMemory(posts)
	if err != nil {
		return nil, nil, err
	}
	return m, func() error { return nil }, nil
}
