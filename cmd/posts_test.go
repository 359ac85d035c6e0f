package cmd

import (
	"bytes"
	"context"
	"demoblog/config"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestListPosts(t *testing.T) {
	for _, driver := range []string{config.DriverMemory, config.DriverSQLite} {
		t.Run(driver, func(t *testing.T) {
			var out bytes.Buffer
			cfg := config.Config{DBDriver: driver}
			require.NoError(t, listPosts(context.Background(), cfg, &out))

			lines := strings.Split(strings.TrimSpace(out.String()), "\n")
			require.Len(t, lines, 6)
			assert.True(t, strings.HasPrefix(lines[0], "ID"))
			assert.Contains(t, lines[1], "getting-started-with-react")
			assert.Contains(t, lines[1], "Kayla Knight")
			assert.Contains(t, lines[5], "context-api-patterns")
		})
	}
}

func TestPostsCommand(t *testing.T) {
	t.Setenv("ENV", "dev")
	t.Setenv("DB_DRIVER", "memory")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"posts"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "react-router-guide")
}

func TestNewLogger(t *testing.T) {
	logger, err := newLogger(config.Config{Environment: config.DevEnv, LogLevel: "debug"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = newLogger(config.Config{LogLevel: "loud"})
	assert.Error(t, err)
}
