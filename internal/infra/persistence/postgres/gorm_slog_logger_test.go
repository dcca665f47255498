package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"authsvc/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func TestGormSlogLogger_OmitsBoundValues(t *testing.T) {
	var buf bytes.Buffer
	slogger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = true

	repo := NewAccountRepository(newTestDB(t, slogger, cfg))
	account := newAccount("secret-email@x.io", "sub-secret")
	require.NoError(t, repo.Create(context.Background(), account))
	_, err := repo.FindByEmail(context.Background(), "secret-email@x.io")
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "auth_users")
	assert.NotContains(t, out, account.PasswordDigest)
	assert.NotContains(t, out, "secret-email@x.io")
}

func TestGormSlogLogger_Levels(t *testing.T) {
	cfg := &config.Config{}
	cfg.Database.SlowQueryThreshold = time.Second

	l := newGormSlogLogger(slog.New(slog.DiscardHandler), cfg).(*gormSlogLogger)
	assert.Equal(t, logger.Warn, l.level)
	assert.Equal(t, time.Second, l.slowThreshold)
	assert.True(t, l.shouldLogSlow(2*time.Second))
	assert.False(t, l.shouldLogSlow(500*time.Millisecond))

	silent := l.LogMode(logger.Silent).(*gormSlogLogger)
	assert.Equal(t, logger.Silent, silent.level)
	assert.Equal(t, logger.Warn, l.level)

	defaults := newGormSlogLogger(nil, nil).(*gormSlogLogger)
	assert.Equal(t, defaultGormSlowThreshold, defaults.slowThreshold)
}
