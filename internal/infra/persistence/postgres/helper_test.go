package postgres

import (
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"authsvc/config"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// newTestDB opens a private in-memory SQLite database with the auth_users schema.
func newTestDB(t *testing.T, logger *slog.Logger, cfg *config.Config) *gorm.DB {
	t.Helper()

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), NewGormConfig(logger, cfg))
	require.NoError(t, err)
	db = db.Session(&gorm.Session{SkipDefaultTransaction: true})

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps SQLite from reporting table locks between transactions.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))

	return db
}
