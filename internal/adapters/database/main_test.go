package database

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"socialgraph/internal/config"
	"socialgraph/internal/core/user"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// setupTestDB opens a private in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.GormConfig()
	cfg.Logger = logger.Discard
	dsn := fmt.Sprintf("file:repo_%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *user.User {
	t.Helper()
	u := user.New(name, name+"@example.com", "hash")
	_, err := NewUserRepositoryDatabase(db).Create(context.Background(), u)
	require.NoError(t, err)
	return u
}

// clock hands out strictly increasing UTC instants.
type clock struct{ at time.Time }

func newClock() *clock {
	return &clock{at: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *clock) next() time.Time {
	c.at = c.at.Add(time.Second)
	return c.at
}
