package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("DB_DSN", "user:pass@tcp(localhost:3306)/social?parseTime=true")
	t.Setenv("JWT_SECRET", "test-secret")

	s, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", s.Port)
	assert.Equal(t, time.Minute, s.CounterTTL)
	assert.Equal(t, time.Duration(0), s.PurgeAfter)
	assert.Equal(t, 100, s.BatchSize)
	assert.False(t, s.RedisEnabled())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DSN", "dsn")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("PURGE_AFTER", "720h")
	t.Setenv("BATCH_SIZE", "25")

	s, err := Load()
	require.NoError(t, err)

	assert.True(t, s.RedisEnabled())
	assert.Equal(t, 720*time.Hour, s.PurgeAfter)
	assert.Equal(t, 25, s.BatchSize)
}

func TestLoadRequiresDSNAndSecret(t *testing.T) {
	t.Setenv("DB_DSN", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN")

	t.Setenv("DB_DSN", "dsn")
	t.Setenv("JWT_SECRET", "")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}
