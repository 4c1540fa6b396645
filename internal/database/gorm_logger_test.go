package database

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// captureLog points the global logger at a buffer for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func fixedQuery() (string, int64) { return "SELECT 1", 1 }

func TestGormLogger_QueryErrors(t *testing.T) {
	buf := captureLog(t)
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: newGormLogger(logger.Warn, time.Minute),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.Error(t, db.Exec("SELECT * FROM missing_table").Error)

	logged := entries(t, buf)
	require.Len(t, logged, 1)
	assert.Equal(t, "error", logged[0]["level"])
	assert.Equal(t, "Query failed", logged[0]["message"])
	assert.Contains(t, logged[0]["sql"], "missing_table")
	assert.Contains(t, logged[0]["error"], "missing_table")
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()

	t.Run("record not found is not an error", func(t *testing.T) {
		buf := captureLog(t)
		newGormLogger(logger.Warn, time.Minute).Trace(ctx, time.Now(), fixedQuery, gorm.ErrRecordNotFound)
		assert.Empty(t, buf.String())
	})

	t.Run("slow query warns", func(t *testing.T) {
		buf := captureLog(t)
		newGormLogger(logger.Warn, 10*time.Millisecond).Trace(ctx, time.Now().Add(-time.Second), fixedQuery, nil)
		logged := entries(t, buf)
		require.Len(t, logged, 1)
		assert.Equal(t, "warn", logged[0]["level"])
		assert.Equal(t, "Slow query", logged[0]["message"])
		assert.Equal(t, "SELECT 1", logged[0]["sql"])
	})

	t.Run("fast query is quiet at warn", func(t *testing.T) {
		buf := captureLog(t)
		newGormLogger(logger.Warn, time.Minute).Trace(ctx, time.Now(), fixedQuery, nil)
		assert.Empty(t, buf.String())
	})

	t.Run("info level traces every query", func(t *testing.T) {
		buf := captureLog(t)
		newGormLogger(logger.Info, time.Minute).Trace(ctx, time.Now(), fixedQuery, nil)
		logged := entries(t, buf)
		require.Len(t, logged, 1)
		assert.Equal(t, "debug", logged[0]["level"])
		assert.EqualValues(t, 1, logged[0]["rows"])
	})

	t.Run("silent drops errors", func(t *testing.T) {
		buf := captureLog(t)
		l := newGormLogger(logger.Warn, time.Minute).LogMode(logger.Silent)
		l.Trace(ctx, time.Now(), fixedQuery, errors.New("boom"))
		l.Error(ctx, "failed %s", "badly")
		assert.Empty(t, buf.String())
	})
}
