package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

var testEpoch = time.Date(2026, 1, 27, 15, 53, 55, 0, time.UTC)

func testClock() clockwork.Clock {
	return clockwork.NewFakeClockAt(testEpoch)
}

// newTestDB opens an in-memory database with the full schema applied.
// The pool is pinned to one connection because every in-memory connection
// gets its own database.
func newTestDB(t *testing.T) *DB {
	t.Helper()

	sqlDB, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := &DB{DB: sqlDB}
	require.NoError(t, db.RunMigrations())
	return db
}
