package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vytor/heptareview/internal/db"
)

// NewTestDB opens an in-memory SQLite database with all migrations applied,
// using the cgo driver.
func NewTestDB(t *testing.T) *db.DB {
	return NewTestDBWithDriver(t, db.DriverCGO)
}

// NewTestDBWithDriver is NewTestDB for a specific driver. The database is
// closed when the test ends.
func NewTestDBWithDriver(t *testing.T, driver string) *db.DB {
	t.Helper()
	database, err := db.Open(driver, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

// MustClose closes a resource and fails the test on error.
func MustClose(t *testing.T, closer interface{ Close() error }) {
	require.NoError(t, closer.Close())
}
