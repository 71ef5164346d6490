package integration_test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"prestigo/internal/db"
	"prestigo/internal/slot"
)

// setupTestDB connects to TEST_DSN and applies migrations. TEST_DB_DRIVER
// selects postgres (default) or sqlite.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dsn := os.Getenv("TEST_DSN")
	if dsn == "" {
		t.Skip("Skipping integration tests: TEST_DSN not set")
	}
	driver := os.Getenv("TEST_DB_DRIVER")
	if driver == "" {
		driver = db.DriverPostgres
	}

	database, err := db.Connect(driver, dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: cannot connect to test database: %v", err)
	}
	require.NoError(t, db.RunMigrations(database, "../migrations"))

	cleanDatabase(t, database)
	t.Cleanup(func() { database.Close() })
	return database
}

func cleanDatabase(t *testing.T, database *sqlx.DB) {
	for _, table := range []string{"records", "venues"} {
		_, err := database.Exec(fmt.Sprintf("DELETE FROM %s", table))
		require.NoError(t, err, "Failed to clean table "+table)
	}
}

func testHours() slot.Hours {
	h := slot.DefaultHours()
	h.Location = time.UTC
	return h
}

func tomorrow() time.Time {
	y, m, d := time.Now().UTC().AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
