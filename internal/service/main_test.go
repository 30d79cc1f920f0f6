package service_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/hotel-reservations/migrations"
	"github.com/pkordes/hotel-reservations/testutil"
)

// TestMain migrates the test database when one is configured. The in-memory
// tests need nothing; the Postgres-backed ones skip via testutil otherwise.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		db := testutil.MustOpenSQLDB(dsn)
		if _, err := migrations.Up(context.Background(), db); err != nil {
			db.Close()
			log.Fatalf("TestMain: run migrations: %v", err)
		}
		db.Close()
	}

	os.Exit(m.Run())
}
