package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/sahakari-society/members-console/internal/adapters/postgres"
)

// OpenMigratedPool connects to TEST_DATABASE_URL, applies migrations and
// returns a pool closed at test cleanup. The test is skipped when the
// variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres tests")
	}
	if err := postgres.RunMigrations(dsn); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}
	pool, err := postgres.NewPool(context.Background(), dsn, postgres.PoolOptions{MaxConns: 4})
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}
