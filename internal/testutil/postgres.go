package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/janisto/travel-profiles/internal/platform/database"
)

// DatabaseURLEnv names the variable holding the integration test database URL.
const DatabaseURLEnv = "TEST_DATABASE_URL"

// OpenDatabase connects to the database named by TEST_DATABASE_URL, skipping the test
// when the variable is unset or the server is unreachable. Tables for models are
// dropped, recreated and dropped again on cleanup, so point it at a scratch database.
func OpenDatabase(t *testing.T, models ...any) *database.DB {
	t.Helper()
	dsn := os.Getenv(DatabaseURLEnv)
	if dsn == "" {
		t.Skipf("%s not set", DatabaseURLEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := database.Open(ctx, database.Config{URL: dsn})
	if err != nil {
		t.Skipf("postgres not available: %v", err)
	}

	reset := func() {
		for i := len(models) - 1; i >= 0; i-- {
			_ = db.Gorm.Migrator().DropTable(models[i])
		}
	}
	reset()
	if err := db.Migrate(ctx, models...); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		reset()
		db.Close()
	})
	return db
}
