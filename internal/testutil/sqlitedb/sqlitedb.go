package sqlitedb

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	infradb "smartfarm-credit/internal/infrastructure/db"
)

// Open returns a migrated in-memory database private to t. The database is
// named and shared-cache so pooled connections see one schema; the pool is
// capped at one connection, which also serializes concurrent transactions.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	return open(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", name), 1)
}

// OpenFile returns a migrated file database in t.TempDir() behind a pool of
// several connections, so goroutines really run transactions side by side.
// Writers wait on the database lock instead of failing with SQLITE_BUSY.
func OpenFile(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	return open(t, "file:"+path+"?_busy_timeout=10000&_txlock=immediate&_journal_mode=WAL", 0)
}

func open(t testing.TB, dsn string, maxConns int) *gorm.DB {
	t.Helper()
	db, err := infradb.OpenGormWithDialector(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	if maxConns > 0 {
		sqlDB.SetMaxOpenConns(maxConns)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := infradb.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
