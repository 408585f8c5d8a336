// Package testsupport holds shared helpers for database-backed tests.
package testsupport

import (
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var dbCounter atomic.Uint64

// NewSQLiteMemoryDB opens a named shared-cache in-memory database. Connections
// opened with the same name see the same data.
func NewSQLiteMemoryDB(name string) (*sql.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_").Replace(name)
	return sql.Open("sqlite3", fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name))
}

// NewBunDB returns a bun handle on a fresh in-memory database that is closed
// when the test ends.
func NewBunDB(t testing.TB) *bun.DB {
	t.Helper()
	sqlDB, err := NewSQLiteMemoryDB(fmt.Sprintf("%s_%d", t.Name(), dbCounter.Add(1)))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	db := bun.NewDB(sqlDB, sqlitedialect.New())
	t.Cleanup(func() { _ = db.Close() })
	return db
}
