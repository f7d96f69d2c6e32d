package migrator

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/pkg/logger"
)

// testMigrations — две миграции: таблица и индекс.
var testMigrations = fstest.MapFS{
	"migrations/0001_items.up.sql":      {Data: []byte("CREATE TABLE items (id TEXT PRIMARY KEY);")},
	"migrations/0001_items.down.sql":    {Data: []byte("DROP TABLE items;")},
	"migrations/0002_items_id.up.sql":   {Data: []byte("CREATE INDEX idx_items_id ON items (id);")},
	"migrations/0002_items_id.down.sql": {Data: []byte("DROP INDEX idx_items_id;")},
}

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "migrator.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUp_AppliesAndIsIdempotent(t *testing.T) {
	db := openSQLite(t)

	for i := 0; i < 2; i++ {
		drv, err := sqlite.WithInstance(db, &sqlite.Config{})
		require.NoError(t, err)
		require.NoError(t, Up(testMigrations, "migrations", "sqlite", drv, logger.Discard()))
	}

	var version int
	require.NoError(t, db.QueryRow("SELECT version FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)

	_, err := db.Exec("INSERT INTO items (id) VALUES ('a')")
	assert.NoError(t, err, "таблица из миграции должна существовать")
}

func TestUp_MissingDir(t *testing.T) {
	db := openSQLite(t)
	drv, err := sqlite.WithInstance(db, &sqlite.Config{})
	require.NoError(t, err)

	err = Up(testMigrations, "nope", "sqlite", drv, logger.Discard())
	assert.Error(t, err)
}
