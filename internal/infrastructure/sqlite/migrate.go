package sqlite

import (
	"embed"
	"fmt"
	"log/slog"

	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"

	"calcHistory/internal/pkg/migrator"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate применяет встроенные миграции (таблица calculations и индекс по времени).
func Migrate(db *DB, log *slog.Logger) error {
	drv, err := migratesqlite.WithInstance(db.DB.DB, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("sqlite migrate driver: %w", err)
	}
	return migrator.Up(migrationFiles, "migrations", "sqlite", drv, log)
}
