package pg

import (
	"context"
	"embed"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4/database/postgres"

	"calcHistory/internal/pkg/migrator"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate создаёт таблицу calculations, если её ещё нет (golang-migrate, таблица версий schema_migrations).
// Миграции идут на отдельном соединении из пула, после Up оно возвращается в пул.
func Migrate(ctx context.Context, db *DB, log *slog.Logger) error {
	conn, err := db.DB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("pg migrate conn: %w", err)
	}

	drv, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("pg migrate driver: %w", err)
	}
	// Close драйвера закрывает только conn: пул (db) ему не передавался.
	defer drv.Close()

	return migrator.Up(migrationFiles, "migrations", "postgres", drv, log)
}
