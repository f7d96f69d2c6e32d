// Package migrator — обвязка над golang-migrate: применяет встроенные (embed) миграции к уже открытой БД.
package migrator

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Up применяет все непримененные миграции из каталога dir файловой системы fsys.
// driverName — имя драйвера для логов и migrate ("sqlite", "postgres").
// Грязное состояние (прерванная миграция) чинится принудительной установкой текущей версии.
// Экземпляр migrate не закрывается: Close закрыл бы и переданное соединение с БД. Драйвер закрывает вызывающий.
func Up(fsys fs.FS, dir, driverName string, drv database.Driver, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, drv)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration version: %w", err)
	}

	if dirty {
		log.Warn("database is dirty, forcing current version", "driver", driverName, "version", version)
		if err := m.Force(int(version)); err != nil {
			return fmt.Errorf("force version %d: %w", version, err)
		}
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debug("schema is up to date", "driver", driverName, "version", version)
			return nil
		}
		return fmt.Errorf("migrate up: %w", err)
	}

	newVersion, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("migration version: %w", err)
	}
	log.Info("migrations applied", "driver", driverName, "from", version, "to", newVersion)
	return nil
}
