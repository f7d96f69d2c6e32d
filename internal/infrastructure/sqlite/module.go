package sqlite

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DefaultPath — файл БД по умолчанию, если путь не задан.
const DefaultPath = "./calculator.db"

// Config — настройки встроенной БД SQLite.
// Переменные: CALCULATOR_SQLITE_DATABASE_PATH, при её отсутствии — DATABASE_PATH.
type Config struct {
	Path string `envconfig:"DATABASE_PATH" default:"./calculator.db"`
}

// DSN возвращает строку подключения для modernc.org/sqlite.
// busy_timeout — ожидание блокировки вместо мгновенного SQLITE_BUSY, WAL — читатели не блокируют писателя.
func (c *Config) DSN() string {
	path := DefaultPath
	if c != nil && strings.TrimSpace(c.Path) != "" {
		path = filepath.Clean(c.Path)
	}
	return path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
}

// DB обёртка над соединением с файлом БД.
type DB struct {
	*sqlx.DB
}

// New открывает (или создаёт) файл БД по конфигу и проверяет пингом.
// Соединение одно: SQLite допускает одного писателя, так запись сериализуется на стороне пула.
func New(cfg *Config) (*DB, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if path := strings.TrimSpace(cfg.Path); path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqlite dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite ping: %w", err)
	}
	return &DB{conn}, nil
}

// Close закрывает соединение.
func (db *DB) Close() error {
	return db.DB.Close()
}

// Ping проверяет соединение с БД (для readiness).
func (db *DB) Ping(ctx context.Context) error {
	return db.DB.PingContext(ctx)
}
