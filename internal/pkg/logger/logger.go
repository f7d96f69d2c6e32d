package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// DefaultFile — файл логов по умолчанию (в рабочей директории процесса).
const DefaultFile = "app.log"

// Config — настройки логгера. Переменные: CALCULATOR_LOG_LEVEL, CALCULATOR_LOG_FILE.
type Config struct {
	Level string `default:"info"`
	File  string `default:"app.log"`
}

// logWriter открывает файл логов и возвращает writer в файл + stderr (и в файл, и в консоль).
// Пустой путь или ошибка открытия — только stderr.
func logWriter(path string) io.Writer {
	if path == "" {
		return os.Stderr
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return os.Stderr
	}
	return io.MultiWriter(f, os.Stderr)
}

// NewFromConfig возвращает логгер по конфигу: уровень и файл.
func NewFromConfig(cfg Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(logWriter(cfg.File), &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}))
}

// ParseLevel переводит строку уровня в slog.Level. Неизвестное значение — Info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Discard возвращает логгер, который ничего не пишет (для тестов и CLI-команд без вывода).
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
