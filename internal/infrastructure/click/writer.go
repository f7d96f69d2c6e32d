package click

import (
	"context"
	"fmt"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.ICalculationAnalytics = (*CalculationWriter)(nil)

const calculationsAnalyticsTable = "calculations_analytics"

// CalculationWriter записывает операции в ClickHouse в формате, удобном для аналитики (GROUP BY operation, по времени и т.д.).
type CalculationWriter struct {
	db    *Client
	table string
}

// NewCalculationWriter создаёт писатель операций для аналитики в базе database.
func NewCalculationWriter(db *Client, database string) *CalculationWriter {
	if database == "" {
		database = "default"
	}
	return &CalculationWriter{db: db, table: database + "." + calculationsAnalyticsTable}
}

// EnsureTable создаёт таблицу для аналитики, если её ещё нет. Вызови один раз при старте консьюмера.
// ReplacingMergeTree по id схлопывает повторные доставки одного события.
func (w *CalculationWriter) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id String,
			x Float64,
			y Float64,
			result Float64,
			operation LowCardinality(String),
			created_at DateTime64(6, 'UTC')
		) ENGINE = ReplacingMergeTree()
		PARTITION BY toYYYYMM(created_at)
		ORDER BY (operation, created_at, id)`,
		w.table,
	)
	_, err := w.db.DB().ExecContext(ctx, query)
	return err
}

// WriteCalculation реализует ports.ICalculationAnalytics: пишет одну запись в ClickHouse.
func (w *CalculationWriter) WriteCalculation(ctx context.Context, calc domain.Calculation) error {
	query := fmt.Sprintf(
		"INSERT INTO %s (id, x, y, result, operation, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		w.table,
	)
	_, err := w.db.DB().ExecContext(ctx, query,
		calc.ID, calc.X, calc.Y, calc.Result, string(calc.Operation), calc.Timestamp)
	if err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

// CountByOperation возвращает число записей по каждой операции (для отчётов и проверки загрузки).
func (w *CalculationWriter) CountByOperation(ctx context.Context) (map[domain.Operation]uint64, error) {
	rows, err := w.db.DB().QueryContext(ctx,
		fmt.Sprintf("SELECT operation, count() FROM %s FINAL GROUP BY operation", w.table))
	if err != nil {
		return nil, fmt.Errorf("count by operation: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Operation]uint64)
	for rows.Next() {
		var op string
		var n uint64
		if err := rows.Scan(&op, &n); err != nil {
			return nil, err
		}
		counts[domain.Operation(op)] = n
	}
	return counts, rows.Err()
}
