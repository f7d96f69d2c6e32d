package pg

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.ICalculationRepository = (*CalculationRepo)(nil)

const (
	insertCalculation = `INSERT INTO calculations (id, x, y, result, operation, created_at)
		VALUES (:id, :x, :y, :result, :operation, :created_at)`

	selectCalculations = `SELECT id, x, y, result, operation, created_at
		FROM calculations ORDER BY created_at DESC, seq DESC`
)

// calculationRow — строка таблицы calculations.
type calculationRow struct {
	ID        string    `db:"id"`
	X         float64   `db:"x"`
	Y         float64   `db:"y"`
	Result    float64   `db:"result"`
	Operation string    `db:"operation"`
	CreatedAt time.Time `db:"created_at"`
}

// CalculationRepo реализует ports.ICalculationRepository для PostgreSQL.
type CalculationRepo struct {
	db    *DB
	log   *slog.Logger
	now   func() time.Time
	newID func() string
}

// NewCalculationRepo возвращает репозиторий записей.
func NewCalculationRepo(db *DB, log *slog.Logger) *CalculationRepo {
	return &CalculationRepo{db: db, log: log, now: time.Now, newID: uuid.NewString}
}

// Create назначает ID и время и сохраняет запись в БД.
// TIMESTAMPTZ хранит микросекунды, поэтому время округляется до них заранее: возвращённая запись совпадает с прочитанной.
func (r *CalculationRepo) Create(ctx context.Context, calc domain.Calculation) (domain.Calculation, error) {
	calc.ID = r.newID()
	calc.Timestamp = r.now().UTC().Truncate(time.Microsecond)

	_, err := r.db.NamedExecContext(ctx, insertCalculation, calculationRow{
		ID:        calc.ID,
		X:         calc.X,
		Y:         calc.Y,
		Result:    calc.Result,
		Operation: string(calc.Operation),
		CreatedAt: calc.Timestamp,
	})
	if err != nil {
		r.log.Debug("Create failed", "error", err)
		return domain.Calculation{}, domain.StorageError("insert calculation", err)
	}
	return calc, nil
}

// ListByTimeDesc возвращает историю из БД (последние сначала).
func (r *CalculationRepo) ListByTimeDesc(ctx context.Context) ([]domain.Calculation, error) {
	var rows []calculationRow
	if err := r.db.SelectContext(ctx, &rows, selectCalculations); err != nil {
		r.log.Debug("ListByTimeDesc failed", "error", err)
		return nil, domain.StorageError("select calculations", err)
	}
	list := make([]domain.Calculation, 0, len(rows))
	for _, row := range rows {
		list = append(list, domain.Calculation{
			ID:        row.ID,
			X:         row.X,
			Y:         row.Y,
			Result:    row.Result,
			Operation: domain.Operation(row.Operation),
			Timestamp: row.CreatedAt.UTC(),
		})
	}
	return list, nil
}

// Ping проверяет доступность БД (readiness).
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
