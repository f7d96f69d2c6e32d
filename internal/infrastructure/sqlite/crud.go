package sqlite

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

	// rowid — порядок вставки, разрешает совпадения по времени.
	selectCalculations = `SELECT id, x, y, result, operation, created_at
		FROM calculations ORDER BY created_at DESC, rowid DESC`
)

// calculationRow — строка таблицы calculations. Время хранится как Unix-наносекунды UTC.
type calculationRow struct {
	ID        string  `db:"id"`
	X         float64 `db:"x"`
	Y         float64 `db:"y"`
	Result    float64 `db:"result"`
	Operation string  `db:"operation"`
	CreatedAt int64   `db:"created_at"`
}

func (r calculationRow) toDomain() domain.Calculation {
	return domain.Calculation{
		ID:        r.ID,
		X:         r.X,
		Y:         r.Y,
		Result:    r.Result,
		Operation: domain.Operation(r.Operation),
		Timestamp: time.Unix(0, r.CreatedAt).UTC(),
	}
}

// CalculationRepo реализует ports.ICalculationRepository для SQLite.
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

// Create назначает ID и время и сохраняет запись одной вставкой.
func (r *CalculationRepo) Create(ctx context.Context, calc domain.Calculation) (domain.Calculation, error) {
	calc.ID = r.newID()
	calc.Timestamp = r.now().UTC()

	row := calculationRow{
		ID:        calc.ID,
		X:         calc.X,
		Y:         calc.Y,
		Result:    calc.Result,
		Operation: string(calc.Operation),
		CreatedAt: calc.Timestamp.UnixNano(),
	}
	if _, err := r.db.NamedExecContext(ctx, insertCalculation, row); err != nil {
		r.log.Debug("Create failed", "error", err)
		return domain.Calculation{}, domain.StorageError("insert calculation", err)
	}
	return calc, nil
}

// ListByTimeDesc возвращает все записи (последние сначала).
func (r *CalculationRepo) ListByTimeDesc(ctx context.Context) ([]domain.Calculation, error) {
	var rows []calculationRow
	if err := r.db.SelectContext(ctx, &rows, selectCalculations); err != nil {
		r.log.Debug("ListByTimeDesc failed", "error", err)
		return nil, domain.StorageError("select calculations", err)
	}
	list := make([]domain.Calculation, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toDomain())
	}
	return list, nil
}

// Ping проверяет доступность БД (readiness).
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
