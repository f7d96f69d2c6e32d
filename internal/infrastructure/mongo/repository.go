package mongo

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.ICalculationRepository = (*CalculationRepo)(nil)

// calculationDoc — документ в коллекции calculations. _id — строковый UUID записи.
// seq — наносекунды момента вставки, разрешает совпадения created_at (BSON-дата хранит миллисекунды).
type calculationDoc struct {
	ID        string    `bson:"_id"`
	X         float64   `bson:"x"`
	Y         float64   `bson:"y"`
	Result    float64   `bson:"result"`
	Operation string    `bson:"operation"`
	CreatedAt time.Time `bson:"created_at"`
	Seq       int64     `bson:"seq"`
}

// CalculationRepo реализует ports.ICalculationRepository для MongoDB.
type CalculationRepo struct {
	client *Client
	log    *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewCalculationRepo возвращает репозиторий записей.
func NewCalculationRepo(client *Client, log *slog.Logger) *CalculationRepo {
	return &CalculationRepo{client: client, log: log, now: time.Now, newID: uuid.NewString}
}

// Create сохраняет запись одним InsertOne (атомарно на уровне документа).
func (r *CalculationRepo) Create(ctx context.Context, calc domain.Calculation) (domain.Calculation, error) {
	now := r.now().UTC()
	calc.ID = r.newID()
	calc.Timestamp = now.Truncate(time.Millisecond)

	doc := calculationDoc{
		ID:        calc.ID,
		X:         calc.X,
		Y:         calc.Y,
		Result:    calc.Result,
		Operation: string(calc.Operation),
		CreatedAt: calc.Timestamp,
		Seq:       now.UnixNano(),
	}
	if _, err := r.client.Coll().InsertOne(ctx, doc); err != nil {
		r.log.Debug("Create failed", "error", err)
		return domain.Calculation{}, domain.StorageError("insert calculation", err)
	}
	return calc, nil
}

// ListByTimeDesc возвращает историю (последние сначала).
func (r *CalculationRepo) ListByTimeDesc(ctx context.Context) ([]domain.Calculation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "seq", Value: -1}})
	cursor, err := r.client.Coll().Find(ctx, bson.M{}, opts)
	if err != nil {
		r.log.Debug("ListByTimeDesc failed", "error", err)
		return nil, domain.StorageError("find calculations", err)
	}
	defer cursor.Close(ctx)

	var docs []calculationDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.StorageError("decode calculations", err)
	}
	list := make([]domain.Calculation, 0, len(docs))
	for _, d := range docs {
		list = append(list, domain.Calculation{
			ID:        d.ID,
			X:         d.X,
			Y:         d.Y,
			Result:    d.Result,
			Operation: domain.Operation(d.Operation),
			Timestamp: d.CreatedAt.UTC(),
		})
	}
	return list, nil
}

// Ping проверяет доступность БД.
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, nil)
}
