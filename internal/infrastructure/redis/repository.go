package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

var _ ports.ICalculationRepository = (*CalculationRepo)(nil)

// CalculationRepo реализует ports.ICalculationRepository через Redis.
//
// Раскладка ключей (prefix из конфига):
//   - <prefix>:calculations — hash: id → JSON записи;
//   - <prefix>:timeline — sorted set: член "<seq>:<id>" со score = время создания в микросекундах;
//   - <prefix>:seq — счётчик вставок (INCR), seq дополнен нулями до 20 знаков.
//
// При равном score Redis сортирует члены лексикографически, поэтому seq держит порядок вставки.
// Запись в hash и timeline идёт одной транзакцией MULTI/EXEC.
type CalculationRepo struct {
	cli      *Client
	log      *slog.Logger
	records  string
	timeline string
	sequence string
	now      func() time.Time
	newID    func() string
}

// NewCalculationRepo возвращает репозиторий записей с префиксом ключей prefix.
func NewCalculationRepo(cli *Client, prefix string, log *slog.Logger) *CalculationRepo {
	if prefix == "" {
		prefix = "calculator"
	}
	return &CalculationRepo{
		cli:      cli,
		log:      log,
		records:  prefix + ":calculations",
		timeline: prefix + ":timeline",
		sequence: prefix + ":seq",
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create назначает ID и время (с точностью до микросекунд, как score в timeline) и пишет запись транзакцией.
func (r *CalculationRepo) Create(ctx context.Context, calc domain.Calculation) (domain.Calculation, error) {
	calc.ID = r.newID()
	calc.Timestamp = r.now().UTC().Truncate(time.Microsecond)

	payload, err := json.Marshal(calc)
	if err != nil {
		return domain.Calculation{}, fmt.Errorf("encode calculation: %w", err)
	}

	seq, err := r.cli.Incr(ctx, r.sequence).Result()
	if err != nil {
		r.log.Debug("Create failed", "key", r.sequence, "error", err)
		return domain.Calculation{}, domain.StorageError("next sequence", err)
	}

	_, err = r.cli.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, r.records, calc.ID, payload)
		pipe.ZAdd(ctx, r.timeline, redis.Z{Score: float64(calc.Timestamp.UnixMicro()), Member: timelineMember(seq, calc.ID)})
		return nil
	})
	if err != nil {
		r.log.Debug("Create failed", "key", r.records, "error", err)
		return domain.Calculation{}, domain.StorageError("store calculation", err)
	}
	return calc, nil
}

// ListByTimeDesc возвращает историю (последние сначала, при равном времени — позже вставленные).
func (r *CalculationRepo) ListByTimeDesc(ctx context.Context) ([]domain.Calculation, error) {
	members, err := r.cli.ZRevRange(ctx, r.timeline, 0, -1).Result()
	if err != nil {
		r.log.Debug("ListByTimeDesc failed", "key", r.timeline, "error", err)
		return nil, domain.StorageError("read timeline", err)
	}
	if len(members) == 0 {
		return []domain.Calculation{}, nil
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = idFromMember(m)
	}

	values, err := r.cli.HMGet(ctx, r.records, ids...).Result()
	if err != nil {
		r.log.Debug("ListByTimeDesc failed", "key", r.records, "error", err)
		return nil, domain.StorageError("read calculations", err)
	}

	list := make([]domain.Calculation, 0, len(values))
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			return nil, domain.StorageError("read calculations", fmt.Errorf("missing record %s", ids[i]))
		}
		var calc domain.Calculation
		if err := json.Unmarshal([]byte(s), &calc); err != nil {
			return nil, domain.StorageError("decode calculation", err)
		}
		calc.Timestamp = calc.Timestamp.UTC()
		list = append(list, calc)
	}
	return list, nil
}

// timelineMember собирает член sorted set: seq с ведущими нулями, чтобы лексикографический порядок совпадал с числовым.
func timelineMember(seq int64, id string) string {
	return fmt.Sprintf("%020d:%s", seq, id)
}

// idFromMember достаёт id из члена timeline.
func idFromMember(member string) string {
	if _, id, ok := strings.Cut(member, ":"); ok {
		return id
	}
	return member
}

// Ping проверяет доступность Redis.
func (r *CalculationRepo) Ping(ctx context.Context) error {
	return r.cli.Ping(ctx)
}
