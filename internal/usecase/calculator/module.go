package calculator

import (
	"log/slog"
	"strconv"
	"time"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// expression формирует читаемую запись операции для логов, например "1 + 1".
func expression(x, y float64, op domain.Operation) string {
	return strconv.FormatFloat(x, 'f', -1, 64) + " " + op.Symbol() + " " + strconv.FormatFloat(y, 'f', -1, 64)
}

// defaultPublishTimeout — сколько запрос ждёт брокер после сохранения записи.
const defaultPublishTimeout = 2 * time.Second

// UseCase — бизнес-логика калькулятора.
// broker и analytics необязательны: nil отключает публикацию событий и запись в аналитику.
type UseCase struct {
	repo      ports.ICalculationRepository
	broker    ports.IProducer
	analytics ports.ICalculationAnalytics
	log       *slog.Logger
	now       func() time.Time

	publishTimeout time.Duration
}

// New создаёт юзкейс калькулятора.
func New(repo ports.ICalculationRepository, broker ports.IProducer, analytics ports.ICalculationAnalytics, log *slog.Logger) *UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &UseCase{
		repo:      repo,
		broker:    broker,
		analytics: analytics,
		log:       log,
		now:       time.Now,

		publishTimeout: defaultPublishTimeout,
	}
}

var _ ports.ICalculatorUseCase = (*UseCase)(nil)
