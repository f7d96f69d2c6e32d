package calculator

import (
	"context"
	"encoding/json"
	"errors"

	"calcHistory/internal/domain"
)

// errAnalyticsDisabled — HandleCalculationEvent вызван без хранилища аналитики.
var errAnalyticsDisabled = errors.New("analytics sink is not configured")

// Calculate считает результат, сохраняет запись в хранилище и публикует событие в брокер.
// При ошибке входных данных запись не создаётся.
func (u *UseCase) Calculate(ctx context.Context, op domain.Operation, x, y float64) (*domain.Calculation, error) {
	expr := expression(x, y, op)

	result, err := op.Apply(x, y)
	if err != nil {
		u.log.Info("calculation rejected", "expr", expr, "error", err)
		return nil, err
	}

	calc, err := u.repo.Create(ctx, domain.Calculation{
		X:         x,
		Y:         y,
		Result:    result,
		Operation: op,
	})
	if err != nil {
		u.log.Error("save calculation", "expr", expr, "error", err)
		return nil, err
	}
	u.log.Info("calculation saved", "id", calc.ID, "expr", expr, "result", result)

	u.publish(ctx, calc)
	return &calc, nil
}

// publish отправляет сохранённую запись в брокер. Ошибка только логируется: запись уже сохранена.
// Ожидание брокера ограничено publishTimeout, недоступная Kafka не задерживает ответ дольше.
func (u *UseCase) publish(ctx context.Context, calc domain.Calculation) {
	if u.broker == nil {
		return
	}
	value, err := json.Marshal(calc)
	if err != nil {
		u.log.Warn("marshal calculation event", "id", calc.ID, "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, u.publishTimeout)
	defer cancel()
	if err := u.broker.Send(ctx, []byte(calc.ID), value); err != nil {
		u.log.Warn("broker send", "id", calc.ID, "error", err)
		return
	}
	u.log.Debug("calculation published", "id", calc.ID)
}

// History — все записи, новые первыми (обвязка над репозиторием).
func (u *UseCase) History(ctx context.Context) ([]domain.Calculation, error) {
	calcs, err := u.repo.ListByTimeDesc(ctx)
	if err != nil {
		u.log.Error("list calculations", "error", err)
		return nil, err
	}
	return calcs, nil
}

// Export фиксирует момент выгрузки и читает историю.
func (u *UseCase) Export(ctx context.Context) (*domain.Export, error) {
	generatedAt := u.now().UTC()
	calcs, err := u.History(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.Export{GeneratedAt: generatedAt, Calculations: calcs}, nil
}

// HandleCalculationEvent вызывается консьюмером при получении сообщения из топика calculations.
func (u *UseCase) HandleCalculationEvent(ctx context.Context, calc domain.Calculation) error {
	if u.analytics == nil {
		return errAnalyticsDisabled
	}
	if err := u.analytics.WriteCalculation(ctx, calc); err != nil {
		u.log.Warn("analytics write", "id", calc.ID, "error", err)
		return err
	}
	u.log.Info("calculation stored to click", "id", calc.ID, "expr", expression(calc.X, calc.Y, calc.Operation), "result", calc.Result)
	return nil
}
