package ports

//go:generate mockgen -source=usecase.go -destination=../mocks/usecase_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// ICalculatorUseCase — контракт бизнес-логики калькулятора (расчёт, история, выгрузка, обработка событий из Kafka).
type ICalculatorUseCase interface {
	Calculate(ctx context.Context, op domain.Operation, x, y float64) (*domain.Calculation, error)
	History(ctx context.Context) ([]domain.Calculation, error)
	Export(ctx context.Context) (*domain.Export, error)
	HandleCalculationEvent(ctx context.Context, calc domain.Calculation) error
}
