package ports

//go:generate mockgen -source=repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"calcHistory/internal/domain"
)

// ICalculationRepository — контракт хранилища записей калькулятора.
// Create сам назначает ID и Timestamp и пишет запись атомарно; обновления и удаления нет.
type ICalculationRepository interface {
	Create(ctx context.Context, calc domain.Calculation) (domain.Calculation, error)
	ListByTimeDesc(ctx context.Context) ([]domain.Calculation, error)
	Ping(ctx context.Context) error
}
