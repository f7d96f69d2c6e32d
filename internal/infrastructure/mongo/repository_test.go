package mongo

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/domain"
	"calcHistory/internal/pkg/testutil"
)

// mongoContainer — контейнер MongoDB, инициализируется в TestMain (nil в short-режиме или без Docker).
var mongoContainer *testutil.MongoContainer

func TestMain(m *testing.M) {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), testutil.StartupTimeout)
	defer cancel()

	if !testing.Short() {
		c, err := testutil.NewMongoContainer(ctx)
		if err != nil {
			log.Printf("MongoDB не поднята, интеграционные тесты пропускаются: %v", err)
		} else {
			mongoContainer = c
		}
	}

	code := m.Run()

	if mongoContainer != nil {
		if err := mongoContainer.Terminate(ctx); err != nil {
			log.Printf("ошибка остановки MongoDB: %v", err)
		}
	}
	os.Exit(code)
}

// setupMongoRepo подключается к тестовой MongoDB и очищает коллекцию.
func setupMongoRepo(t *testing.T) *CalculationRepo {
	t.Helper()
	if mongoContainer == nil {
		t.Skip("пропускаем интеграционный тест: нет контейнера MongoDB")
	}

	ctx := context.Background()
	client, err := New(ctx, &Config{
		URI:        mongoContainer.URI(),
		Database:   "testdb",
		Collection: "calculations",
	})
	require.NoError(t, err, "не удалось подключиться к MongoDB")
	t.Cleanup(func() { client.Close() })

	// Очищаем коллекцию перед тестом
	if err := client.Coll().Drop(ctx); err != nil {
		t.Logf("drop collection: %v (игнорируем)", err)
	}
	require.NoError(t, client.EnsureIndexes(ctx))

	return NewCalculationRepo(client, slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestMongoRepo_CreateAndList(t *testing.T) {
	repo := setupMongoRepo(t)
	ctx := context.Background()

	same := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	repo.now = func() time.Time {
		tick++
		// Одинаковые миллисекунды: порядок решает seq
		return same.Add(time.Duration(tick) * time.Microsecond)
	}

	first, err := repo.Create(ctx, domain.Calculation{X: 10, Y: 5, Result: 15, Operation: domain.OpAddition})
	require.NoError(t, err, "Create должен успешно сохранить")
	second, err := repo.Create(ctx, domain.Calculation{X: 10, Y: 5, Result: 2, Operation: domain.OpDivision})
	require.NoError(t, err)

	history, err := repo.ListByTimeDesc(ctx)
	require.NoError(t, err, "ListByTimeDesc должен успешно вернуть данные")
	require.Len(t, history, 2)

	assert.Equal(t, second, history[0], "первая запись — самая новая")
	assert.Equal(t, first, history[1])
}

func TestMongoRepo_Ping(t *testing.T) {
	repo := setupMongoRepo(t)
	assert.NoError(t, repo.Ping(context.Background()))
}
