package click

import (
	"context"
	"flag"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calcHistory/internal/domain"
	"calcHistory/internal/pkg/testutil"
)

// chContainer — контейнер ClickHouse на весь пакет. nil — short-режим или Docker недоступен.
var chContainer *testutil.ClickHouseContainer

func TestMain(m *testing.M) {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), testutil.StartupTimeout)
	defer cancel()

	if !testing.Short() {
		c, err := testutil.NewClickHouseContainer(ctx)
		if err != nil {
			log.Printf("ClickHouse не поднят, интеграционные тесты пропускаются: %v", err)
		} else {
			chContainer = c
		}
	}

	code := m.Run()

	if chContainer != nil {
		if err := chContainer.Terminate(ctx); err != nil {
			log.Printf("ошибка остановки ClickHouse: %v", err)
		}
	}
	os.Exit(code)
}

func setupWriter(t *testing.T) *CalculationWriter {
	t.Helper()
	if chContainer == nil {
		t.Skip("пропускаем интеграционный тест: нет контейнера ClickHouse")
	}

	cfg := &Config{
		Host:     chContainer.Host,
		Port:     chContainer.Port,
		Database: chContainer.Database,
		Username: chContainer.User,
		Password: chContainer.Password,
	}
	client, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	w := NewCalculationWriter(client, cfg.Database)
	ctx := context.Background()
	require.NoError(t, w.EnsureTable(ctx))
	_, err = client.DB().ExecContext(ctx, "TRUNCATE TABLE "+w.table)
	require.NoError(t, err)
	return w
}

func TestConfig_Addr(t *testing.T) {
	var nilCfg *Config
	assert.Equal(t, "localhost:9000", nilCfg.Addr())
	assert.Equal(t, "ch:19000", (&Config{Host: "ch", Port: "19000"}).Addr())
}

func TestNewCalculationWriter_DefaultDatabase(t *testing.T) {
	w := NewCalculationWriter(nil, "")
	assert.Equal(t, "default.calculations_analytics", w.table)

	w = NewCalculationWriter(nil, "stats")
	assert.Equal(t, "stats.calculations_analytics", w.table)
}

func TestCalculationWriter_WriteAndCount(t *testing.T) {
	w := setupWriter(t)
	ctx := context.Background()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	calcs := []domain.Calculation{
		{ID: "a", X: 2, Y: 3, Result: 5, Operation: domain.OpAddition, Timestamp: ts},
		{ID: "b", X: 1, Y: 1, Result: 2, Operation: domain.OpAddition, Timestamp: ts.Add(time.Second)},
		{ID: "c", X: 10, Y: 4, Result: 2.5, Operation: domain.OpDivision, Timestamp: ts.Add(2 * time.Second)},
	}
	for _, c := range calcs {
		require.NoError(t, w.WriteCalculation(ctx, c))
	}
	// Повторная доставка того же события не должна удваивать счётчик после FINAL.
	require.NoError(t, w.WriteCalculation(ctx, calcs[2]))

	counts, err := w.CountByOperation(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), counts[domain.OpAddition])
	assert.Equal(t, uint64(1), counts[domain.OpDivision])
	assert.Zero(t, counts[domain.OpMultiplication])
}
