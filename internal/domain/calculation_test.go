package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_Apply(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		x, y float64
		want float64
	}{
		{name: "сложение", op: OpAddition, x: 2, y: 3, want: 5},
		{name: "сложение дробных", op: OpAddition, x: 0.1, y: 0.2, want: 0.30000000000000004},
		{name: "вычитание", op: OpSubtraction, x: 2, y: 3, want: -1},
		{name: "умножение", op: OpMultiplication, x: -4, y: 2.5, want: -10},
		{name: "деление", op: OpDivision, x: 10, y: 4, want: 2.5},
		{name: "деление нуля", op: OpDivision, x: 0, y: 7, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op.Apply(tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperation_Apply_Errors(t *testing.T) {
	tests := []struct {
		name    string
		op      Operation
		x, y    float64
		wantErr error
	}{
		{name: "деление на ноль", op: OpDivision, x: 10, y: 0, wantErr: ErrDivisionByZero},
		{name: "NaN операнд", op: OpAddition, x: math.NaN(), y: 1, wantErr: ErrNonFinite},
		{name: "бесконечный операнд", op: OpSubtraction, x: 1, y: math.Inf(-1), wantErr: ErrNonFinite},
		{name: "переполнение", op: OpMultiplication, x: math.MaxFloat64, y: 10, wantErr: ErrNonFinite},
		{name: "неизвестная операция", op: Operation("modulo"), x: 1, y: 1, wantErr: ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.op.Apply(tt.x, tt.y)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			// Все ошибки входных данных — клиентские.
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestOperation_SymbolAndValid(t *testing.T) {
	assert.Equal(t, "+", OpAddition.Symbol())
	assert.Equal(t, "-", OpSubtraction.Symbol())
	assert.Equal(t, "*", OpMultiplication.Symbol())
	assert.Equal(t, "/", OpDivision.Symbol())
	assert.Equal(t, "?", Operation("pow").Symbol())

	for _, op := range []Operation{OpAddition, OpSubtraction, OpMultiplication, OpDivision} {
		assert.True(t, op.Valid(), op)
	}
	assert.False(t, Operation("").Valid())
}

func TestExport_FileName(t *testing.T) {
	exp := Export{GeneratedAt: time.Date(2026, 3, 5, 7, 8, 9, 123, time.UTC)}
	assert.Equal(t, "calculator_export_20260305_070809.json", exp.FileName())

	// Имя всегда в UTC, даже если время пришло в другой зоне.
	msk := time.FixedZone("MSK", 3*60*60)
	exp = Export{GeneratedAt: time.Date(2026, 3, 5, 10, 8, 9, 0, msk)}
	assert.Equal(t, "calculator_export_20260305_070809.json", exp.FileName())
}

func TestStorageError(t *testing.T) {
	assert.NoError(t, StorageError("insert", nil))

	cause := errors.New("disk I/O error")
	err := StorageError("insert calculation", cause)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert calculation")
}
