package domain

import (
	"fmt"
	"math"
	"time"
)

// Operation — тег арифметической операции, хранится в записи как строка.
type Operation string

// Константы арифметических операций.
const (
	OpAddition       Operation = "addition"
	OpSubtraction    Operation = "subtraction"
	OpMultiplication Operation = "multiplication"
	OpDivision       Operation = "division"
)

// Valid сообщает, входит ли тег в закрытый набор операций.
func (o Operation) Valid() bool {
	switch o {
	case OpAddition, OpSubtraction, OpMultiplication, OpDivision:
		return true
	}
	return false
}

// Symbol возвращает знак операции для логов и ключей сообщений ("+", "-", "*", "/").
func (o Operation) Symbol() string {
	switch o {
	case OpAddition:
		return "+"
	case OpSubtraction:
		return "-"
	case OpMultiplication:
		return "*"
	case OpDivision:
		return "/"
	}
	return "?"
}

// Apply считает результат операции. Деление на ноль и нефинитные числа — ErrInvalidArgument.
func (o Operation) Apply(x, y float64) (float64, error) {
	if !isFinite(x) || !isFinite(y) {
		return 0, ErrNonFinite
	}

	var result float64
	switch o {
	case OpAddition:
		result = x + y
	case OpSubtraction:
		result = x - y
	case OpMultiplication:
		result = x * y
	case OpDivision:
		if y == 0 {
			return 0, ErrDivisionByZero
		}
		result = x / y
	default:
		return 0, fmt.Errorf("%w: %s", ErrUnknownOperation, o)
	}

	if !isFinite(result) {
		return 0, ErrNonFinite
	}
	return result, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Calculation — одна сохранённая операция калькулятора.
// ID и Timestamp назначает хранилище при создании, после этого запись не меняется.
type Calculation struct {
	ID        string    `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Result    float64   `json:"result"`
	Operation Operation `json:"operation"`
	Timestamp time.Time `json:"timestamp"`
}

// Export — снимок истории на момент выгрузки.
type Export struct {
	GeneratedAt  time.Time
	Calculations []Calculation
}

// exportFileLayout — формат времени в имени файла выгрузки (YYYYMMDD_HHMMSS).
const exportFileLayout = "20060102_150405"

// FileName возвращает имя файла выгрузки, например calculator_export_20260101_120000.json.
func (e Export) FileName() string {
	return "calculator_export_" + e.GeneratedAt.UTC().Format(exportFileLayout) + ".json"
}
