package calculator

import (
	"testing"

	"calcHistory/internal/domain"
)

func TestExpression(t *testing.T) {
	tests := []struct {
		name string
		x, y float64
		op   domain.Operation
		want string
	}{
		{name: "сложение целых", x: 10, y: 5, op: domain.OpAddition, want: "10 + 5"},
		{name: "вычитание целых", x: 100, y: 50, op: domain.OpSubtraction, want: "100 - 50"},
		{name: "умножение с дробными", x: 3.14, y: 2, op: domain.OpMultiplication, want: "3.14 * 2"},
		{name: "деление", x: 1, y: 3, op: domain.OpDivision, want: "1 / 3"},
		{name: "отрицательные числа", x: -10, y: -5, op: domain.OpAddition, want: "-10 + -5"},
		{name: "очень маленькое дробное", x: 0.000001, y: 0.000002, op: domain.OpAddition, want: "0.000001 + 0.000002"},
		{name: "неизвестная операция", x: 1, y: 2, op: domain.Operation("pow"), want: "1 ? 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expression(tt.x, tt.y, tt.op)
			if got != tt.want {
				t.Errorf("expression(%v, %v, %q) = %q, want %q", tt.x, tt.y, tt.op, got, tt.want)
			}
		})
	}
}
