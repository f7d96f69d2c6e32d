package calculator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Server реализует gRPC CalculatorService, вызывает use case калькулятора.
type Server struct {
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

var _ CalculatorServiceServer = (*Server)(nil)

// New создаёт gRPC-сервер калькулятора.
func New(uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{uc: uc, log: log}
}

func (s *Server) Add(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.calculate(ctx, domain.OpAddition, req)
}

func (s *Server) Subtract(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.calculate(ctx, domain.OpSubtraction, req)
}

func (s *Server) Multiply(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.calculate(ctx, domain.OpMultiplication, req)
}

func (s *Server) Divide(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return s.calculate(ctx, domain.OpDivision, req)
}

// calculate вызывает use case и возвращает {id, result, operation, x, y} или gRPC-ошибку.
func (s *Server) calculate(ctx context.Context, op domain.Operation, req *structpb.Struct) (*structpb.Struct, error) {
	x, err := numberField(req, "x")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	y, err := numberField(req, "y")
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	calc, err := s.uc.Calculate(ctx, op, x, y)
	if err != nil {
		return nil, s.toStatus("calculate", err)
	}
	return structpb.NewStruct(map[string]any{
		"id":        calc.ID,
		"result":    calc.Result,
		"operation": string(calc.Operation),
		"x":         calc.X,
		"y":         calc.Y,
	})
}

// History возвращает {total_count, calculations}, новые записи первыми.
func (s *Server) History(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := s.uc.History(ctx)
	if err != nil {
		return nil, s.toStatus("history", err)
	}
	items := make([]any, len(list))
	for i, c := range list {
		items[i] = map[string]any{
			"id":        c.ID,
			"x":         c.X,
			"y":         c.Y,
			"result":    c.Result,
			"operation": string(c.Operation),
			"timestamp": c.Timestamp.UTC().Format(time.RFC3339Nano),
		}
	}
	return structpb.NewStruct(map[string]any{
		"total_count":  len(list),
		"calculations": items,
	})
}

// numberField достаёт обязательное числовое поле из запроса.
func numberField(req *structpb.Struct, name string) (float64, error) {
	v, ok := req.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: field %q is required", domain.ErrValidation, name)
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: field %q must be a number", domain.ErrValidation, name)
	}
	return num.NumberValue, nil
}

func (s *Server) toStatus(action string, err error) error {
	switch {
	case errors.Is(err, domain.ErrDivisionByZero):
		return status.Error(codes.InvalidArgument, "Cannot divide by zero")
	case errors.Is(err, domain.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.log.Error(action+" failed", "error", err)
	// Текст ошибки драйвера остаётся в логе, клиенту уходит фиксированное сообщение.
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return status.Error(codes.Internal, "Storage unavailable")
	}
	return status.Error(codes.Internal, "Internal server error")
}
