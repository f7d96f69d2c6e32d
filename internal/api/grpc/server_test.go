package grpc

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"calcHistory/internal/api/grpc/calculator"
	"calcHistory/internal/domain"
	"calcHistory/internal/mocks"
	"calcHistory/internal/pkg/logger"
)

// startBufconn поднимает сервер на bufconn и возвращает клиентское соединение.
func startBufconn(t *testing.T, uc *mocks.MockICalculatorUseCase) *grpc.ClientConn {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	srv := NewServer("bufnet", uc, logger.Discard())
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Stop(ctx)
	})

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func operands(t *testing.T, x, y any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(map[string]any{"x": x, "y": y})
	require.NoError(t, err)
	return s
}

func TestConfig_Addr(t *testing.T) {
	assert.Equal(t, "0.0.0.0:9090", Config{Host: "0.0.0.0", Port: "9090"}.Addr())
}

func TestCalculatorService_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	uc.EXPECT().Calculate(gomock.Any(), domain.OpAddition, 2.0, 3.0).
		Return(&domain.Calculation{ID: "id-1", X: 2, Y: 3, Result: 5, Operation: domain.OpAddition}, nil)

	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))
	resp, err := client.Add(context.Background(), operands(t, 2, 3))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"id":        "id-1",
		"result":    5.0,
		"operation": "addition",
		"x":         2.0,
		"y":         3.0,
	}, resp.AsMap())
}

func TestCalculatorService_OperationRouting(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))
	ctx := context.Background()

	calls := []struct {
		op   domain.Operation
		call func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error)
	}{
		{op: domain.OpSubtraction, call: client.Subtract},
		{op: domain.OpMultiplication, call: client.Multiply},
		{op: domain.OpDivision, call: client.Divide},
	}
	for _, c := range calls {
		uc.EXPECT().Calculate(gomock.Any(), c.op, 6.0, 2.0).
			Return(&domain.Calculation{ID: string(c.op), Operation: c.op, X: 6, Y: 2}, nil)

		resp, err := c.call(ctx, operands(t, 6, 2))
		require.NoError(t, err)
		assert.Equal(t, string(c.op), resp.GetFields()["operation"].GetStringValue())
	}
}

func TestCalculatorService_DivisionByZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	uc.EXPECT().Calculate(gomock.Any(), domain.OpDivision, 10.0, 0.0).Return(nil, domain.ErrDivisionByZero)

	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))
	_, err := client.Divide(context.Background(), operands(t, 10, 0))

	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Equal(t, "Cannot divide by zero", st.Message())
}

func TestCalculatorService_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	// Use case не вызывается.
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))

	missing, err := structpb.NewStruct(map[string]any{"x": 1})
	require.NoError(t, err)

	for _, req := range []*structpb.Struct{missing, operands(t, "1", 2), operands(t, 1, true)} {
		_, err := client.Add(context.Background(), req)
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
}

func TestCalculatorService_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	uc.EXPECT().Calculate(gomock.Any(), domain.OpAddition, 1.0, 1.0).
		Return(nil, domain.StorageError("insert", errors.New("database is locked")))
	uc.EXPECT().History(gomock.Any()).Return(nil, errors.New("pq: connection refused"))

	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))
	_, err := client.Add(context.Background(), operands(t, 1, 1))
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "Storage unavailable", status.Convert(err).Message())

	_, err = client.History(context.Background(), &structpb.Struct{})
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Equal(t, "Internal server error", status.Convert(err).Message())
	assert.NotContains(t, status.Convert(err).Message(), "pq:")
}

func TestCalculatorService_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockICalculatorUseCase(ctrl)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	uc.EXPECT().History(gomock.Any()).Return([]domain.Calculation{
		{ID: "2", X: 1, Y: 2, Result: 3, Operation: domain.OpAddition, Timestamp: ts.Add(time.Second)},
		{ID: "1", X: 4, Y: 2, Result: 2, Operation: domain.OpDivision, Timestamp: ts},
	}, nil)

	client := calculator.NewCalculatorServiceClient(startBufconn(t, uc))
	resp, err := client.History(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	got := resp.AsMap()
	assert.Equal(t, 2.0, got["total_count"])
	items := got["calculations"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "2", first["id"])
	assert.Equal(t, "2026-01-02T03:04:06Z", first["timestamp"])
}

func TestHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := startBufconn(t, mocks.NewMockICalculatorUseCase(ctrl))

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: calculator.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
