package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"calcHistory/internal/api/grpc/calculator"
	"calcHistory/internal/api/grpc/interceptors"
	"calcHistory/internal/ports"
)

// Config — настройки gRPC-сервера. Переменные: CALCULATOR_GRPC_ENABLED, HOST, PORT.
type Config struct {
	Enabled bool   `default:"true"`
	Host    string `default:"0.0.0.0"`
	Port    string `default:"9090"`
}

// Addr возвращает адрес "host:port".
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

// Server — gRPC-сервер: регистрирует сервисы и слушает порт.
type Server struct {
	grpc   *grpc.Server
	health *health.Server
	addr   string
	log    *slog.Logger
}

// NewServer создаёт gRPC-сервер и регистрирует CalculatorService и health. Логирующий интерцептор снаружи, чтобы видеть и ответы после паники.
func NewServer(addr string, uc ports.ICalculatorUseCase, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.LoggingUnaryInterceptor(log),
		interceptors.RecoveryUnaryInterceptor(log),
	))
	calculator.RegisterCalculatorServiceServer(s, calculator.New(uc, log))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(s, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(calculator.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return &Server{grpc: s, health: hs, addr: addr, log: log}
}

// Start слушает addr и принимает соединения (блокируется). Остановка через Stop().
func (s *Server) Start() error {
	lis, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	return s.Serve(lis)
}

// Serve принимает соединения на готовом листенере (в тестах — bufconn).
func (s *Server) Serve(lis net.Listener) error {
	s.log.Info("grpc server listening", "addr", lis.Addr().String())
	if err := s.grpc.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

// Stop останавливает сервер (graceful). Если ctx истёк раньше, соединения рвутся.
func (s *Server) Stop(ctx context.Context) error {
	s.health.Shutdown()
	done := make(chan struct{})
	go func() {
		s.grpc.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		s.grpc.Stop()
		return ctx.Err()
	}
}
