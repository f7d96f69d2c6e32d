package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	apigrpc "calcHistory/internal/api/grpc"
	apihttp "calcHistory/internal/api/http"
	"calcHistory/internal/api/http/controllers/calculator"
	"calcHistory/internal/api/http/controllers/system"
	"calcHistory/internal/infrastructure/click"
	"calcHistory/internal/infrastructure/kafka"
	"calcHistory/internal/pkg/logger"
	"calcHistory/internal/ports"
	calcUsecase "calcHistory/internal/usecase/calculator"
)

// shutdownTimeout — сколько ждём завершения активных запросов при остановке.
const shutdownTimeout = 10 * time.Second

// App — приложение: конфиг и логгер. Подключения открываются в командах.
type App struct {
	cfg Config
	log *slog.Logger
}

// New создаёт приложение с конфигом и логгером из него.
func New(cfg Config) *App {
	return &App{cfg: cfg, log: logger.NewFromConfig(cfg.Log)}
}

// Logger возвращает логгер приложения.
func (a *App) Logger() *slog.Logger {
	return a.log
}

// Run подключается к хранилищу, инициализирует зависимости и запускает HTTP- и gRPC-серверы до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	st, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	defer st.Close()

	var broker ports.IProducer
	if a.cfg.Kafka.Enabled() {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		defer producer.Close()
		broker = producer
		a.log.Info("publishing calculations to kafka", "topic", a.cfg.Kafka.Topic)
	}

	uc := calcUsecase.New(st.repo, broker, nil, a.log)
	srv := a.httpServer(st.repo, uc)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Start(gctx)
	})

	if a.cfg.Grpc.Enabled {
		grpcSrv := apigrpc.NewServer(a.cfg.Grpc.Addr(), uc, a.log)
		g.Go(grpcSrv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return grpcSrv.Stop(shutdownCtx)
		})
	}

	a.log.Info("application started", "http", a.cfg.Server.Addr(), "grpc_enabled", a.cfg.Grpc.Enabled, "store", a.cfg.Store.Driver)
	if err := g.Wait(); err != nil {
		return err
	}
	a.log.Info("application stopped")
	return nil
}

// httpServer собирает HTTP-сервер с системным контроллером и контроллером калькулятора.
func (a *App) httpServer(repo ports.ICalculationRepository, uc ports.ICalculatorUseCase) *apihttp.Server {
	srv := apihttp.NewServer(a.cfg.Server, a.log)
	srv.AddController(
		system.New(repo, a.log),
		calculator.New(uc, a.log))
	return srv
}

// Migrate готовит схему выбранного хранилища и выходит.
func (a *App) Migrate(ctx context.Context) error {
	st, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return err
	}
	a.log.Info("store schema is up to date", "driver", a.cfg.Store.Driver)
	return st.Close()
}

// Export пишет файл выгрузки истории в каталог dir и возвращает путь к нему.
func (a *App) Export(ctx context.Context, dir string) (string, error) {
	st, err := openStore(ctx, a.cfg, a.log)
	if err != nil {
		return "", err
	}
	defer st.Close()

	exp, err := calcUsecase.New(st.repo, nil, nil, a.log).Export(ctx)
	if err != nil {
		return "", err
	}
	body, err := calculator.RenderExport(exp)
	if err != nil {
		return "", fmt.Errorf("render export: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("export dir: %w", err)
	}
	path := filepath.Join(dir, exp.FileName())
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	a.log.Info("history exported", "path", path, "total_count", len(exp.Calculations))
	return path, nil
}

// RunAnalytics читает события из Kafka и пишет их в ClickHouse до отмены ctx.
func (a *App) RunAnalytics(ctx context.Context) error {
	if !a.cfg.Kafka.Enabled() {
		return errors.New("analytics: CALCULATOR_KAFKA_BROKERS is empty")
	}

	ch, err := click.New(&a.cfg.ClickHouse)
	if err != nil {
		return fmt.Errorf("clickhouse: %w", err)
	}
	defer ch.Close()

	writer := click.NewCalculationWriter(ch, a.cfg.ClickHouse.Database)
	if err := writer.EnsureTable(ctx); err != nil {
		return fmt.Errorf("clickhouse table: %w", err)
	}

	uc := calcUsecase.New(nil, nil, writer, a.log)
	consumer := kafka.NewConsumer(&a.cfg.Kafka, uc, a.log)
	defer consumer.Close()

	a.log.Info("analytics consumer started", "topic", a.cfg.Kafka.Topic, "group", a.cfg.Kafka.GroupID)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
