package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"calcHistory/internal/domain"
	"calcHistory/internal/ports"
)

// Consumer — обёртка над kafka.Reader, декодирует сообщения в domain.Calculation и вызывает use case.
type Consumer struct {
	r   *kafka.Reader
	uc  ports.ICalculatorUseCase
	log *slog.Logger
}

// NewConsumer создаёт консьюмера по конфигу, use case и логгеру. После использования вызови Close().
func NewConsumer(cfg *Config, uc ports.ICalculatorUseCase, log *slog.Logger) *Consumer {
	c := New(cfg).Consumer()
	c.uc = uc
	c.log = log
	return c
}

// retryDelay — пауза перед повторной обработкой сообщения после ошибки.
const retryDelay = time.Second

// Message — сообщение из Kafka (ключ, тело, топик, партиция, offset).
type Message = kafka.Message

// Run в цикле читает сообщения, передаёт их в handle и коммитит обработанные.
// Выход по отмене ctx или при ошибке чтения/коммита.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		msg, err := c.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped", "error", err)
			return err
		}

		// Коммит идёт по offset, поэтому следующее сообщение ждёт, пока текущее не обработается.
		for !c.handle(ctx, msg) {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryDelay):
			}
		}

		if err := c.CommitMessage(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.log.Error("kafka consumer stopped (commit)", "error", err)
			return err
		}
	}
}

// handle декодирует сообщение и вызывает uc.HandleCalculationEvent. Возвращает true, если сообщение нужно закоммитить:
// битое сообщение или неизвестная операция пропускаются (коммитятся), при ошибке обработки Run повторяет его.
func (c *Consumer) handle(ctx context.Context, msg Message) bool {
	var calc domain.Calculation
	if err := json.Unmarshal(msg.Value, &calc); err != nil {
		c.log.Warn("kafka unmarshal error, skip", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return true
	}
	if !calc.Operation.Valid() {
		c.log.Warn("kafka unknown operation, skip", "operation", calc.Operation, "id", calc.ID, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return true
	}

	if err := c.uc.HandleCalculationEvent(ctx, calc); err != nil {
		c.log.Warn("kafka handle error, will retry", "error", err, "topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset)
		return false
	}
	return true
}

// FetchMessage читает следующее сообщение без коммита в consumer group (коммит — через CommitMessage).
func (c *Consumer) FetchMessage(ctx context.Context) (kafka.Message, error) {
	return c.r.FetchMessage(ctx)
}

// CommitMessage помечает сообщение как обработанное (для consumer group).
func (c *Consumer) CommitMessage(ctx context.Context, msg kafka.Message) error {
	return c.r.CommitMessages(ctx, msg)
}

// Close закрывает консьюмера.
func (c *Consumer) Close() error {
	return c.r.Close()
}
