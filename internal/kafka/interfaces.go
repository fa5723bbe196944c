package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// WriterInterface интерфейс для Kafka Writer
type WriterInterface interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

//go:generate mockgen -source=interfaces.go -destination=mocks.go -package=kafka
type EventProducer interface {
	SendEvent(ctx context.Context, event Event) error
	Close() error
}
