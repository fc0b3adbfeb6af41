package service

import (
	"context"

	"flavor-heaven/notify-svc/internal/domain"
	"flavor-heaven/notify-svc/internal/storage"

	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader the consumer uses.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Mailer interface {
	Send(ctx context.Context, email domain.Email) error
}

// StatsRecorder keeps the per-day counters of the events seen.
type StatsRecorder interface {
	RecordOrder(ctx context.Context, order domain.Order, day string) error
	RecordReservation(ctx context.Context, reservation domain.Reservation, day string) error
	RecordContact(ctx context.Context, day string) error
}

// StatsReader serves the counters back to the stats API.
type StatsReader interface {
	Daily(ctx context.Context, day string) (storage.DailyStats, error)
	TopItems(ctx context.Context, day string, limit int) ([]storage.ItemCount, error)
}

type ConsumerInterface interface {
	Start(ctx context.Context) error
	Handle(ctx context.Context, msg domain.EventMessage)
}

var (
	_ MessageReader     = (*kafka.Reader)(nil)
	_ StatsRecorder     = (*storage.StatsStore)(nil)
	_ StatsReader       = (*storage.StatsStore)(nil)
	_ Mailer            = (*SMTPMailer)(nil)
	_ Mailer            = LogMailer{}
	_ ConsumerInterface = (*Consumer)(nil)
)
