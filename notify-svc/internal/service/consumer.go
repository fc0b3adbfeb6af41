package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"flavor-heaven/notify-svc/internal/domain"
	"flavor-heaven/notify-svc/internal/storage"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const readRetryDelay = time.Second

type Consumer struct {
	Reader          MessageReader
	Mailer          Mailer
	Stats           StatsRecorder
	RestaurantEmail string
	now             func() time.Time
}

// NewConsumer wires a consumer; stats may be nil when Redis is not configured.
func NewConsumer(reader MessageReader, mailer Mailer, stats StatsRecorder, restaurantEmail string) *Consumer {
	return &Consumer{
		Reader:          reader,
		Mailer:          mailer,
		Stats:           stats,
		RestaurantEmail: restaurantEmail,
		now:             time.Now,
	}
}

// Start reads events until ctx is cancelled or the reader is closed.
func (c *Consumer) Start(ctx context.Context) error {
	log.Info().Msg("notification consumer started")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			log.Error().Err(err).Msg("failed to read message")
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(readRetryDelay):
			}
			continue
		}

		ev, err := decodeEvent(message)
		if err != nil {
			log.Error().Err(err).Int64("offset", message.Offset).Msg("failed to decode event")
			continue
		}
		c.Handle(ctx, ev)
	}
}

func decodeEvent(message kafka.Message) (domain.EventMessage, error) {
	var ev domain.EventMessage
	if err := json.Unmarshal(message.Value, &ev); err != nil {
		return ev, err
	}
	if ev.Type == "" {
		for _, h := range message.Headers {
			if h.Key == "type" {
				ev.Type = string(h.Value)
			}
		}
	}
	return ev, nil
}

// Handle records stats and sends the emails of one event. Failures are logged
// and never retried.
func (c *Consumer) Handle(ctx context.Context, ev domain.EventMessage) {
	if !complete(ev) {
		log.Warn().Str("type", ev.Type).Msg("ignoring event without payload")
		return
	}

	at := ev.Timestamp
	if at.IsZero() {
		at = c.now()
	}
	day := at.UTC().Format(storage.DayLayout)

	if c.Stats != nil {
		var err error
		switch ev.Type {
		case domain.EventOrderPlaced:
			err = c.Stats.RecordOrder(ctx, *ev.Order, day)
		case domain.EventReservationCreated:
			err = c.Stats.RecordReservation(ctx, *ev.Reservation, day)
		case domain.EventContactSubmitted:
			err = c.Stats.RecordContact(ctx, day)
		}
		if err != nil {
			log.Error().Err(err).Str("type", ev.Type).Msg("failed to record stats")
		}
	}

	emails, err := Emails(ev, c.RestaurantEmail)
	if err != nil {
		log.Error().Err(err).Str("type", ev.Type).Msg("failed to render emails")
		return
	}
	for _, email := range emails {
		if err := c.Mailer.Send(ctx, email); err != nil {
			log.Error().Err(err).Str("to", email.To).Str("type", ev.Type).Msg("email sending failed")
		}
	}
}

func complete(ev domain.EventMessage) bool {
	switch ev.Type {
	case domain.EventOrderPlaced:
		return ev.Order != nil
	case domain.EventReservationCreated:
		return ev.Reservation != nil
	case domain.EventContactSubmitted:
		return ev.Contact != nil
	default:
		return false
	}
}
