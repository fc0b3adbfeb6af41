package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type KafkaPublisher struct {
	Writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg domain.EventMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventKey(msg)),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(msg.Type)},
		},
	})
}

// eventKey keeps events about one subject on one partition.
func eventKey(msg domain.EventMessage) string {
	switch {
	case msg.Order != nil:
		return msg.Order.OrderNumber
	case msg.Reservation != nil:
		return msg.Reservation.Email
	case msg.Contact != nil:
		return msg.Contact.Email
	default:
		return msg.Type
	}
}
