package tests

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"flavor-heaven/notify-svc/internal/domain"
	"flavor-heaven/notify-svc/internal/mocks"
	"flavor-heaven/notify-svc/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var eventTime = time.Date(2026, 10, 18, 23, 30, 0, 0, time.FixedZone("CDT", -5*60*60))

func orderEvent() domain.EventMessage {
	return domain.EventMessage{
		Type: domain.EventOrderPlaced,
		Order: &domain.Order{
			OrderNumber: "FH-1760000000000",
			Items: []domain.OrderLine{
				{ID: "burger-1", Name: "Zinger Burger", Price: 12.99, Quantity: 2},
			},
			Customer:      domain.Customer{Name: "Ada", Phone: "555-0100", Email: "ada@example.com", PickupTime: "18:30"},
			OrderType:     "pickup",
			PaymentMethod: "cash",
			Subtotal:      25.98,
			Tax:           2.08,
			Total:         28.06,
		},
		Timestamp: eventTime,
	}
}

func reservationEvent() domain.EventMessage {
	return domain.EventMessage{
		Type: domain.EventReservationCreated,
		Reservation: &domain.Reservation{
			ID: 7, Name: "Grace", Email: "grace@example.com", Phone: "555-0101",
			Date: "2026-10-20", Time: "19:00", Guests: 4, Status: "confirmed",
		},
		Timestamp: eventTime,
	}
}

func bySubject(subject string) interface{} {
	return mock.MatchedBy(func(e domain.Email) bool { return e.Subject == subject })
}

func TestConsumer_Handle(t *testing.T) {
	tests := []struct {
		name       string
		event      domain.EventMessage
		restaurant string
		withStats  bool
		setup      func(*mocks.Mailer, *mocks.StatsRecorder)
	}{
		{
			name:       "order notifies restaurant and customer",
			event:      orderEvent(),
			restaurant: "owner@example.com",
			withStats:  true,
			setup: func(m *mocks.Mailer, s *mocks.StatsRecorder) {
				s.On("RecordOrder", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
					return o.OrderNumber == "FH-1760000000000"
				}), "2026-10-19").Return(nil).Once()
				m.On("Send", mock.Anything, bySubject("New Order: FH-1760000000000 - Ada")).Return(nil).Once()
				m.On("Send", mock.Anything, bySubject("Order Confirmed - Flavor Heaven")).Return(nil).Once()
			},
		},
		{
			name:       "stats failure still sends mail",
			event:      reservationEvent(),
			restaurant: "owner@example.com",
			withStats:  true,
			setup: func(m *mocks.Mailer, s *mocks.StatsRecorder) {
				s.On("RecordReservation", mock.Anything, mock.Anything, "2026-10-19").Return(errors.New("redis down")).Once()
				m.On("Send", mock.Anything, bySubject("New Reservation: Grace - 2026-10-20 at 19:00")).Return(nil).Once()
				m.On("Send", mock.Anything, bySubject("Reservation Confirmed - Flavor Heaven")).Return(nil).Once()
			},
		},
		{
			name:  "no restaurant inbox only confirms to customer",
			event: reservationEvent(),
			setup: func(m *mocks.Mailer, s *mocks.StatsRecorder) {
				m.On("Send", mock.Anything, mock.MatchedBy(func(e domain.Email) bool {
					return e.To == "grace@example.com"
				})).Return(nil).Once()
			},
		},
		{
			name: "failed send does not stop the next one",
			event: domain.EventMessage{
				Type:      domain.EventContactSubmitted,
				Contact:   &domain.Contact{Name: "Linus", Email: "linus@example.com", Message: "Great food"},
				Timestamp: eventTime,
			},
			restaurant: "owner@example.com",
			withStats:  true,
			setup: func(m *mocks.Mailer, s *mocks.StatsRecorder) {
				s.On("RecordContact", mock.Anything, "2026-10-19").Return(nil).Once()
				m.On("Send", mock.Anything, bySubject("New Contact Form Submission - Flavor Heaven")).Return(errors.New("smtp timeout")).Once()
				m.On("Send", mock.Anything, bySubject("Contact Confirmation - Flavor Heaven")).Return(nil).Once()
			},
		},
		{
			name:      "event without payload is ignored",
			event:     domain.EventMessage{Type: domain.EventOrderPlaced},
			withStats: true,
			setup:     func(*mocks.Mailer, *mocks.StatsRecorder) {},
		},
		{
			name:      "unknown type is ignored",
			event:     domain.EventMessage{Type: "review_posted", Order: orderEvent().Order},
			withStats: true,
			setup:     func(*mocks.Mailer, *mocks.StatsRecorder) {},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mailer := mocks.NewMailer(t)
			recorder := mocks.NewStatsRecorder(t)
			testCase.setup(mailer, recorder)

			var stats service.StatsRecorder
			if testCase.withStats {
				stats = recorder
			}
			consumer := service.NewConsumer(mocks.NewMessageReader(t), mailer, stats, testCase.restaurant)

			consumer.Handle(context.Background(), testCase.event)
		})
	}
}

func TestConsumer_StartDecodesUntilEOF(t *testing.T) {
	reader := mocks.NewMessageReader(t)
	mailer := mocks.NewMailer(t)

	ev := reservationEvent()
	ev.Type = ""
	payload, err := json.Marshal(ev)
	require.NoError(t, err)

	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{Value: []byte("{not json")}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{
		Value:   payload,
		Headers: []kafka.Header{{Key: "type", Value: []byte(domain.EventReservationCreated)}},
	}, nil).Once()
	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, io.EOF).Once()

	mailer.On("Send", mock.Anything, bySubject("Reservation Confirmed - Flavor Heaven")).Return(nil).Once()

	consumer := service.NewConsumer(reader, mailer, nil, "")
	assert.NoError(t, consumer.Start(context.Background()))
}

func TestConsumer_StartStopsOnCancel(t *testing.T) {
	reader := mocks.NewMessageReader(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reader.On("ReadMessage", mock.Anything).Return(kafka.Message{}, context.Canceled).Once()

	consumer := service.NewConsumer(reader, mocks.NewMailer(t), nil, "")

	done := make(chan error, 1)
	go func() { done <- consumer.Start(ctx) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("consumer did not stop after cancel")
	}
}
