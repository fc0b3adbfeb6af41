package service

import (
	"testing"

	"flavor-heaven/notify-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailsForOrder(t *testing.T) {
	ev := domain.EventMessage{
		Type: domain.EventOrderPlaced,
		Order: &domain.Order{
			OrderNumber: "FH-42",
			Items: []domain.OrderLine{
				{ID: "pizza-1", Name: "Margherita", Price: 10.5, Quantity: 3},
			},
			Customer:            domain.Customer{Name: "Ada", Email: "ada@example.com", Address: "1 Loop", City: "Springfield", Zip: "12345"},
			OrderType:           "delivery",
			PaymentMethod:       "card",
			SpecialInstructions: "<b>ring twice</b>",
			Subtotal:            31.5,
			Tax:                 2.52,
			DeliveryFee:         3.99,
			Total:               38.01,
		},
	}

	emails, err := Emails(ev, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, emails, 2)

	restaurant, customer := emails[0], emails[1]
	assert.Equal(t, "owner@example.com", restaurant.To)
	assert.Equal(t, "New Order: FH-42 - Ada", restaurant.Subject)
	assert.Contains(t, restaurant.HTML, "1 Loop, Springfield 12345")
	assert.Contains(t, restaurant.HTML, "$31.50")
	assert.Contains(t, restaurant.HTML, "&lt;b&gt;ring twice&lt;/b&gt;")
	assert.NotContains(t, restaurant.HTML, "<b>ring twice</b>")

	assert.Equal(t, "ada@example.com", customer.To)
	assert.Contains(t, customer.HTML, "Delivery Fee: $3.99")
	assert.Contains(t, customer.HTML, "Total: $38.01")
}

func TestEmailsForReservation(t *testing.T) {
	ev := domain.EventMessage{
		Type: domain.EventReservationCreated,
		Reservation: &domain.Reservation{
			ID: 3, Name: "Grace", Email: "grace@example.com", Date: "2026-10-20", Time: "19:00",
			Guests: 2, SpecialRequests: "window seat", Status: "confirmed",
		},
	}

	emails, err := Emails(ev, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "New Reservation: Grace - 2026-10-20 at 19:00", emails[0].Subject)
	assert.Contains(t, emails[0].HTML, "Reservation ID:</strong> #3")
	assert.Contains(t, emails[1].HTML, "window seat")
	assert.Contains(t, emails[1].HTML, "at least 2 hours before")
}

func TestEmailsSkipsMissingRecipients(t *testing.T) {
	ev := domain.EventMessage{
		Type:    domain.EventContactSubmitted,
		Contact: &domain.Contact{Name: "Linus", Message: "hi"},
	}

	emails, err := Emails(ev, "")
	require.NoError(t, err)
	assert.Empty(t, emails)

	emails, err = Emails(domain.EventMessage{Type: "unknown"}, "owner@example.com")
	require.NoError(t, err)
	assert.Nil(t, emails)
}

func TestEmailsStripLineBreaksFromSubjects(t *testing.T) {
	ev := domain.EventMessage{
		Type: domain.EventReservationCreated,
		Reservation: &domain.Reservation{
			Name: "Eve\r\nBcc: victim@example.com", Email: "eve@example.com", Date: "2026-10-20", Time: "19:00", Guests: 2,
		},
	}

	emails, err := Emails(ev, "owner@example.com")
	require.NoError(t, err)
	require.Len(t, emails, 2)
	assert.Equal(t, "New Reservation: Eve Bcc: victim@example.com - 2026-10-20 at 19:00", emails[0].Subject)
	assert.NotContains(t, emails[0].Subject, "\n")
}
