package domain

import "time"

const (
	EventOrderPlaced        = "order_placed"
	EventReservationCreated = "reservation_created"
	EventContactSubmitted   = "contact_submitted"
)

// EventMessage is the JSON envelope site-svc writes to the events topic.
// Only the fields notifications need are decoded.
type EventMessage struct {
	Type        string       `json:"type"`
	Order       *Order       `json:"order,omitempty"`
	Reservation *Reservation `json:"reservation,omitempty"`
	Contact     *Contact     `json:"contact,omitempty"`
	Timestamp   time.Time    `json:"timestamp"`
}

type OrderLine struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Customer struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Zip        string `json:"zip,omitempty"`
	PickupTime string `json:"pickupTime,omitempty"`
}

type Order struct {
	ID                  int         `json:"id,omitempty"`
	OrderNumber         string      `json:"orderNumber"`
	Items               []OrderLine `json:"items"`
	Customer            Customer    `json:"customer"`
	OrderType           string      `json:"orderType"`
	PaymentMethod       string      `json:"paymentMethod"`
	SpecialInstructions string      `json:"specialInstructions"`
	Subtotal            float64     `json:"subtotal"`
	Tax                 float64     `json:"tax"`
	DeliveryFee         float64     `json:"deliveryFee"`
	Total               float64     `json:"total"`
	Timestamp           time.Time   `json:"timestamp"`
}

type Reservation struct {
	ID              int       `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Date            string    `json:"date"`
	Time            string    `json:"time"`
	Guests          int       `json:"guests"`
	SpecialRequests string    `json:"specialRequests"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Contact struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Rating  int    `json:"rating,omitempty"`
}

// Email is one rendered message ready for a Mailer.
type Email struct {
	To      string
	Subject string
	HTML    string
}
