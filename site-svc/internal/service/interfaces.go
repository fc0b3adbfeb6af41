package service

import (
	"context"
	"errors"

	"flavor-heaven/site-svc/internal/domain"
)

var (
	ErrKeyNotFound = errors.New("key not found")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
)

// KV is the per-session persistence slot. Get returns ErrKeyNotFound for absent keys.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// MenuRepository lists available items; GetMenuItem also returns unavailable ones.
type MenuRepository interface {
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error)
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id string) error
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *domain.Order) error
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status string) error
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
}

// ReservationRepository checks seating and writes in one atomic step: Create and
// Update return ErrNoAvailability when the non-cancelled guests of the slot,
// other than the reservation itself, plus its own guests exceed capacity.
// Cancelled reservations are written without a check.
type ReservationRepository interface {
	CreateReservation(ctx context.Context, reservation *domain.Reservation, capacity int) error
	GetReservation(ctx context.Context, id int) (*domain.Reservation, error)
	UpdateReservation(ctx context.Context, reservation *domain.Reservation, capacity int) error
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	// GuestsBooked sums guests of non-cancelled reservations in one slot.
	GuestsBooked(ctx context.Context, date, slot string) (int, error)
}

type ContactRepository interface {
	CreateContact(ctx context.Context, contact *domain.Contact) error
	GetContact(ctx context.Context, id string) (*domain.Contact, error)
	ListContacts(ctx context.Context, status string) ([]domain.Contact, error)
	UpdateContactStatus(ctx context.Context, id, status string) (*domain.Contact, error)
	DeleteContact(ctx context.Context, id string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, msg domain.EventMessage) error
}

type CatalogInterface interface {
	Items(ctx context.Context) []domain.MenuItem
	Find(ctx context.Context, id string) (domain.MenuItem, error)
	ByCategory(ctx context.Context, category string) []domain.MenuItem
	Featured(ctx context.Context) []domain.MenuItem
	Filter(ctx context.Context, filters domain.FilterState) []domain.MenuItem
	Create(ctx context.Context, item *domain.MenuItem) error
	Update(ctx context.Context, id string, patch MenuItemPatch) (*domain.MenuItem, error)
	Delete(ctx context.Context, id string) error
}

type OrderServiceInterface interface {
	Create(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id int) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error)
	Cancel(ctx context.Context, id int) (*domain.Order, error)
	QRCode(ctx context.Context, orderNumber string) ([]byte, error)
}

type ReservationServiceInterface interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
	Get(ctx context.Context, id int) (*domain.Reservation, error)
	Update(ctx context.Context, id int, patch ReservationPatch) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	Available(ctx context.Context, date, slot string, guests int) (bool, error)
}

type ContactServiceInterface interface {
	Submit(ctx context.Context, contact *domain.Contact) error
	Get(ctx context.Context, id string) (*domain.Contact, error)
	List(ctx context.Context, status string) ([]domain.Contact, error)
	UpdateStatus(ctx context.Context, id, status string) (*domain.Contact, error)
	Delete(ctx context.Context, id string) error
}

var (
	_ CatalogInterface            = (*Catalog)(nil)
	_ OrderServiceInterface       = (*OrderService)(nil)
	_ ReservationServiceInterface = (*ReservationService)(nil)
	_ ContactServiceInterface     = (*ContactService)(nil)
)
