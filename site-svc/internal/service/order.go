package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

var (
	ErrOrderNotCancellable = errors.New("order already delivered or cancelled")
	ErrInvalidStatus       = errors.New("invalid status")
)

const estimatedDeliveryDelay = 30 * time.Minute

var orderStatuses = map[string]bool{
	domain.OrderStatusReceived:   true,
	domain.OrderStatusPreparing:  true,
	domain.OrderStatusReady:      true,
	domain.OrderStatusInDelivery: true,
	domain.OrderStatusDelivered:  true,
	domain.OrderStatusCancelled:  true,
}

var paymentStatuses = map[string]bool{
	domain.PaymentStatusPending: true,
	domain.PaymentStatusPaid:    true,
	domain.PaymentStatusFailed:  true,
}

type OrderService struct {
	repository OrderRepository
	publisher  EventPublisher
	qr         QRGenerator
	numbers    *OrderNumbers
	now        func() time.Time
}

func NewOrderService(repository OrderRepository, publisher EventPublisher, qr QRGenerator, numbers *OrderNumbers) *OrderService {
	if numbers == nil {
		numbers = NewOrderNumbers(nil)
	}
	return &OrderService{
		repository: repository,
		publisher:  publisher,
		qr:         qr,
		numbers:    numbers,
		now:        time.Now,
	}
}

// Create stores an order submitted by a client or mirrored from checkout.
// Missing totals and order number are filled in; status fields are server owned.
func (s *OrderService) Create(ctx context.Context, order *domain.Order) error {
	if err := validateOrder(order); err != nil {
		return err
	}

	// Client-supplied money fields are never trusted.
	totals := ComputeTotals(order.Items, order.OrderType)
	order.Subtotal = totals.Subtotal
	order.Tax = totals.Tax
	order.DeliveryFee = totals.DeliveryFee
	order.Total = totals.Total
	if order.OrderNumber == "" {
		order.OrderNumber = s.numbers.Next()
	}

	now := s.now().UTC()
	if order.Timestamp.IsZero() {
		order.Timestamp = now
	}
	order.Customer.Email = strings.ToLower(strings.TrimSpace(order.Customer.Email))
	order.OrderStatus = domain.OrderStatusReceived
	order.PaymentStatus = domain.PaymentStatusPending
	if order.PaymentMethod != domain.PaymentCash {
		order.PaymentStatus = domain.PaymentStatusPaid
	}
	order.EstimatedDeliveryTime = nil
	if order.OrderType == domain.OrderTypeDelivery {
		eta := now.Add(estimatedDeliveryDelay)
		order.EstimatedDeliveryTime = &eta
	}

	if err := s.repository.CreateOrder(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	if s.publisher != nil {
		published := *order
		if err := s.publisher.Publish(ctx, domain.EventMessage{
			Type:      domain.EventOrderPlaced,
			Order:     &published,
			Timestamp: now,
		}); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order event")
		}
	}
	return nil
}

func validateOrder(order *domain.Order) error {
	if len(order.Items) == 0 {
		return ErrEmptyCart
	}
	for _, item := range order.Items {
		if item.Quantity < 1 {
			return newValidationError("items", "Item quantity must be at least 1.")
		}
		if item.Price < 0 {
			return newValidationError("items", "Item price cannot be negative.")
		}
	}
	if strings.TrimSpace(order.Customer.Name) == "" ||
		strings.TrimSpace(order.Customer.Email) == "" ||
		strings.TrimSpace(order.Customer.Phone) == "" {
		return newValidationError("customer", "Customer name, email and phone are required.")
	}
	switch order.OrderType {
	case domain.OrderTypeDelivery, domain.OrderTypePickup:
	default:
		return newValidationError("orderType", "Order type must be delivery or pickup.")
	}
	switch order.PaymentMethod {
	case domain.PaymentCreditCard, domain.PaymentPayPal, domain.PaymentCash:
	default:
		return newValidationError("paymentMethod", "Please select a payment method.")
	}
	return nil
}

func (s *OrderService) Get(ctx context.Context, id int) (*domain.Order, error) {
	return s.repository.GetOrder(ctx, id)
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repository.ListOrders(ctx)
}

func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return s.repository.ListOrdersByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
}

// UpdateStatus leaves the order untouched when status is empty.
func (s *OrderService) UpdateStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	if status != "" {
		if !orderStatuses[status] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		if err := s.repository.UpdateOrderStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}
	return s.repository.GetOrder(ctx, id)
}

func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id int, status string) (*domain.Order, error) {
	if status != "" {
		if !paymentStatuses[status] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
		}
		if err := s.repository.UpdatePaymentStatus(ctx, id, status); err != nil {
			return nil, err
		}
	}
	return s.repository.GetOrder(ctx, id)
}

func (s *OrderService) Cancel(ctx context.Context, id int) (*domain.Order, error) {
	order, err := s.repository.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == domain.OrderStatusDelivered || order.OrderStatus == domain.OrderStatusCancelled {
		return nil, ErrOrderNotCancellable
	}
	if err := s.repository.UpdateOrderStatus(ctx, id, domain.OrderStatusCancelled); err != nil {
		return nil, err
	}
	order.OrderStatus = domain.OrderStatusCancelled
	return order, nil
}

// QRCode renders a PNG pointing at the confirmation page of a stored order.
func (s *OrderService) QRCode(ctx context.Context, orderNumber string) ([]byte, error) {
	if _, err := s.repository.GetOrderByNumber(ctx, orderNumber); err != nil {
		return nil, err
	}
	png, err := s.qr.Generate(orderNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to generate qr code: %w", err)
	}
	return png, nil
}
