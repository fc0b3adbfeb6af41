package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync/atomic"
	"time"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/rs/zerolog/log"
)

const (
	OrderNumberPrefix = "FH-"
	TaxRate           = 0.08
	DeliveryFeeCents  = 399
)

// Totals holds the money figures of an order, in dollars rounded to cents.
type Totals struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"deliveryFee"`
	Total       float64 `json:"total"`
}

// ComputeTotals works in cents so that Total is exactly Subtotal+Tax+DeliveryFee.
func ComputeTotals(lines []domain.CartLine, orderType domain.OrderType) Totals {
	var subtotal int64
	for _, line := range lines {
		subtotal += toCents(line.Price) * int64(line.Quantity)
	}
	tax := int64(math.Round(float64(subtotal) * TaxRate))

	var fee int64
	if orderType == domain.OrderTypeDelivery {
		fee = DeliveryFeeCents
	}

	return Totals{
		Subtotal:    fromCents(subtotal),
		Tax:         fromCents(tax),
		DeliveryFee: fromCents(fee),
		Total:       fromCents(subtotal + tax + fee),
	}
}

func toCents(v float64) int64   { return int64(math.Round(v * 100)) }
func fromCents(c int64) float64 { return float64(c) / 100 }

// OrderNumbers issues FH-<unix millis> tokens that never repeat within a process,
// even when two orders land in the same millisecond.
type OrderNumbers struct {
	last atomic.Int64
	now  func() time.Time
}

func NewOrderNumbers(now func() time.Time) *OrderNumbers {
	if now == nil {
		now = time.Now
	}
	return &OrderNumbers{now: now}
}

func (g *OrderNumbers) Next() string {
	for {
		last := g.last.Load()
		candidate := g.now().UnixMilli()
		if candidate <= last {
			candidate = last + 1
		}
		if g.last.CompareAndSwap(last, candidate) {
			return OrderNumberPrefix + strconv.FormatInt(candidate, 10)
		}
	}
}

// OrderHistory is the session's append-only list of finalized orders.
type OrderHistory struct {
	kv  KV
	key string
}

func NewOrderHistory(kv KV, key string) *OrderHistory {
	return &OrderHistory{kv: kv, key: key}
}

// List returns the stored orders; a corrupted slot reads as empty.
func (h *OrderHistory) List(ctx context.Context) ([]domain.Order, error) {
	raw, err := h.kv.Get(ctx, h.key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []domain.Order{}, nil
		}
		return nil, fmt.Errorf("load order history: %w", err)
	}

	var orders []domain.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		log.Warn().Err(err).Msg("discarding malformed order history")
		return []domain.Order{}, nil
	}
	return orders, nil
}

func (h *OrderHistory) Append(ctx context.Context, order domain.Order) error {
	orders, err := h.List(ctx)
	if err != nil {
		return err
	}
	orders = append(orders, order)

	payload, err := json.Marshal(orders)
	if err != nil {
		return fmt.Errorf("encode order history: %w", err)
	}
	if err := h.kv.Set(ctx, h.key, payload); err != nil {
		return fmt.Errorf("save order history: %w", err)
	}
	return nil
}

type Finalizer struct {
	numbers   *OrderNumbers
	orders    OrderServiceInterface
	publisher EventPublisher
	now       func() time.Time
}

// NewFinalizer wires the optional order mirror and event publisher; both may be nil.
func NewFinalizer(numbers *OrderNumbers, orders OrderServiceInterface, publisher EventPublisher) *Finalizer {
	if numbers == nil {
		numbers = NewOrderNumbers(nil)
	}
	return &Finalizer{numbers: numbers, orders: orders, publisher: publisher, now: time.Now}
}

// Finalize turns the cart and draft into an Order, appends it to history and
// empties the cart. Once the order is in history it is returned even if the
// cart cannot be cleared. Mirroring and publishing are best effort.
func (f *Finalizer) Finalize(ctx context.Context, cart *CartStore, history *OrderHistory, draft domain.OrderDraft) (domain.Order, error) {
	lines := cart.Snapshot()
	if len(lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	totals := ComputeTotals(lines, draft.OrderType)
	order := domain.Order{
		OrderNumber:         f.numbers.Next(),
		Items:               lines,
		Customer:            draft.Customer,
		OrderType:           draft.OrderType,
		PaymentMethod:       draft.PaymentMethod,
		SpecialInstructions: draft.SpecialInstructions,
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		DeliveryFee:         totals.DeliveryFee,
		Total:               totals.Total,
		Timestamp:           f.now().UTC(),
	}

	if err := history.Append(ctx, order); err != nil {
		return domain.Order{}, err
	}
	if err := cart.Clear(ctx); err != nil {
		log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to clear cart after order")
	}

	f.mirror(ctx, order)
	return order, nil
}

func (f *Finalizer) mirror(ctx context.Context, order domain.Order) {
	if f.orders != nil {
		stored := order
		if err := f.orders.Create(ctx, &stored); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to mirror order")
		}
		return
	}
	if f.publisher != nil {
		if err := f.publisher.Publish(ctx, domain.EventMessage{Type: domain.EventOrderPlaced, Order: &order, Timestamp: f.now()}); err != nil {
			log.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to publish order")
		}
	}
}
