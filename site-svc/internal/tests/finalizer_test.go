package tests

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/mocks"
	"flavor-heaven/site-svc/internal/service"
	"flavor-heaven/site-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	lines := []domain.CartLine{
		{ID: "a", Price: 10, Quantity: 2},
		{ID: "b", Price: 5, Quantity: 1},
	}

	delivery := service.ComputeTotals(lines, domain.OrderTypeDelivery)
	pickup := service.ComputeTotals(lines, domain.OrderTypePickup)

	assert.InDelta(t, 25.00, delivery.Subtotal, 0.0001)
	assert.InDelta(t, 2.00, delivery.Tax, 0.0001)
	assert.InDelta(t, 3.99, delivery.DeliveryFee, 0.0001)
	assert.InDelta(t, 30.99, delivery.Total, 0.0001)
	assert.Zero(t, pickup.DeliveryFee)
	assert.InDelta(t, 27.00, pickup.Total, 0.0001)
}

func TestComputeTotalsRoundsTaxToCents(t *testing.T) {
	lines := []domain.CartLine{{ID: "wings", Price: 11.99, Quantity: 3}}

	totals := service.ComputeTotals(lines, domain.OrderTypePickup)

	assert.InDelta(t, 35.97, totals.Subtotal, 0.0001)
	assert.InDelta(t, 2.88, totals.Tax, 0.0001)
	assert.InDelta(t, totals.Subtotal+totals.Tax+totals.DeliveryFee, totals.Total, 0.0001)
}

func TestOrderNumbersStrictlyIncrease(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	numbers := service.NewOrderNumbers(func() time.Time { return fixed })

	first := numbers.Next()
	second := numbers.Next()

	assert.Equal(t, "FH-1700000000000", first)
	assert.Equal(t, "FH-1700000000001", second)
}

func TestOrderNumbersUniqueUnderConcurrency(t *testing.T) {
	numbers := service.NewOrderNumbers(nil)
	const workers = 64

	var (
		mu   sync.Mutex
		seen = make(map[string]bool, workers)
		wg   sync.WaitGroup
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n := numbers.Next()
			mu.Lock()
			seen[n] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, workers)
	for n := range seen {
		require.True(t, strings.HasPrefix(n, service.OrderNumberPrefix))
		_, err := strconv.ParseInt(strings.TrimPrefix(n, service.OrderNumberPrefix), 10, 64)
		require.NoError(t, err)
	}
}

func pickupDraft() domain.OrderDraft {
	return domain.OrderDraft{
		OrderType:     domain.OrderTypePickup,
		Customer:      domain.Customer{Name: "Ali", Phone: "555", Email: "Ali@Example.com", PickupTime: "19:00"},
		PaymentMethod: domain.PaymentCash,
	}
}

func TestFinalizeClearsCartAndAppendsHistory(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	cart := newCart(t, kv)
	require.NoError(t, cart.Add(ctx, menuItem("a", 10), 2))
	history := service.NewOrderHistory(kv, "session:test:orders")
	require.NoError(t, history.Append(ctx, domain.Order{OrderNumber: "FH-1"}))

	order, err := service.NewFinalizer(nil, nil, nil).Finalize(ctx, cart, history, pickupDraft())

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	orders, err := history.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, order.OrderNumber, orders[1].OrderNumber)
	assert.Len(t, order.Items, 1)
	assert.InDelta(t, order.Subtotal+order.Tax+order.DeliveryFee, order.Total, 0.0001)

	_, err = kv.Get(ctx, cartKey)
	assert.ErrorIs(t, err, service.ErrKeyNotFound)
}

func TestFinalizeEmptyCart(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	history := service.NewOrderHistory(kv, "session:test:orders")

	_, err := service.NewFinalizer(nil, nil, nil).Finalize(ctx, newCart(t, kv), history, pickupDraft())

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	orders, _ := history.List(ctx)
	assert.Empty(t, orders)
}

func TestFinalizeMirrorsToOrderService(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	cart := newCart(t, kv)
	require.NoError(t, cart.Add(ctx, menuItem("a", 10), 1))

	repo := mocks.NewOrderRepository(t)
	publisher := mocks.NewEventPublisher(t)
	repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*domain.Order")).Return(nil).Once()
	publisher.On("Publish", mock.Anything, mock.MatchedBy(func(msg domain.EventMessage) bool {
		return msg.Type == domain.EventOrderPlaced && msg.Order != nil
	})).Return(nil).Once()

	orders := service.NewOrderService(repo, publisher, nil, nil)
	finalizer := service.NewFinalizer(nil, orders, publisher)

	order, err := finalizer.Finalize(ctx, cart, service.NewOrderHistory(kv, "session:test:orders"), pickupDraft())

	require.NoError(t, err)
	assert.NotEmpty(t, order.OrderNumber)
}

func TestFinalizeSurvivesMirrorFailure(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	cart := newCart(t, kv)
	require.NoError(t, cart.Add(ctx, menuItem("a", 10), 1))

	repo := mocks.NewOrderRepository(t)
	repo.On("CreateOrder", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()
	finalizer := service.NewFinalizer(nil, service.NewOrderService(repo, nil, nil, nil), nil)

	_, err := finalizer.Finalize(ctx, cart, service.NewOrderHistory(kv, "session:test:orders"), pickupDraft())

	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

func TestFinalizePublishesWithoutOrderService(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	cart := newCart(t, kv)
	require.NoError(t, cart.Add(ctx, menuItem("a", 10), 1))

	publisher := mocks.NewEventPublisher(t)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.NewFinalizer(nil, nil, publisher).Finalize(ctx, cart, service.NewOrderHistory(kv, "session:test:orders"), pickupDraft())

	assert.NoError(t, err)
}

func TestOrderHistoryCorruptionReadsEmpty(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	require.NoError(t, kv.Set(ctx, "session:test:orders", []byte("not-json")))
	history := service.NewOrderHistory(kv, "session:test:orders")

	orders, err := history.List(ctx)

	require.NoError(t, err)
	assert.Empty(t, orders)
}
