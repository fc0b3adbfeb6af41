package tests

import (
	"context"
	"errors"
	"testing"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"
	"flavor-heaven/site-svc/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutFixture struct {
	ctx     context.Context
	machine *service.Machine
	cart    *service.CartStore
	history *service.OrderHistory
}

func newCheckoutFixture(t *testing.T, items ...domain.MenuItem) checkoutFixture {
	t.Helper()
	ctx := context.Background()
	kv := storage.NewMemoryKV()
	cart := newCart(t, kv)
	for _, item := range items {
		require.NoError(t, cart.Add(ctx, item, 1))
	}
	return checkoutFixture{
		ctx:     ctx,
		machine: service.NewMachine(service.NewFinalizer(nil, nil, nil)),
		cart:    cart,
		history: service.NewOrderHistory(kv, "session:test:orders"),
	}
}

func (f checkoutFixture) dispatch(state service.CheckoutState, ev service.Event) (service.CheckoutState, error) {
	return f.machine.Dispatch(f.ctx, state, ev, f.cart, f.history)
}

func deliveryForm() *service.DeliveryForm {
	return &service.DeliveryForm{
		OrderType: domain.OrderTypeDelivery,
		Name:      "Ayesha Khan",
		Phone:     "555-0101",
		Email:     "ayesha@example.com",
		Address:   "12 Mall Road",
		City:      "Lahore",
		Zip:       "54000",
	}
}

func cardPayment() *service.PaymentForm {
	return &service.PaymentForm{
		Method:     domain.PaymentCreditCard,
		CardNumber: "4111111111111111",
		CardName:   "Ayesha Khan",
		Expiry:     "12/29",
		CVV:        "123",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	f := newCheckoutFixture(t, menuItem("a", 10), menuItem("b", 5))
	state := service.NewCheckoutState()

	state, err := f.dispatch(state, service.Event{Action: service.ActionContinueToDelivery})
	require.NoError(t, err)
	assert.Equal(t, service.StepDelivery, state.Step)

	state, err = f.dispatch(state, service.Event{Action: service.ActionContinueToPayment, Delivery: deliveryForm()})
	require.NoError(t, err)
	assert.Equal(t, service.StepPayment, state.Step)
	assert.Equal(t, "Lahore", state.Draft.Customer.City)

	state, err = f.dispatch(state, service.Event{Action: service.ActionPlaceOrder, Payment: cardPayment()})
	require.NoError(t, err)
	assert.Equal(t, service.StepConfirmation, state.Step)
	require.NotNil(t, state.Order)
	assert.Equal(t, domain.PaymentCreditCard, state.Order.PaymentMethod)
	assert.InDelta(t, 15.00, state.Order.Subtotal, 0.001)
	assert.InDelta(t, 3.99, state.Order.DeliveryFee, 0.001)
	assert.True(t, f.cart.IsEmpty())

	history, err := f.history.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	state, err = f.dispatch(state, service.Event{Action: service.ActionStartOver})
	require.NoError(t, err)
	assert.Equal(t, service.NewCheckoutState(), state)
}

func TestCheckoutBlocksEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)
	state := service.NewCheckoutState()

	next, err := f.dispatch(state, service.Event{Action: service.ActionContinueToDelivery})

	assert.ErrorIs(t, err, service.ErrEmptyCart)
	assert.True(t, service.IsValidation(err))
	assert.Equal(t, state, next)
}

func TestCheckoutDeliveryMissingEmailKeepsStep(t *testing.T) {
	f := newCheckoutFixture(t, menuItem("a", 10))
	state := service.CheckoutState{Step: service.StepDelivery, Draft: domain.OrderDraft{OrderType: domain.OrderTypeDelivery}}
	form := deliveryForm()
	form.Email = "   "

	next, err := f.dispatch(state, service.Event{Action: service.ActionContinueToPayment, Delivery: form})

	require.Error(t, err)
	var verr *service.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	assert.Equal(t, service.StepDelivery, next.Step)
	assert.Equal(t, state, next)
}

func TestCheckoutPickupFields(t *testing.T) {
	tests := []struct {
		name    string
		form    service.DeliveryForm
		wantErr bool
	}{
		{
			name: "pickup without address passes",
			form: service.DeliveryForm{OrderType: domain.OrderTypePickup, Name: "Ali", Phone: "1", Email: "a@b.c", PickupTime: "18:30"},
		},
		{
			name:    "pickup without time blocked",
			form:    service.DeliveryForm{OrderType: domain.OrderTypePickup, Name: "Ali", Phone: "1", Email: "a@b.c"},
			wantErr: true,
		},
		{
			name:    "delivery without zip blocked",
			form:    service.DeliveryForm{OrderType: domain.OrderTypeDelivery, Name: "Ali", Phone: "1", Email: "a@b.c", Address: "x", City: "y"},
			wantErr: true,
		},
		{
			name:    "unknown order type blocked",
			form:    service.DeliveryForm{OrderType: "drone", Name: "Ali", Phone: "1", Email: "a@b.c"},
			wantErr: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newCheckoutFixture(t, menuItem("a", 10))
			state := service.CheckoutState{Step: service.StepDelivery}
			form := testCase.form

			next, err := f.dispatch(state, service.Event{Action: service.ActionContinueToPayment, Delivery: &form})

			if testCase.wantErr {
				assert.True(t, service.IsValidation(err))
				assert.Equal(t, service.StepDelivery, next.Step)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, service.StepPayment, next.Step)
			assert.Equal(t, domain.OrderTypePickup, next.Draft.OrderType)
		})
	}
}

func TestCheckoutPaymentValidation(t *testing.T) {
	tests := []struct {
		name    string
		payment *service.PaymentForm
		wantErr bool
	}{
		{name: "no method", payment: &service.PaymentForm{}, wantErr: true},
		{name: "nil payment", payment: nil, wantErr: true},
		{name: "card missing cvv", payment: &service.PaymentForm{Method: domain.PaymentCreditCard, CardNumber: "4111", CardName: "A", Expiry: "1/30"}, wantErr: true},
		{name: "unknown method", payment: &service.PaymentForm{Method: "bitcoin"}, wantErr: true},
		{name: "paypal needs no card", payment: &service.PaymentForm{Method: domain.PaymentPayPal}},
		{name: "cash", payment: &service.PaymentForm{Method: domain.PaymentCash}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newCheckoutFixture(t, menuItem("a", 10))
			state := service.CheckoutState{Step: service.StepPayment, Draft: domain.OrderDraft{
				OrderType: domain.OrderTypePickup,
				Customer:  domain.Customer{Name: "Ali", Phone: "1", Email: "a@b.c", PickupTime: "18:00"},
			}}

			next, err := f.dispatch(state, service.Event{Action: service.ActionPlaceOrder, Payment: testCase.payment})

			if testCase.wantErr {
				assert.True(t, service.IsValidation(err))
				assert.Equal(t, state, next)
				assert.False(t, f.cart.IsEmpty())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, service.StepConfirmation, next.Step)
			assert.Equal(t, testCase.payment.Method, next.Order.PaymentMethod)
		})
	}
}

func TestCheckoutTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from     service.Step
		action   service.Action
		wantStep service.Step
		wantErr  error
	}{
		{name: "back to order", from: service.StepDelivery, action: service.ActionBackToOrder, wantStep: service.StepReview},
		{name: "back to delivery", from: service.StepPayment, action: service.ActionBackToDelivery, wantStep: service.StepDelivery},
		{name: "place order from review", from: service.StepReview, action: service.ActionPlaceOrder, wantStep: service.StepReview, wantErr: service.ErrInvalidTransition},
		{name: "back from review", from: service.StepReview, action: service.ActionBackToOrder, wantStep: service.StepReview, wantErr: service.ErrInvalidTransition},
		{name: "place order twice", from: service.StepConfirmation, action: service.ActionPlaceOrder, wantStep: service.StepConfirmation, wantErr: service.ErrInvalidTransition},
		{name: "start over mid flow", from: service.StepPayment, action: service.ActionStartOver, wantStep: service.StepPayment, wantErr: service.ErrInvalidTransition},
		{name: "unknown action", from: service.StepReview, action: "jump", wantStep: service.StepReview, wantErr: service.ErrUnknownAction},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			f := newCheckoutFixture(t, menuItem("a", 10))

			next, err := f.dispatch(service.CheckoutState{Step: testCase.from}, service.Event{Action: testCase.action})

			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, testCase.wantStep, next.Step)
		})
	}
}

func TestCheckoutInvalidStateResets(t *testing.T) {
	f := newCheckoutFixture(t, menuItem("a", 10))

	next, err := f.dispatch(service.CheckoutState{Step: 9}, service.Event{Action: service.ActionContinueToDelivery})

	require.NoError(t, err)
	assert.Equal(t, service.StepDelivery, next.Step)
}

func TestSummarizeDeliveryFeeVisibility(t *testing.T) {
	f := newCheckoutFixture(t, menuItem("a", 10))

	review := service.Summarize(service.CheckoutState{Step: service.StepReview, Draft: domain.OrderDraft{OrderType: domain.OrderTypeDelivery}}, f.cart)
	delivery := service.Summarize(service.CheckoutState{Step: service.StepDelivery, Draft: domain.OrderDraft{OrderType: domain.OrderTypeDelivery}}, f.cart)
	pickup := service.Summarize(service.CheckoutState{Step: service.StepPayment, Draft: domain.OrderDraft{OrderType: domain.OrderTypePickup}}, f.cart)

	assert.Zero(t, review.DeliveryFee)
	assert.InDelta(t, 3.99, delivery.DeliveryFee, 0.001)
	assert.InDelta(t, 14.79, delivery.Total, 0.001)
	assert.Zero(t, pickup.DeliveryFee)
	assert.Equal(t, 1, pickup.UnitCount)
}

type failingDeleteKV struct {
	*storage.MemoryKV
}

func (failingDeleteKV) Delete(context.Context, string) error {
	return errors.New("redis down")
}

func TestPlaceOrderConfirmsWhenCartClearFails(t *testing.T) {
	ctx := context.Background()
	kv := failingDeleteKV{storage.NewMemoryKV()}
	cart := newCart(t, kv)
	require.NoError(t, cart.Add(ctx, menuItem("a", 10), 1))
	f := checkoutFixture{
		ctx:     ctx,
		machine: service.NewMachine(service.NewFinalizer(nil, nil, nil)),
		cart:    cart,
		history: service.NewOrderHistory(kv, "session:test:orders"),
	}

	state, err := f.dispatch(service.NewCheckoutState(), service.Event{Action: service.ActionContinueToDelivery})
	require.NoError(t, err)
	state, err = f.dispatch(state, service.Event{Action: service.ActionContinueToPayment, Delivery: deliveryForm()})
	require.NoError(t, err)

	state, err = f.dispatch(state, service.Event{Action: service.ActionPlaceOrder, Payment: cardPayment()})
	require.NoError(t, err)
	assert.Equal(t, service.StepConfirmation, state.Step)
	require.NotNil(t, state.Order)

	_, err = f.dispatch(state, service.Event{Action: service.ActionPlaceOrder, Payment: cardPayment()})
	assert.ErrorIs(t, err, service.ErrInvalidTransition)

	history, err := f.history.List(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
