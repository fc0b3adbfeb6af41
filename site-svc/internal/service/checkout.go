package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flavor-heaven/site-svc/internal/domain"
)

type Step int

const (
	StepReview Step = iota + 1
	StepDelivery
	StepPayment
	StepConfirmation
)

func (s Step) String() string {
	switch s {
	case StepReview:
		return "review"
	case StepDelivery:
		return "delivery"
	case StepPayment:
		return "payment"
	case StepConfirmation:
		return "confirmation"
	default:
		return "unknown"
	}
}

type Action string

const (
	ActionContinueToDelivery Action = "continue-to-delivery"
	ActionBackToOrder        Action = "back-to-order"
	ActionContinueToPayment  Action = "continue-to-payment"
	ActionBackToDelivery     Action = "back-to-delivery"
	ActionPlaceOrder         Action = "place-order"
	ActionStartOver          Action = "start-over"
)

var (
	ErrEmptyCart         = &ValidationError{Field: "cart", Message: "Please add items to your cart before proceeding."}
	ErrInvalidTransition = errors.New("action not allowed from current step")
	ErrUnknownAction     = errors.New("unknown checkout action")
)

type DeliveryForm struct {
	OrderType           domain.OrderType `json:"orderType"`
	Name                string           `json:"name"`
	Phone               string           `json:"phone"`
	Email               string           `json:"email"`
	Address             string           `json:"address"`
	City                string           `json:"city"`
	Zip                 string           `json:"zip"`
	PickupTime          string           `json:"pickupTime"`
	SpecialInstructions string           `json:"specialInstructions"`
}

// PaymentForm carries card details for validation only; they are never stored.
type PaymentForm struct {
	Method     domain.PaymentMethod `json:"method"`
	CardNumber string               `json:"cardNumber"`
	CardName   string               `json:"cardName"`
	Expiry     string               `json:"expiry"`
	CVV        string               `json:"cvv"`
}

type Event struct {
	Action   Action        `json:"action"`
	Delivery *DeliveryForm `json:"delivery,omitempty"`
	Payment  *PaymentForm  `json:"payment,omitempty"`
}

// CheckoutState is the session-scoped context the machine reads and returns.
type CheckoutState struct {
	Step  Step              `json:"step"`
	Draft domain.OrderDraft `json:"draft"`
	Order *domain.Order     `json:"order,omitempty"`
}

func NewCheckoutState() CheckoutState {
	return CheckoutState{Step: StepReview, Draft: domain.OrderDraft{OrderType: domain.OrderTypeDelivery}}
}

func (s CheckoutState) valid() bool {
	return s.Step >= StepReview && s.Step <= StepConfirmation
}

type Machine struct {
	finalizer *Finalizer
}

func NewMachine(finalizer *Finalizer) *Machine {
	return &Machine{finalizer: finalizer}
}

// Dispatch applies ev to state. On any error the returned state equals the input.
func (m *Machine) Dispatch(ctx context.Context, state CheckoutState, ev Event, cart *CartStore, history *OrderHistory) (CheckoutState, error) {
	if !state.valid() {
		state = NewCheckoutState()
	}

	switch ev.Action {
	case ActionContinueToDelivery:
		if state.Step != StepReview {
			return state, transitionError(ev.Action, state.Step)
		}
		if cart.IsEmpty() {
			return state, ErrEmptyCart
		}
		state.Step = StepDelivery
		return state, nil

	case ActionBackToOrder:
		if state.Step != StepDelivery {
			return state, transitionError(ev.Action, state.Step)
		}
		state.Step = StepReview
		return state, nil

	case ActionContinueToPayment:
		if state.Step != StepDelivery {
			return state, transitionError(ev.Action, state.Step)
		}
		draft, err := applyDelivery(state.Draft, ev.Delivery)
		if err != nil {
			return state, err
		}
		state.Draft = draft
		state.Step = StepPayment
		return state, nil

	case ActionBackToDelivery:
		if state.Step != StepPayment {
			return state, transitionError(ev.Action, state.Step)
		}
		state.Step = StepDelivery
		return state, nil

	case ActionPlaceOrder:
		if state.Step != StepPayment {
			return state, transitionError(ev.Action, state.Step)
		}
		method, err := validatePayment(ev.Payment)
		if err != nil {
			return state, err
		}
		draft := state.Draft
		draft.PaymentMethod = method

		order, err := m.finalizer.Finalize(ctx, cart, history, draft)
		if err != nil {
			return state, err
		}
		state.Draft = draft
		state.Order = &order
		state.Step = StepConfirmation
		return state, nil

	case ActionStartOver:
		if state.Step != StepConfirmation {
			return state, transitionError(ev.Action, state.Step)
		}
		return NewCheckoutState(), nil

	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownAction, ev.Action)
	}
}

func transitionError(action Action, step Step) error {
	return fmt.Errorf("%w: %s at step %s", ErrInvalidTransition, action, step)
}

var (
	deliveryFields = []string{"name", "phone", "email", "address", "city", "zip"}
	pickupFields   = []string{"name", "phone", "email", "pickupTime"}
	cardFields     = []string{"cardNumber", "cardName", "expiry", "cvv"}
)

func applyDelivery(draft domain.OrderDraft, form *DeliveryForm) (domain.OrderDraft, error) {
	if form == nil {
		return draft, newValidationError("delivery", "Please fill in all required fields.")
	}

	orderType := form.OrderType
	if orderType == "" {
		orderType = domain.OrderTypeDelivery
	}
	if orderType != domain.OrderTypeDelivery && orderType != domain.OrderTypePickup {
		return draft, newValidationError("orderType", "Order type must be delivery or pickup.")
	}

	values := map[string]string{
		"name":       form.Name,
		"phone":      form.Phone,
		"email":      form.Email,
		"address":    form.Address,
		"city":       form.City,
		"zip":        form.Zip,
		"pickupTime": form.PickupTime,
	}
	required := deliveryFields
	if orderType == domain.OrderTypePickup {
		required = pickupFields
	}
	for _, field := range required {
		if strings.TrimSpace(values[field]) == "" {
			return draft, newValidationError(field, "Please fill in all required fields.")
		}
	}

	draft.OrderType = orderType
	draft.SpecialInstructions = strings.TrimSpace(form.SpecialInstructions)
	if orderType == domain.OrderTypeDelivery {
		draft.Customer = domain.Customer{
			Name:    form.Name,
			Phone:   form.Phone,
			Email:   form.Email,
			Address: form.Address,
			City:    form.City,
			Zip:     form.Zip,
		}
	} else {
		draft.Customer = domain.Customer{
			Name:       form.Name,
			Phone:      form.Phone,
			Email:      form.Email,
			PickupTime: form.PickupTime,
		}
	}
	return draft, nil
}

func validatePayment(form *PaymentForm) (domain.PaymentMethod, error) {
	if form == nil || form.Method == "" {
		return "", newValidationError("paymentMethod", "Please select a payment method.")
	}

	switch form.Method {
	case domain.PaymentCreditCard:
		values := map[string]string{
			"cardNumber": form.CardNumber,
			"cardName":   form.CardName,
			"expiry":     form.Expiry,
			"cvv":        form.CVV,
		}
		for _, field := range cardFields {
			if strings.TrimSpace(values[field]) == "" {
				return "", newValidationError(field, "Please fill in all credit card details.")
			}
		}
	case domain.PaymentPayPal, domain.PaymentCash:
	default:
		return "", newValidationError("paymentMethod", "Please select a payment method.")
	}
	return form.Method, nil
}

// Summary is the order-summary panel: the delivery fee appears only after the
// review step and only for delivery orders.
type Summary struct {
	Items     []domain.CartLine `json:"items"`
	UnitCount int               `json:"unitCount"`
	Totals
}

func Summarize(state CheckoutState, cart *CartStore) Summary {
	lines := cart.Snapshot()
	orderType := domain.OrderTypePickup
	if state.Step > StepReview && state.Draft.OrderType == domain.OrderTypeDelivery {
		orderType = domain.OrderTypeDelivery
	}
	return Summary{
		Items:     lines,
		UnitCount: cart.TotalUnitCount(),
		Totals:    ComputeTotals(lines, orderType),
	}
}
