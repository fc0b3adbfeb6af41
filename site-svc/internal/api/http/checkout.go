package httpapi

import (
	"net/http"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"
)

type checkoutResponse struct {
	Step     service.Step      `json:"step"`
	StepName string            `json:"stepName"`
	Draft    domain.OrderDraft `json:"draft"`
	Summary  service.Summary   `json:"summary"`
	Order    *domain.Order     `json:"order,omitempty"`
}

func newCheckoutResponse(state service.CheckoutState, cart *service.CartStore) checkoutResponse {
	return checkoutResponse{
		Step:     state.Step,
		StepName: state.Step.String(),
		Draft:    state.Draft,
		Summary:  service.Summarize(state, cart),
		Order:    state.Order,
	}
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	state, err := h.Sessions.Checkout(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCheckoutResponse(state, cart))
}

// dispatchCheckout feeds one action into the checkout machine. A rejected
// action leaves the stored state untouched.
func (h *Handler) dispatchCheckout(w http.ResponseWriter, r *http.Request) {
	var ev service.Event
	if err := decodeJSON(r, &ev); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := sessionID(r)
	state, err := h.Sessions.Checkout(r.Context(), id)
	if err != nil {
		writeError(w, err, "")
		return
	}
	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}

	next, err := h.Checkout.Dispatch(r.Context(), state, ev, cart, h.Sessions.History(id))
	if err != nil {
		writeError(w, err, "")
		return
	}
	if err := h.Sessions.SaveCheckout(r.Context(), id, next); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newCheckoutResponse(next, cart))
}
