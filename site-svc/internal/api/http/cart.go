package httpapi

import (
	"net/http"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"github.com/gorilla/mux"
)

type cartResponse struct {
	Items     []domain.CartLine `json:"items"`
	UnitCount int               `json:"unitCount"`
	Subtotal  float64           `json:"subtotal"`
}

func newCartResponse(cart *service.CartStore) cartResponse {
	lines := cart.Snapshot()
	return cartResponse{
		Items:     lines,
		UnitCount: cart.TotalUnitCount(),
		Subtotal:  service.ComputeTotals(lines, domain.OrderTypePickup).Subtotal,
	}
}

// loadCart opens the session cart with the count header kept in sync.
func (h *Handler) loadCart(w http.ResponseWriter, r *http.Request) (*service.CartStore, bool) {
	cart, err := h.Sessions.Cart(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err, "")
		return nil, false
	}
	setCartCount(w, cart.TotalUnitCount())
	cart.Subscribe(func(units int) { setCartCount(w, units) })
	return cart, true
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string   `json:"id"`
		Quantity *flexInt `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = int(*req.Quantity)
	}

	item, err := h.Catalog.Find(r.Context(), req.ID)
	if err != nil {
		writeError(w, err, "Menu item not found")
		return
	}

	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	if err := cart.Add(r.Context(), item, quantity); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Quantity flexInt `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	if err := cart.SetQuantity(r.Context(), mux.Vars(r)["id"], int(req.Quantity)); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	if err := cart.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	cart, ok := h.loadCart(w, r)
	if !ok {
		return
	}
	if err := cart.Clear(r.Context()); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(cart))
}
