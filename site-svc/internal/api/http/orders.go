package httpapi

import (
	"net/http"
	"strconv"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/gorilla/mux"
)

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var order domain.Order
	if err := decodeJSON(r, &order); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order.ID = 0
	if err := h.Orders.Create(r.Context(), &order); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListByEmail(r.Context(), mux.Vars(r)["email"])
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	var req struct {
		OrderStatus string `json:"orderStatus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.Orders.UpdateStatus(r.Context(), id, req.OrderStatus)
	if err != nil {
		writeError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	var req struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	order, err := h.Orders.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		writeError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	order, err := h.Orders.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	png, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["orderNumber"])
	if err != nil {
		writeError(w, err, "Order not found")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}
