package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flavor-heaven/config"
	"flavor-heaven/site-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Catalog      service.CatalogInterface
	Sessions     *service.Sessions
	Checkout     *service.Machine
	Orders       service.OrderServiceInterface
	Reservations service.ReservationServiceInterface
	Contacts     service.ContactServiceInterface
	Config       config.Config
}

func NewHandler(
	catalog service.CatalogInterface,
	sessions *service.Sessions,
	checkout *service.Machine,
	orders service.OrderServiceInterface,
	reservations service.ReservationServiceInterface,
	contacts service.ContactServiceInterface,
	cfg config.Config,
) *Handler {
	return &Handler{
		Catalog:      catalog,
		Sessions:     sessions,
		Checkout:     checkout,
		Orders:       orders,
		Reservations: reservations,
		Contacts:     contacts,
		Config:       cfg,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/config-check", h.configCheck).Methods("GET")

	r.HandleFunc("/api/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/menu/featured", h.getFeatured).Methods("GET")
	r.HandleFunc("/api/menu/category/{category}", h.getMenuByCategory).Methods("GET")
	r.HandleFunc("/api/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/menu/{id}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/menu/{id}", h.updateMenuItem).Methods("PATCH")
	r.HandleFunc("/api/menu/{id}", h.deleteMenuItem).Methods("DELETE")

	r.Handle("/api/cart", h.session(h.getCart)).Methods("GET")
	r.Handle("/api/cart", h.session(h.clearCart)).Methods("DELETE")
	r.Handle("/api/cart/items", h.session(h.addCartItem)).Methods("POST")
	r.Handle("/api/cart/items/{id}", h.session(h.updateCartItem)).Methods("PUT")
	r.Handle("/api/cart/items/{id}", h.session(h.removeCartItem)).Methods("DELETE")

	r.Handle("/api/checkout", h.session(h.getCheckout)).Methods("GET")
	r.Handle("/api/checkout/actions", h.session(h.dispatchCheckout)).Methods("POST")

	r.Handle("/api/session/orders", h.session(h.getSessionOrders)).Methods("GET")
	r.Handle("/api/session/popup", h.session(h.getPopup)).Methods("GET")
	r.Handle("/api/session/popup", h.session(h.markPopup)).Methods("POST")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/customer/{email}", h.getCustomerOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id:[0-9]+}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id:[0-9]+}/payment", h.updatePaymentStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id:[0-9]+}/cancel", h.cancelOrder).Methods("PATCH")
	r.HandleFunc("/api/orders/{orderNumber}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/reservations", h.createReservation).Methods("POST")
	r.HandleFunc("/api/reservations", h.getReservations).Methods("GET")
	r.HandleFunc("/api/reservations/check-availability/{date}/{time}/{guests:[0-9]+}", h.checkAvailability).Methods("GET")
	r.HandleFunc("/api/reservations/{id:[0-9]+}", h.getReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id:[0-9]+}", h.updateReservation).Methods("PATCH")
	r.HandleFunc("/api/reservations/{id:[0-9]+}/cancel", h.cancelReservation).Methods("PATCH")

	r.HandleFunc("/api/contact", h.submitContact).Methods("POST")
	r.HandleFunc("/api/contacts", h.getContacts).Methods("GET")
	r.HandleFunc("/api/contacts/status/{status}", h.getContactsByStatus).Methods("GET")
	r.HandleFunc("/api/contacts/{id}", h.getContact).Methods("GET")
	r.HandleFunc("/api/contacts/{id}", h.updateContact).Methods("PATCH")
	r.HandleFunc("/api/contacts/{id}", h.deleteContact).Methods("DELETE")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.Config.AppEnv,
		"version":     config.Version,
	})
}

func (h *Handler) configCheck(w http.ResponseWriter, r *http.Request) {
	email := map[string]interface{}{
		"configured": h.Config.EmailConfigured(),
		"sender":     nil,
		"receiver":   nil,
	}
	if h.Config.EmailConfigured() {
		email["sender"] = h.Config.EmailUser
		email["receiver"] = h.Config.RestaurantEmail
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"server": map[string]interface{}{
			"port":        h.Config.Port,
			"environment": h.Config.AppEnv,
		},
		"cors": map[string]interface{}{
			"enabled":        true,
			"allowedOrigins": h.Config.AllowedOrigins(),
		},
		"email": email,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps service errors to statuses; notFound names the missing resource.
func writeError(w http.ResponseWriter, err error, notFound string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		body := map[string]string{"message": verr.Message}
		if verr.Field != "" {
			body["field"] = verr.Field
		}
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrInvalidTransition):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, "Resource already exists")
	case errors.Is(err, service.ErrMenuReadOnly):
		writeMessage(w, http.StatusServiceUnavailable, "Menu editing is not available")
	case errors.Is(err, service.ErrUnknownAction),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidQuantity):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrOrderNotCancellable):
		writeMessage(w, http.StatusBadRequest, "Cannot cancel an order that is already delivered or cancelled")
	case errors.Is(err, service.ErrNoAvailability):
		writeMessage(w, http.StatusBadRequest, "No availability for the requested time and party size")
	default:
		log.Error().Err(err).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func pathInt(r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(mux.Vars(r)[name])
	return n, err == nil
}

// flexInt accepts both JSON numbers and numeric strings, as HTML forms post them.
type flexInt int

func (f *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*f = flexInt(n)
	return nil
}
