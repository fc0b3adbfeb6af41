package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

const (
	SessionHeader   = "X-Session-ID"
	SessionCookie   = "session_id"
	CartCountHeader = "X-Cart-Count"
)

type sessionKey struct{}

// session resolves the caller's session and holds its lock for the whole request.
func (h *Handler) session(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(SessionHeader)
		if id == "" {
			if c, err := r.Cookie(SessionCookie); err == nil {
				id = c.Value
			}
		}
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				MaxAge:   int(h.Config.SessionTTL.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		w.Header().Set(SessionHeader, id)

		unlock := h.Sessions.Lock(id)
		defer unlock()

		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, id)))
	})
}

func sessionID(r *http.Request) string {
	id, _ := r.Context().Value(sessionKey{}).(string)
	return id
}

func (h *Handler) getSessionOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Sessions.History(sessionID(r)).List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getPopup(w http.ResponseWriter, r *http.Request) {
	shown, err := h.Sessions.PopupShown(r.Context(), sessionID(r))
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"popupShown": shown})
}

func (h *Handler) markPopup(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.MarkPopupShown(r.Context(), sessionID(r)); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"popupShown": true})
}

func setCartCount(w http.ResponseWriter, units int) {
	w.Header().Set(CartCountHeader, strconv.Itoa(units))
}
