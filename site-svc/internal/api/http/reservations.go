package httpapi

import (
	"net/http"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"github.com/gorilla/mux"
)

// reservationRequest accepts the booking form as posted by the site, where
// the notes field is named special-requests and guests may arrive as a string.
type reservationRequest struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email"`
	Phone                string  `json:"phone"`
	Date                 string  `json:"date"`
	Time                 string  `json:"time"`
	Guests               flexInt `json:"guests"`
	SpecialRequests      string  `json:"special-requests"`
	SpecialRequestsCamel string  `json:"specialRequests"`
}

func (req reservationRequest) toDomain() domain.Reservation {
	notes := req.SpecialRequests
	if notes == "" {
		notes = req.SpecialRequestsCamel
	}
	return domain.Reservation{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		Guests:          int(req.Guests),
		SpecialRequests: notes,
	}
}

func (h *Handler) createReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reservation := req.toDomain()
	if err := h.Reservations.Create(r.Context(), &reservation); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Reservation confirmed successfully",
		"reservation": reservation,
	})
}

func (h *Handler) getReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.Reservations.List(r.Context())
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":      "All reservation submissions",
		"reservations": reservations,
		"total":        len(reservations),
	})
}

// reservationPatchRequest is the body of a partial update; absent fields are kept.
type reservationPatchRequest struct {
	Name                 *string  `json:"name"`
	Email                *string  `json:"email"`
	Phone                *string  `json:"phone"`
	Date                 *string  `json:"date"`
	Time                 *string  `json:"time"`
	Guests               *flexInt `json:"guests"`
	SpecialRequests      *string  `json:"special-requests"`
	SpecialRequestsCamel *string  `json:"specialRequests"`
	Status               *string  `json:"status"`
}

func (req reservationPatchRequest) toPatch() service.ReservationPatch {
	patch := service.ReservationPatch{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Date:            req.Date,
		Time:            req.Time,
		SpecialRequests: req.SpecialRequests,
		Status:          req.Status,
	}
	if patch.SpecialRequests == nil {
		patch.SpecialRequests = req.SpecialRequestsCamel
	}
	if req.Guests != nil {
		guests := int(*req.Guests)
		patch.Guests = &guests
	}
	return patch
}

func (h *Handler) getReservation(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	reservation, err := h.Reservations.Get(r.Context(), id)
	if err != nil {
		writeError(w, err, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) updateReservation(w http.ResponseWriter, r *http.Request) {
	var req reservationPatchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, _ := pathInt(r, "id")
	reservation, err := h.Reservations.Update(r.Context(), id, req.toPatch())
	if err != nil {
		writeError(w, err, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, reservation)
}

func (h *Handler) cancelReservation(w http.ResponseWriter, r *http.Request) {
	id, _ := pathInt(r, "id")
	reservation, err := h.Reservations.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err, "Reservation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Reservation cancelled successfully",
		"reservation": reservation,
	})
}

func (h *Handler) checkAvailability(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guests, _ := pathInt(r, "guests")
	available, err := h.Reservations.Available(r.Context(), vars["date"], vars["time"], guests)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"available": available})
}
