package httpapi

import (
	"net/http"

	"flavor-heaven/site-svc/internal/domain"

	"github.com/gorilla/mux"
)

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string  `json:"name"`
		Email   string  `json:"email"`
		Phone   string  `json:"phone"`
		Subject string  `json:"subject"`
		Message string  `json:"message"`
		Rating  flexInt `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	contact := domain.Contact{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
		Rating:  int(req.Rating),
	}
	if err := h.Contacts.Submit(r.Context(), &contact); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Contact form submitted successfully",
		"contact": contact,
	})
}

func (h *Handler) getContacts(w http.ResponseWriter, r *http.Request) {
	h.listContacts(w, r, "")
}

func (h *Handler) getContactsByStatus(w http.ResponseWriter, r *http.Request) {
	h.listContacts(w, r, mux.Vars(r)["status"])
}

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request, status string) {
	contacts, err := h.Contacts.List(r.Context(), status)
	if err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Contacts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Contact submission not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	contact, err := h.Contacts.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		writeError(w, err, "Contact submission not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := h.Contacts.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Contact submission not found")
		return
	}
	writeMessage(w, http.StatusOK, "Contact submission deleted")
}
