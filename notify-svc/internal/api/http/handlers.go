package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"flavor-heaven/notify-svc/internal/service"
	"flavor-heaven/notify-svc/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	Stats service.StatsReader
	now   func() time.Time
}

// NewHandler accepts a nil reader; the stats routes then answer 503.
func NewHandler(stats service.StatsReader) *Handler {
	return &Handler{Stats: stats, now: time.Now}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"service":   "notify-svc",
			"stats":     h.Stats != nil,
			"timestamp": h.now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")
	r.HandleFunc("/api/stats/daily", h.getDaily).Methods("GET")
	r.HandleFunc("/api/stats/daily/{date}", h.getDaily).Methods("GET")
	r.HandleFunc("/api/stats/top-items", h.getTopItems).Methods("GET")
}

func (h *Handler) getDaily(w http.ResponseWriter, r *http.Request) {
	day, ok := h.day(w, mux.Vars(r)["date"])
	if !ok {
		return
	}
	stats, err := h.Stats.Daily(r.Context(), day)
	if err != nil {
		log.Error().Err(err).Str("day", day).Msg("failed to read daily stats")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) getTopItems(w http.ResponseWriter, r *http.Request) {
	day, ok := h.day(w, r.URL.Query().Get("date"))
	if !ok {
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	items, err := h.Stats.TopItems(r.Context(), day, limit)
	if err != nil {
		log.Error().Err(err).Str("day", day).Msg("failed to read top items")
		writeMessage(w, http.StatusInternalServerError, "Something went wrong!")
		return
	}
	if items == nil {
		items = []storage.ItemCount{}
	}
	writeJSON(w, http.StatusOK, items)
}

// day validates the requested day, defaulting to today in UTC.
func (h *Handler) day(w http.ResponseWriter, raw string) (string, bool) {
	if h.Stats == nil {
		writeMessage(w, http.StatusServiceUnavailable, "Stats are not configured")
		return "", false
	}
	if raw == "" {
		return h.now().UTC().Format(storage.DayLayout), true
	}
	if _, err := time.Parse(storage.DayLayout, raw); err != nil {
		writeMessage(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return "", false
	}
	return raw, true
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
