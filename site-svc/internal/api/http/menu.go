package httpapi

import (
	"net/http"
	"strings"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"github.com/gorilla/mux"
)

// filtersFromQuery reads category, dietary, dietaryMatch, price, q and sort.
// Absent parameters leave the catalog unfiltered and in stored order.
func filtersFromQuery(r *http.Request) domain.FilterState {
	q := r.URL.Query()
	filters := domain.FilterState{
		Category:     q.Get("category"),
		DietaryMatch: domain.DietaryMatch(q.Get("dietaryMatch")),
		PriceRange:   domain.PriceRange(q.Get("price")),
		Search:       q.Get("q"),
		Sort:         domain.SortKey(q.Get("sort")),
	}
	for _, raw := range q["dietary"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filters.Dietary = append(filters.Dietary, tag)
			}
		}
	}
	return filters
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.Filter(r.Context(), filtersFromQuery(r))
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getFeatured(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.Featured(r.Context())
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuByCategory(w http.ResponseWriter, r *http.Request) {
	items := h.Catalog.ByCategory(r.Context(), mux.Vars(r)["category"])
	if items == nil {
		items = []domain.MenuItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	item, err := h.Catalog.Find(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// menuItemRequest accepts dietaryTags and featured as aliases of dietary and popular.
type menuItemRequest struct {
	ID          string    `json:"id"`
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Image       *string   `json:"image"`
	Category    *string   `json:"category"`
	Dietary     *[]string `json:"dietary"`
	DietaryTags *[]string `json:"dietaryTags"`
	Spicy       *bool     `json:"spicy"`
	Popular     *bool     `json:"popular"`
	Featured    *bool     `json:"featured"`
	Available   *bool     `json:"available"`
}

func (req menuItemRequest) toPatch() service.MenuItemPatch {
	patch := service.MenuItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Dietary:     req.Dietary,
		Spicy:       req.Spicy,
		Popular:     req.Popular,
		Available:   req.Available,
	}
	if patch.Dietary == nil {
		patch.Dietary = req.DietaryTags
	}
	if patch.Popular == nil {
		patch.Popular = req.Featured
	}
	return patch
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item := domain.MenuItem{ID: req.ID, Available: true}
	patch := req.toPatch()
	if patch.Price == nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "Price is required", "field": "price"})
		return
	}
	service.ApplyMenuPatch(&item, patch)
	if err := h.Catalog.Create(r.Context(), &item); err != nil {
		writeError(w, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req menuItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.Catalog.Update(r.Context(), mux.Vars(r)["id"], req.toPatch())
	if err != nil {
		writeError(w, err, "Menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.Catalog.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err, "Menu item not found")
		return
	}
	writeMessage(w, http.StatusOK, "Menu item deleted")
}
