package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/pantry"
	"github.com/dukerupert/dispensa/internal/store"
	"github.com/dukerupert/dispensa/internal/websocket"
)

type PantryHandler struct {
	pantryStore *store.PantryStore
	reconciler  *pantry.Reconciler
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewPantryHandler(ps *store.PantryStore, rec *pantry.Reconciler, hub *websocket.Hub, logger *slog.Logger) *PantryHandler {
	return &PantryHandler{pantryStore: ps, reconciler: rec, hub: hub, logger: logger}
}

type pantryItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

// pantryItemView adds the derived stock level to a pantry item.
type pantryItemView struct {
	model.PantryItem
	Stock pantry.Stock `json:"stock"`
}

// List returns the pantry sorted by quantity, optionally narrowed by
// ?category= and ?stock=.
func (h *PantryHandler) List(w http.ResponseWriter, r *http.Request) {
	var category model.Category
	if c := r.URL.Query().Get("category"); c != "" {
		parsed, ok := model.ParseCategory(c)
		if !ok {
			writeFail(w, http.StatusBadRequest, "invalid category")
			return
		}
		category = parsed
	}
	var stock pantry.Stock
	if s := r.URL.Query().Get("stock"); s != "" {
		parsed, ok := pantry.ParseStock(s)
		if !ok {
			writeFail(w, http.StatusBadRequest, "invalid stock filter")
			return
		}
		stock = parsed
	}

	items, err := h.pantryStore.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to list pantry")
		return
	}

	filtered := pantry.Filter(items, category, stock)
	views := make([]pantryItemView, 0, len(filtered))
	for _, it := range filtered {
		views = append(views, pantryItemView{PantryItem: it, Stock: pantry.StatusOf(it.Quantity)})
	}
	writeData(w, http.StatusOK, views)
}

// Create adds stock by name; an existing item with the same name is topped up.
func (h *PantryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req pantryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := h.reconciler.Reconcile(r.Context(), auth.UserID(r.Context()), req.Name, req.Quantity, model.Category(strings.TrimSpace(req.Category)))
	if err != nil {
		writeError(w, h.logger, err, "failed to add pantry item")
		return
	}

	invalidate(h.hub, websocket.ViewPantry)
	writeData(w, http.StatusCreated, item)
}

func (h *PantryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.pantryStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get pantry item")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	var req pantryItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Quantity = strings.TrimSpace(req.Quantity)
	if req.Quantity == "" {
		writeFail(w, http.StatusBadRequest, "quantity is required")
		return
	}
	category := existing.Category
	if req.Category != "" {
		c, ok := model.ParseCategory(req.Category)
		if !ok {
			writeFail(w, http.StatusBadRequest, "invalid category")
			return
		}
		category = c
	}

	item, err := h.pantryStore.Update(r.Context(), userID, id, req.Quantity, category)
	if err != nil {
		writeError(w, h.logger, err, "failed to update pantry item")
		return
	}

	invalidate(h.hub, websocket.ViewPantry)
	writeData(w, http.StatusOK, item)
}

func (h *PantryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.pantryStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get pantry item")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	if err := h.pantryStore.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "failed to delete pantry item")
		return
	}

	invalidate(h.hub, websocket.ViewPantry)
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

// ToShopping puts the item back on the shopping list and removes it from
// the pantry.
func (h *PantryHandler) ToShopping(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.pantryStore.MoveToShopping(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.logger, err, "failed to move item to shopping list")
		return
	}
	if item == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	invalidate(h.hub, websocket.ViewPantry, websocket.ViewShopping)
	writeData(w, http.StatusOK, item)
}
