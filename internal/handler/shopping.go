package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/checkout"
	"github.com/dukerupert/dispensa/internal/grocery"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/pantry"
	"github.com/dukerupert/dispensa/internal/store"
	"github.com/dukerupert/dispensa/internal/websocket"
)

type ShoppingHandler struct {
	shoppingStore *store.ShoppingStore
	reconciler    *pantry.Reconciler
	checkout      *checkout.Service
	hub           *websocket.Hub
	logger        *slog.Logger
}

func NewShoppingHandler(ss *store.ShoppingStore, rec *pantry.Reconciler, cs *checkout.Service, hub *websocket.Hub, logger *slog.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingStore: ss,
		reconciler:    rec,
		checkout:      cs,
		hub:           hub,
		logger:        logger,
	}
}

type shoppingItemRequest struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Category string `json:"category"`
}

func (h *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.shoppingStore.List(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to list shopping items")
		return
	}
	if items == nil {
		items = []model.ShoppingItem{}
	}
	writeData(w, http.StatusOK, items)
}

func (h *ShoppingHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req shoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity == "" {
		writeFail(w, http.StatusBadRequest, "quantity is required")
		return
	}

	category := grocery.Categorize(req.Name)
	if req.Category != "" {
		c, ok := model.ParseCategory(req.Category)
		if !ok {
			writeFail(w, http.StatusBadRequest, "invalid category")
			return
		}
		category = c
	}

	item, err := h.shoppingStore.Create(r.Context(), auth.UserID(r.Context()), req.Name, req.Quantity, category)
	if err != nil {
		writeError(w, h.logger, err, "failed to create item")
		return
	}

	invalidate(h.hub, websocket.ViewShopping)
	writeData(w, http.StatusCreated, item)
}

func (h *ShoppingHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.shoppingStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get item")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	var req shoppingItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Quantity = strings.TrimSpace(req.Quantity)
	if req.Name == "" {
		writeFail(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Quantity == "" {
		req.Quantity = existing.Quantity
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

	item, err := h.shoppingStore.Update(r.Context(), userID, id, req.Name, req.Quantity, category)
	if err != nil {
		writeError(w, h.logger, err, "failed to update item")
		return
	}

	invalidate(h.hub, websocket.ViewShopping)
	writeData(w, http.StatusOK, item)
}

func (h *ShoppingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	existing, err := h.shoppingStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get item")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	if err := h.shoppingStore.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "failed to delete item")
		return
	}

	invalidate(h.hub, websocket.ViewShopping)
	writeData(w, http.StatusOK, map[string]int64{"id": id})
}

type checkRequest struct {
	Checked *bool `json:"checked"`
}

// Check sets the checked flag. Without a value in the body it toggles.
func (h *ShoppingHandler) Check(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	var req checkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	existing, err := h.shoppingStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get item")
		return
	}
	if existing == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	checked := !existing.Checked
	if req.Checked != nil {
		checked = *req.Checked
	}

	item, err := h.shoppingStore.SetChecked(r.Context(), userID, id, checked)
	if err != nil {
		writeError(w, h.logger, err, "failed to update item")
		return
	}

	invalidate(h.hub, websocket.ViewShopping)
	writeData(w, http.StatusOK, item)
}

// ToPantry merges a single item into the pantry and removes it from the list.
func (h *ShoppingHandler) ToPantry(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeFail(w, http.StatusBadRequest, "invalid id")
		return
	}
	userID := auth.UserID(r.Context())

	item, err := h.shoppingStore.GetByID(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.logger, err, "failed to get item")
		return
	}
	if item == nil {
		writeFail(w, http.StatusNotFound, "item not found")
		return
	}

	p, err := h.reconciler.Reconcile(r.Context(), userID, item.Name, item.Quantity, item.Category)
	if err != nil {
		writeError(w, h.logger, err, "failed to move item to pantry")
		return
	}
	if err := h.shoppingStore.Delete(r.Context(), userID, id); err != nil {
		writeError(w, h.logger, err, "failed to delete item")
		return
	}

	invalidate(h.hub, websocket.ViewShopping, websocket.ViewPantry)
	writeData(w, http.StatusOK, p)
}

func (h *ShoppingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkout.Request
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := h.checkout.Checkout(r.Context(), auth.UserID(r.Context()), req)
	if err != nil {
		writeError(w, h.logger, err, "failed to checkout")
		return
	}

	h.logger.Info("checkout",
		"month", result.Month,
		"total", result.Total.StringFixed(2),
		"items", result.HistoryCount,
		"failed", len(result.Failed),
	)
	invalidate(h.hub, websocket.ViewShopping, websocket.ViewPantry, websocket.ViewBudget, websocket.ViewHistory)
	writeData(w, http.StatusOK, result)
}
