package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/mealplan"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/websocket"
)

type MealPlanHandler struct {
	service *mealplan.Service
	hub     *websocket.Hub
	now     func() time.Time
	logger  *slog.Logger
}

func NewMealPlanHandler(svc *mealplan.Service, hub *websocket.Hub, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{service: svc, hub: hub, now: time.Now, logger: logger}
}

type weekResponse struct {
	Start string         `json:"start"`
	Days  []mealplan.Day `json:"days"`
}

// Week returns the grid for the week containing ?date=, or the current week.
func (h *MealPlanHandler) Week(w http.ResponseWriter, r *http.Request) {
	loc := h.service.Location()
	date := h.now().In(loc)
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := mealplan.ParseDay(s, loc)
		if err != nil {
			writeError(w, h.logger, err, "invalid date")
			return
		}
		date = d
	}

	days, err := h.service.Week(r.Context(), auth.UserID(r.Context()), date)
	if err != nil {
		writeError(w, h.logger, err, "failed to load meal plan")
		return
	}
	writeData(w, http.StatusOK, weekResponse{Start: days[0].Date, Days: days[:]})
}

type slotRequest struct {
	Text string `json:"text"`
}

func (h *MealPlanHandler) SetSlot(w http.ResponseWriter, r *http.Request) {
	date, err := mealplan.ParseDay(r.PathValue("date"), h.service.Location())
	if err != nil {
		writeError(w, h.logger, err, "invalid date")
		return
	}
	slot, ok := model.ParseMealSlot(r.PathValue("slot"))
	if !ok {
		writeFail(w, http.StatusBadRequest, "invalid slot")
		return
	}
	var req slotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	plan, err := h.service.SetSlot(r.Context(), auth.UserID(r.Context()), mealplan.MealSlotUpdate{
		Date: date,
		Slot: slot,
		Text: req.Text,
	})
	if err != nil {
		writeError(w, h.logger, err, "failed to save meal")
		return
	}

	invalidate(h.hub, websocket.ViewMealPlan)
	writeData(w, http.StatusOK, plan)
}

type duplicateRequest struct {
	SourceDate string `json:"source_date"`
	TargetDate string `json:"target_date"`
}

// Duplicate copies the week containing source_date onto the week containing
// target_date.
func (h *MealPlanHandler) Duplicate(w http.ResponseWriter, r *http.Request) {
	var req duplicateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	loc := h.service.Location()
	source, err := mealplan.ParseDay(req.SourceDate, loc)
	if err != nil {
		writeError(w, h.logger, err, "invalid source date")
		return
	}
	target, err := mealplan.ParseDay(req.TargetDate, loc)
	if err != nil {
		writeError(w, h.logger, err, "invalid target date")
		return
	}

	copied, err := h.service.DuplicateWeek(r.Context(), auth.UserID(r.Context()), source, target)
	if err != nil {
		writeError(w, h.logger, err, "failed to duplicate week")
		return
	}

	h.logger.Info("week duplicated", "source", req.SourceDate, "target", req.TargetDate, "days", copied)
	invalidate(h.hub, websocket.ViewMealPlan)
	writeData(w, http.StatusOK, map[string]int{"copied": copied})
}
