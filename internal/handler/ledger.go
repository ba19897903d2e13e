package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dukerupert/dispensa/internal/auth"
	"github.com/dukerupert/dispensa/internal/ledger"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/report"
	"github.com/dukerupert/dispensa/internal/store"
	"github.com/dukerupert/dispensa/internal/websocket"
	"github.com/shopspring/decimal"
)

type LedgerHandler struct {
	ledgerStore *store.LedgerStore
	hub         *websocket.Hub
	logger      *slog.Logger
}

func NewLedgerHandler(ls *store.LedgerStore, hub *websocket.Hub, logger *slog.Logger) *LedgerHandler {
	return &LedgerHandler{ledgerStore: ls, hub: hub, logger: logger}
}

func monthParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	month, err := ledger.ParseMonth(r.PathValue("month"))
	if err != nil {
		writeFail(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return month, true
}

// Budget returns the month's budget summary. A month without a budget row
// reports zero amount and zero spend.
func (h *LedgerHandler) Budget(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	b, err := h.ledgerStore.GetBudget(r.Context(), auth.UserID(r.Context()), month)
	if err != nil {
		writeError(w, h.logger, err, "failed to get budget")
		return
	}
	writeData(w, http.StatusOK, ledger.Summarize(month, b))
}

type amountRequest struct {
	Amount string `json:"amount"`
}

type usedRequest struct {
	Used string `json:"used"`
}

func (h *LedgerHandler) SetAmount(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	var req amountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	amount, err := ledger.ParseAmount("amount", req.Amount)
	if err != nil {
		writeError(w, h.logger, err, "invalid amount")
		return
	}
	h.saveBudget(w, r, month, func(userID int64) (*model.Budget, error) {
		return h.ledgerStore.SetAmount(r.Context(), userID, month, amount)
	})
}

// SetUsed corrects the spend recorded for the month by hand.
func (h *LedgerHandler) SetUsed(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	var req usedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeFail(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	used, err := ledger.ParseAmount("used", req.Used)
	if err != nil {
		writeError(w, h.logger, err, "invalid amount")
		return
	}
	h.saveBudget(w, r, month, func(userID int64) (*model.Budget, error) {
		return h.ledgerStore.SetUsed(r.Context(), userID, month, used)
	})
}

func (h *LedgerHandler) saveBudget(w http.ResponseWriter, r *http.Request, month string, save func(userID int64) (*model.Budget, error)) {
	b, err := save(auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err, "failed to save budget")
		return
	}
	invalidate(h.hub, websocket.ViewBudget)
	writeData(w, http.StatusOK, ledger.Summarize(month, b))
}

type historyResponse struct {
	Month string              `json:"month"`
	Items []model.HistoryItem `json:"items"`
	Total decimal.Decimal     `json:"total"`
	Count int                 `json:"count"`
}

func (h *LedgerHandler) History(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	items, err := h.ledgerStore.History(r.Context(), auth.UserID(r.Context()), month)
	if err != nil {
		writeError(w, h.logger, err, "failed to list history")
		return
	}
	if items == nil {
		items = []model.HistoryItem{}
	}
	writeData(w, http.StatusOK, historyResponse{
		Month: month,
		Items: items,
		Total: ledger.HistoryTotal(items),
		Count: len(items),
	})
}

// Report downloads the month's history and budget as a PDF.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	month, ok := monthParam(w, r)
	if !ok {
		return
	}
	userID := auth.UserID(r.Context())

	items, err := h.ledgerStore.History(r.Context(), userID, month)
	if err != nil {
		writeError(w, h.logger, err, "failed to list history")
		return
	}
	b, err := h.ledgerStore.GetBudget(r.Context(), userID, month)
	if err != nil {
		writeError(w, h.logger, err, "failed to get budget")
		return
	}

	data, err := report.HistoryPDF(ledger.Summarize(month, b), items)
	if err != nil {
		writeError(w, h.logger, err, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="storico-%s.pdf"`, month))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
