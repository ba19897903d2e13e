// Package checkout turns the checked part of the shopping list into history
// rows, budget spend and pantry stock.
package checkout

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/ledger"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/store"
	"github.com/shopspring/decimal"
)

// Reconciler folds a purchased item into the pantry.
type Reconciler interface {
	Reconcile(ctx context.Context, userID int64, name, qty string, category model.Category) (*model.PantryItem, error)
}

// Request carries the prices typed at checkout, keyed by shopping item id.
// A TotalOverride that parses to a positive amount replaces the line sum.
type Request struct {
	Prices        map[int64]string `json:"prices"`
	TotalOverride string           `json:"total_override"`
}

// Result reports what the checkout recorded. Failed lists items that were
// recorded in history but could not be moved to the pantry; they stay on the
// shopping list.
type Result struct {
	Month        string          `json:"month"`
	Total        decimal.Decimal `json:"total"`
	HistoryCount int             `json:"history_count"`
	Folded       []int64         `json:"folded"`
	Failed       []int64         `json:"failed"`
}

type Service struct {
	shopping   *store.ShoppingStore
	ledger     *store.LedgerStore
	reconciler Reconciler
	loc        *time.Location
	now        func() time.Time
	logger     *slog.Logger
}

func NewService(shopping *store.ShoppingStore, ledgerStore *store.LedgerStore, reconciler Reconciler, loc *time.Location, logger *slog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		shopping:   shopping,
		ledger:     ledgerStore,
		reconciler: reconciler,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Checkout records every checked item as a purchase of the current month and
// adds the total to the month's budget in one transaction. Each item is then
// moved to the pantry on its own; a failure there leaves the item checked on
// the list and does not stop the others.
func (s *Service) Checkout(ctx context.Context, userID int64, req Request) (*Result, error) {
	items, err := s.shopping.ListChecked(ctx, userID)
	if err != nil {
		return nil, apperr.Store("list checked items", err)
	}
	if len(items) == 0 {
		return nil, apperr.Validation("items", "no checked items to check out")
	}

	lines := make([]model.PurchaseLine, 0, len(items))
	sum := decimal.Zero
	for _, it := range items {
		price := ledger.ParsePrice(req.Prices[it.ID])
		sum = sum.Add(price)
		lines = append(lines, model.PurchaseLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Category: it.Category,
			Price:    price,
		})
	}

	total := sum
	if override := ledger.ParsePrice(req.TotalOverride); override.IsPositive() {
		total = override
	}

	now := s.now().In(s.loc)
	month := ledger.MonthOf(now)
	if _, err := s.ledger.RecordPurchases(ctx, userID, month, lines, total, now); err != nil {
		return nil, apperr.Store("record purchases", err)
	}

	res := &Result{
		Month:        month,
		Total:        total,
		HistoryCount: len(lines),
		Folded:       []int64{},
		Failed:       []int64{},
	}
	for _, it := range items {
		if err := s.fold(ctx, userID, it); err != nil {
			s.logger.Warn("checkout item not moved to pantry", "item_id", it.ID, "name", it.Name, "error", err)
			res.Failed = append(res.Failed, it.ID)
			continue
		}
		res.Folded = append(res.Folded, it.ID)
	}

	s.logger.Info("checkout recorded", "month", month, "items", len(lines), "total", total.StringFixed(2), "failed", len(res.Failed))
	return res, nil
}

func (s *Service) fold(ctx context.Context, userID int64, it model.ShoppingItem) error {
	if _, err := s.reconciler.Reconcile(ctx, userID, it.Name, it.Quantity, it.Category); err != nil {
		return err
	}
	return s.shopping.Delete(ctx, userID, it.ID)
}
