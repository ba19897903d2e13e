// Package pantry merges purchased or manually added goods into the pantry
// inventory and derives stock levels from its quantity strings.
package pantry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/quantity"
	"github.com/dukerupert/dispensa/internal/store"
)

// DefaultQuantity is stored when an item is added without a quantity.
const DefaultQuantity = "1 " + quantity.DefaultUnit

// Reconciler adds goods to the pantry, summing into an existing item with
// the same name instead of creating a duplicate.
type Reconciler struct {
	store *store.PantryStore
	// StrictUnits refuses to sum quantities whose units differ.
	StrictUnits bool
	logger      *slog.Logger
}

func NewReconciler(ps *store.PantryStore, strictUnits bool, logger *slog.Logger) *Reconciler {
	return &Reconciler{store: ps, StrictUnits: strictUnits, logger: logger}
}

// Reconcile records qty of name in the pantry. An existing item with the same
// name (ignoring case) gets the quantities summed in its own unit; its
// category is only replaced when it is still the default one.
func (r *Reconciler) Reconcile(ctx context.Context, userID int64, name, qty string, category model.Category) (*model.PantryItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}
	qty = strings.TrimSpace(qty)
	if qty == "" {
		qty = DefaultQuantity
	}
	if category == "" {
		category = model.DefaultCategory
	}
	if !category.Valid() {
		return nil, apperr.Validation("category", fmt.Sprintf("unknown category %q", category))
	}

	existing, err := r.store.FindByName(ctx, userID, name)
	if err != nil {
		return nil, apperr.Store("find pantry item", err)
	}

	if existing == nil {
		item, err := r.store.Create(ctx, userID, name, qty, category)
		if err != nil {
			return nil, apperr.Store("create pantry item", err)
		}
		return item, nil
	}

	have := quantity.Parse(existing.Quantity)
	add := quantity.Parse(qty)
	if !have.SameUnit(add) {
		if r.StrictUnits {
			return nil, &apperr.ValidationError{
				Field:   "quantity",
				Message: fmt.Sprintf("cannot add %s to %s of %s", add, existing.Quantity, existing.Name),
				Err:     apperr.ErrUnitMismatch,
			}
		}
		r.logger.Warn("summing quantities with different units",
			"item", existing.Name, "have", existing.Quantity, "add", qty)
	}

	newCategory := existing.Category
	if existing.Category == model.DefaultCategory && category != model.DefaultCategory {
		newCategory = category
	}

	item, err := r.store.Update(ctx, userID, existing.ID, have.Add(add).String(), newCategory)
	if err != nil {
		return nil, apperr.Store("update pantry item", err)
	}
	if item == nil {
		return nil, apperr.NotFound("pantry item", existing.ID)
	}
	return item, nil
}
