package store

import (
	"context"
	"testing"

	"github.com/dukerupert/dispensa/internal/model"
)

func TestShoppingCRUD(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ss := NewShoppingStore(db)
	ctx := context.Background()

	item, err := ss.Create(ctx, userID, "Pane", "1 pz", model.CategoryFood)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if item.Checked {
		t.Error("expected new item unchecked")
	}

	updated, err := ss.Update(ctx, userID, item.ID, "Pane integrale", "2 pz", model.CategoryFood)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Pane integrale" || updated.Quantity != "2 pz" {
		t.Errorf("updated = %+v", updated)
	}

	if err := ss.Delete(ctx, userID, item.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := ss.GetByID(ctx, userID, item.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestShoppingUpdateMissing(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ss := NewShoppingStore(db)

	got, err := ss.Update(context.Background(), userID, 99, "x", "1 pz", model.CategoryOther)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got != nil {
		t.Error("expected nil for missing item")
	}
}

func TestShoppingCheckedOrdering(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ss := NewShoppingStore(db)
	ctx := context.Background()

	a, _ := ss.Create(ctx, userID, "A", "1 pz", model.CategoryOther)
	b, _ := ss.Create(ctx, userID, "B", "1 pz", model.CategoryOther)
	c, _ := ss.Create(ctx, userID, "C", "1 pz", model.CategoryOther)

	checked, err := ss.SetChecked(ctx, userID, c.ID, true)
	if err != nil {
		t.Fatalf("set checked: %v", err)
	}
	if !checked.Checked {
		t.Error("expected checked")
	}
	if _, err := ss.SetChecked(ctx, userID, a.ID, true); err != nil {
		t.Fatalf("set checked: %v", err)
	}

	list, err := ss.List(ctx, userID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []int64{b.ID, c.ID, a.ID}
	if len(list) != len(want) {
		t.Fatalf("len = %d, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID != id {
			t.Errorf("list[%d] = %d, want %d", i, list[i].ID, id)
		}
	}

	onlyChecked, err := ss.ListChecked(ctx, userID)
	if err != nil {
		t.Fatalf("list checked: %v", err)
	}
	if len(onlyChecked) != 2 || onlyChecked[0].ID != a.ID || onlyChecked[1].ID != c.ID {
		t.Errorf("checked = %+v, want [A C] in insertion order", onlyChecked)
	}

	unchecked, err := ss.SetChecked(ctx, userID, a.ID, false)
	if err != nil {
		t.Fatalf("uncheck: %v", err)
	}
	if unchecked.Checked {
		t.Error("expected unchecked")
	}
}
