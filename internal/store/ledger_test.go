package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
	"github.com/shopspring/decimal"
)

func TestBudgetSetAmountIdempotent(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ls := NewLedgerStore(db)
	ctx := context.Background()

	missing, err := ls.GetBudget(ctx, userID, "2026-10")
	if err != nil {
		t.Fatalf("get budget: %v", err)
	}
	if missing != nil {
		t.Error("expected nil budget before first write")
	}

	for i := 0; i < 2; i++ {
		b, err := ls.SetAmount(ctx, userID, "2026-10", decimal.RequireFromString("400"))
		if err != nil {
			t.Fatalf("set amount: %v", err)
		}
		if !b.Amount.Equal(decimal.RequireFromString("400")) {
			t.Errorf("amount = %s, want 400", b.Amount)
		}
		if !b.Used.IsZero() {
			t.Errorf("used = %s, want 0", b.Used)
		}
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM budgets WHERE user_id = ?`, userID).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("budget rows = %d, want 1", count)
	}
}

func TestBudgetSetUsedKeepsAmount(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ls := NewLedgerStore(db)
	ctx := context.Background()

	if _, err := ls.SetAmount(ctx, userID, "2026-10", decimal.RequireFromString("300")); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	b, err := ls.SetUsed(ctx, userID, "2026-10", decimal.RequireFromString("12.40"))
	if err != nil {
		t.Fatalf("set used: %v", err)
	}
	if !b.Amount.Equal(decimal.RequireFromString("300")) {
		t.Errorf("amount = %s, want 300", b.Amount)
	}
	if !b.Used.Equal(decimal.RequireFromString("12.4")) {
		t.Errorf("used = %s, want 12.4", b.Used)
	}
}

func TestRecordPurchasesCreatesBudget(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ls := NewLedgerStore(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

	lines := []model.PurchaseLine{
		{Name: "Pane", Quantity: "1 pz", Category: model.CategoryFood, Price: decimal.RequireFromString("1.50")},
		{Name: "Latte", Quantity: "1 L", Category: model.CategoryFood, Price: decimal.RequireFromString("2.00")},
	}
	b, err := ls.RecordPurchases(ctx, userID, "2026-10", lines, decimal.RequireFromString("3.50"), at)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !b.Amount.IsZero() {
		t.Errorf("amount = %s, want 0", b.Amount)
	}
	if !b.Used.Equal(decimal.RequireFromString("3.5")) {
		t.Errorf("used = %s, want 3.5", b.Used)
	}

	hist, err := ls.History(ctx, userID, "2026-10")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if n := len(hist); n != 2 {
		t.Errorf("history count = %d, want 2", n)
	}
}

func TestRecordPurchasesAddsToExistingBudget(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ls := NewLedgerStore(db)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 18, 0, 0, 0, time.UTC)

	if _, err := ls.SetAmount(ctx, userID, "2026-10", decimal.RequireFromString("200")); err != nil {
		t.Fatalf("set amount: %v", err)
	}
	if _, err := ls.SetUsed(ctx, userID, "2026-10", decimal.RequireFromString("10")); err != nil {
		t.Fatalf("set used: %v", err)
	}

	lines := []model.PurchaseLine{{Name: "Sapone", Quantity: "1 pz", Category: model.CategoryDetergent, Price: decimal.RequireFromString("2.10")}}
	b, err := ls.RecordPurchases(ctx, userID, "2026-10", lines, decimal.RequireFromString("5"), at)
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if !b.Amount.Equal(decimal.RequireFromString("200")) {
		t.Errorf("amount = %s, want 200", b.Amount)
	}
	if !b.Used.Equal(decimal.RequireFromString("15")) {
		t.Errorf("used = %s, want 15", b.Used)
	}
}

func TestHistoryOrderAndMonthScope(t *testing.T) {
	db, userID := setupStoreTestDB(t)
	ls := NewLedgerStore(db)
	ctx := context.Background()

	first := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	second := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	lineA := []model.PurchaseLine{{Name: "A", Quantity: "1 pz", Category: model.CategoryOther, Price: decimal.Zero}}
	lineB := []model.PurchaseLine{{Name: "B", Quantity: "1 pz", Category: model.CategoryOther, Price: decimal.Zero}}
	lineC := []model.PurchaseLine{{Name: "C", Quantity: "1 pz", Category: model.CategoryOther, Price: decimal.Zero}}

	if _, err := ls.RecordPurchases(ctx, userID, "2026-10", lineA, decimal.Zero, first); err != nil {
		t.Fatalf("record A: %v", err)
	}
	if _, err := ls.RecordPurchases(ctx, userID, "2026-10", lineB, decimal.Zero, second); err != nil {
		t.Fatalf("record B: %v", err)
	}
	if _, err := ls.RecordPurchases(ctx, userID, "2026-09", lineC, decimal.Zero, first.AddDate(0, -1, 0)); err != nil {
		t.Fatalf("record C: %v", err)
	}

	items, err := ls.History(ctx, userID, "2026-10")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Product != "B" || items[1].Product != "A" {
		t.Errorf("order = [%s %s], want [B A]", items[0].Product, items[1].Product)
	}
	if items[0].Price.String() != "0" {
		t.Errorf("price = %s, want 0", items[0].Price)
	}
}
