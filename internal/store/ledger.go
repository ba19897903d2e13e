package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
	"github.com/shopspring/decimal"
)

// LedgerStore persists monthly budgets and the append-only purchase history.
type LedgerStore struct {
	db *sql.DB
}

func NewLedgerStore(db *sql.DB) *LedgerStore {
	return &LedgerStore{db: db}
}

func scanBudget(scanner interface{ Scan(...any) error }) (*model.Budget, error) {
	var b model.Budget
	err := scanner.Scan(&b.ID, &b.UserID, &b.Month, &b.Amount, &b.Used)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const budgetCols = `id, user_id, month, amount, used`

func scanHistoryItem(scanner interface{ Scan(...any) error }) (*model.HistoryItem, error) {
	var h model.HistoryItem
	var category string
	err := scanner.Scan(&h.ID, &h.UserID, &h.Month, &h.Product, &h.Quantity, &category, &h.Price, &h.Date)
	if err != nil {
		return nil, err
	}
	h.Category = model.Category(category)
	return &h, nil
}

const historyCols = `id, user_id, month, product, quantity, category, price, date`

func (s *LedgerStore) GetBudget(ctx context.Context, userID int64, month string) (*model.Budget, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+budgetCols+` FROM budgets WHERE user_id = ? AND month = ?`, userID, month)
	b, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// SetAmount upserts the month's budget amount, keeping used as it is.
func (s *LedgerStore) SetAmount(ctx context.Context, userID int64, month string, amount decimal.Decimal) (*model.Budget, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, month, amount, used) VALUES (?, ?, ?, '0')
		 ON CONFLICT(user_id, month) DO UPDATE SET amount = excluded.amount`,
		userID, month, amount.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("set budget amount: %w", err)
	}
	return s.GetBudget(ctx, userID, month)
}

// SetUsed upserts the month's used total directly, independent of history.
func (s *LedgerStore) SetUsed(ctx context.Context, userID int64, month string, used decimal.Decimal) (*model.Budget, error) {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (user_id, month, amount, used) VALUES (?, ?, '0', ?)
		 ON CONFLICT(user_id, month) DO UPDATE SET used = excluded.used`,
		userID, month, used.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("set budget used: %w", err)
	}
	return s.GetBudget(ctx, userID, month)
}

// RecordPurchases inserts one history row per line and adds total to the
// month's used amount, creating the budget with a zero amount when missing.
// Either every write lands or none does.
func (s *LedgerStore) RecordPurchases(ctx context.Context, userID int64, month string, lines []model.PurchaseLine, total decimal.Decimal, at time.Time) (*model.Budget, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, line := range lines {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO history_items (user_id, month, product, quantity, category, price, date) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			userID, month, line.Name, line.Quantity, string(line.Category), line.Price.String(), at.UTC(),
		); err != nil {
			return nil, fmt.Errorf("insert history item %q: %w", line.Name, err)
		}
	}

	row := tx.QueryRowContext(ctx, `SELECT `+budgetCols+` FROM budgets WHERE user_id = ? AND month = ?`, userID, month)
	b, err := scanBudget(row)
	switch {
	case err == sql.ErrNoRows:
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO budgets (user_id, month, amount, used) VALUES (?, ?, '0', ?)`,
			userID, month, total.String(),
		); err != nil {
			return nil, fmt.Errorf("insert budget: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("get budget: %w", err)
	default:
		if _, err := tx.ExecContext(ctx,
			`UPDATE budgets SET used = ? WHERE id = ?`,
			b.Used.Add(total).String(), b.ID,
		); err != nil {
			return nil, fmt.Errorf("update budget used: %w", err)
		}
	}

	row = tx.QueryRowContext(ctx, `SELECT `+budgetCols+` FROM budgets WHERE user_id = ? AND month = ?`, userID, month)
	b, err = scanBudget(row)
	if err != nil {
		return nil, fmt.Errorf("reload budget: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return b, nil
}

// History returns the month's purchases, most recent first.
func (s *LedgerStore) History(ctx context.Context, userID int64, month string) ([]model.HistoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+historyCols+` FROM history_items WHERE user_id = ? AND month = ? ORDER BY date DESC, id DESC`,
		userID, month,
	)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var items []model.HistoryItem
	for rows.Next() {
		h, err := scanHistoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan history item: %w", err)
		}
		items = append(items, *h)
	}
	return items, rows.Err()
}
