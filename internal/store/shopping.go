package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
)

type ShoppingStore struct {
	db *sql.DB
}

func NewShoppingStore(db *sql.DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

func scanShoppingItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var category string
	var checked int
	err := scanner.Scan(&item.ID, &item.UserID, &item.Name, &item.Quantity, &category, &checked, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.Category = model.Category(category)
	item.Checked = checked != 0
	return &item, nil
}

const shoppingCols = `id, user_id, name, quantity, category, checked, created_at`

func (s *ShoppingStore) queryItems(ctx context.Context, query string, args ...any) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// List returns unchecked items before checked ones, newest first within each
// group.
func (s *ShoppingStore) List(ctx context.Context, userID int64) ([]model.ShoppingItem, error) {
	return s.queryItems(ctx,
		`SELECT `+shoppingCols+` FROM shopping_items WHERE user_id = ? ORDER BY checked ASC, created_at DESC, id DESC`,
		userID,
	)
}

func (s *ShoppingStore) ListChecked(ctx context.Context, userID int64) ([]model.ShoppingItem, error) {
	return s.queryItems(ctx,
		`SELECT `+shoppingCols+` FROM shopping_items WHERE user_id = ? AND checked = 1 ORDER BY created_at ASC, id ASC`,
		userID,
	)
}

func (s *ShoppingStore) GetByID(ctx context.Context, userID, id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+shoppingCols+` FROM shopping_items WHERE user_id = ? AND id = ?`, userID, id)
	item, err := scanShoppingItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping item: %w", err)
	}
	return item, nil
}

func (s *ShoppingStore) Create(ctx context.Context, userID int64, name, quantity string, category model.Category) (*model.ShoppingItem, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO shopping_items (user_id, name, quantity, category, checked, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		userID, strings.TrimSpace(name), quantity, string(category), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *ShoppingStore) Update(ctx context.Context, userID, id int64, name, quantity string, category model.Category) (*model.ShoppingItem, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET name = ?, quantity = ?, category = ? WHERE user_id = ? AND id = ?`,
		strings.TrimSpace(name), quantity, string(category), userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update shopping item: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *ShoppingStore) SetChecked(ctx context.Context, userID, id int64, checked bool) (*model.ShoppingItem, error) {
	v := 0
	if checked {
		v = 1
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE shopping_items SET checked = ? WHERE user_id = ? AND id = ?`,
		v, userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("set checked: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *ShoppingStore) Delete(ctx context.Context, userID, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM shopping_items WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return nil
}
