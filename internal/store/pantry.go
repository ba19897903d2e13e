package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
)

// NameKey is the case-insensitive identity of a pantry item name.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

func scanPantryItem(scanner interface{ Scan(...any) error }) (*model.PantryItem, error) {
	var p model.PantryItem
	var category string
	err := scanner.Scan(&p.ID, &p.UserID, &p.Name, &p.Quantity, &category, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Category = model.Category(category)
	return &p, nil
}

const pantryCols = `id, user_id, name, quantity, category, created_at`

func (s *PantryStore) List(ctx context.Context, userID int64) ([]model.PantryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+pantryCols+` FROM pantry_items WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list pantry items: %w", err)
	}
	defer rows.Close()

	var items []model.PantryItem
	for rows.Next() {
		p, err := scanPantryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

func (s *PantryStore) GetByID(ctx context.Context, userID, id int64) (*model.PantryItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+pantryCols+` FROM pantry_items WHERE user_id = ? AND id = ?`, userID, id)
	p, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return p, nil
}

// FindByName looks up the pantry item whose name matches name ignoring case
// and surrounding whitespace.
func (s *PantryStore) FindByName(ctx context.Context, userID int64, name string) (*model.PantryItem, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+pantryCols+` FROM pantry_items WHERE user_id = ? AND name_key = ?`,
		userID, NameKey(name),
	)
	p, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find pantry item: %w", err)
	}
	return p, nil
}

func (s *PantryStore) Create(ctx context.Context, userID int64, name, quantity string, category model.Category) (*model.PantryItem, error) {
	name = strings.TrimSpace(name)
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO pantry_items (user_id, name, name_key, quantity, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, NameKey(name), quantity, string(category), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert pantry item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

// Update overwrites quantity and category. It returns nil when the item does
// not exist.
func (s *PantryStore) Update(ctx context.Context, userID, id int64, quantity string, category model.Category) (*model.PantryItem, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE pantry_items SET quantity = ?, category = ? WHERE user_id = ? AND id = ?`,
		quantity, string(category), userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update pantry item: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *PantryStore) Delete(ctx context.Context, userID, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pantry_items WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}

// MoveToShopping copies a pantry item onto the shopping list and removes it
// from the pantry in one transaction. It returns nil when the item does not
// exist.
func (s *PantryStore) MoveToShopping(ctx context.Context, userID, id int64) (*model.ShoppingItem, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+pantryCols+` FROM pantry_items WHERE user_id = ? AND id = ?`, userID, id)
	p, err := scanPantryItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO shopping_items (user_id, name, quantity, category, checked, created_at) VALUES (?, ?, ?, ?, 0, ?)`,
		userID, p.Name, p.Quantity, string(p.Category), time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	shoppingID, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pantry_items WHERE id = ?`, p.ID); err != nil {
		return nil, fmt.Errorf("delete pantry item: %w", err)
	}

	row = tx.QueryRowContext(ctx, `SELECT `+shoppingCols+` FROM shopping_items WHERE id = ?`, shoppingID)
	item, err := scanShoppingItem(row)
	if err != nil {
		return nil, fmt.Errorf("get shopping item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return item, nil
}
