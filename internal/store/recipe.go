package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	err := scanner.Scan(&r.ID, &r.UserID, &r.Name, &r.Ingredients, &r.Instructions, &r.Category, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const recipeCols = `id, user_id, name, ingredients, instructions, category, created_at`

func (s *RecipeStore) List(ctx context.Context, userID int64) ([]model.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recipeCols+` FROM recipes WHERE user_id = ? ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

func (s *RecipeStore) GetByID(ctx context.Context, userID, id int64) (*model.Recipe, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recipeCols+` FROM recipes WHERE user_id = ? AND id = ?`, userID, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) Create(ctx context.Context, userID int64, name, ingredients, instructions, category string) (*model.Recipe, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO recipes (user_id, name, ingredients, instructions, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		userID, name, ingredients, instructions, category, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *RecipeStore) Update(ctx context.Context, userID, id int64, name, ingredients, instructions, category string) (*model.Recipe, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE recipes SET name = ?, ingredients = ?, instructions = ?, category = ? WHERE user_id = ? AND id = ?`,
		name, ingredients, instructions, category, userID, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(ctx, userID, id)
}

func (s *RecipeStore) Delete(ctx context.Context, userID, id int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE user_id = ? AND id = ?`, userID, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
