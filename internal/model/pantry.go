package model

import "time"

type PantryItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Category  Category  `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

type ShoppingItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity"`
	Category  Category  `json:"category"`
	Checked   bool      `json:"checked"`
	CreatedAt time.Time `json:"created_at"`
}
