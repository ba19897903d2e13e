package model

import "time"

type Recipe struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	Name         string    `json:"name"`
	Ingredients  string    `json:"ingredients"`
	Instructions string    `json:"instructions"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
}
