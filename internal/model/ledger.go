package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID     int64           `json:"id"`
	UserID int64           `json:"-"`
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
	Used   decimal.Decimal `json:"used"`
}

// HistoryItem is one purchased line. Rows are append-only.
type HistoryItem struct {
	ID       int64           `json:"id"`
	UserID   int64           `json:"-"`
	Month    string          `json:"month"`
	Product  string          `json:"product"`
	Quantity string          `json:"quantity"`
	Category Category        `json:"category"`
	Price    decimal.Decimal `json:"price"`
	Date     time.Time       `json:"date"`
}

// PurchaseLine is the input for a history row produced by checkout.
type PurchaseLine struct {
	Name     string
	Quantity string
	Category Category
	Price    decimal.Decimal
}
