// Package ledger holds the month and money rules shared by budget, history
// and checkout.
package ledger

import (
	"regexp"
	"strings"
	"time"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/quantity"
	"github.com/shopspring/decimal"
)

// MonthLayout is the key format of budgets and history rows.
const MonthLayout = "2006-01"

// MonthOf returns the month key of t.
func MonthOf(t time.Time) string {
	return t.Format(MonthLayout)
}

// ParseMonth validates a YYYY-MM month key.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return "", apperr.Validation("month", "must be YYYY-MM")
	}
	return t.Format(MonthLayout), nil
}

// ParsePrice reads the number a price typed by the user starts with, so
// "1,50 €" is 1.5. Text without a leading number counts as zero.
func ParsePrice(s string) decimal.Decimal {
	prefix := quantity.LeadingNumber(s)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// amountPattern is a plain decimal: no sign, no exponent.
var amountPattern = regexp.MustCompile(`^\d+([.,]\d+)?$`)

// ParseAmount reads a money amount that must be valid and not negative.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, apperr.Validation(field, "is required")
	}
	if strings.HasPrefix(s, "-") {
		return decimal.Zero, apperr.Validation(field, "must not be negative")
	}
	if !amountPattern.MatchString(s) {
		return decimal.Zero, apperr.Validation(field, "must be a number")
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return decimal.Zero, apperr.Validation(field, "must be a number")
	}
	return d, nil
}

// Level describes how much of the budget has been spent.
type Level string

const (
	LevelOK       Level = "ok"
	LevelWarning  Level = "warning"
	LevelCritical Level = "critical"
)

// Summary is a budget with its derived figures.
type Summary struct {
	Month      string          `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Used       decimal.Decimal `json:"used"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage int             `json:"percentage"`
	Level      Level           `json:"level"`
}

var (
	hundred    = decimal.NewFromInt(100)
	warningAt  = decimal.NewFromInt(70)
	criticalAt = decimal.NewFromInt(90)
)

// Summarize derives remaining, percentage and level for month. A nil budget
// is treated as zero amount and zero used.
func Summarize(month string, b *model.Budget) Summary {
	s := Summary{Month: month, Amount: decimal.Zero, Used: decimal.Zero}
	if b != nil {
		s.Amount = b.Amount
		s.Used = b.Used
	}
	s.Remaining = s.Amount.Sub(s.Used)

	pct := decimal.Zero
	if s.Amount.IsPositive() {
		pct = s.Used.Div(s.Amount).Mul(hundred)
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		s.Percentage = int(pct.Round(0).IntPart())
	}

	// Levels use the exact share; Percentage is only for display.
	switch {
	case pct.GreaterThanOrEqual(criticalAt):
		s.Level = LevelCritical
	case pct.GreaterThanOrEqual(warningAt):
		s.Level = LevelWarning
	default:
		s.Level = LevelOK
	}
	return s
}

// HistoryTotal sums the prices of items.
func HistoryTotal(items []model.HistoryItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price)
	}
	return total
}
