package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/dispensa/internal/model"
)

// DayLayout is how calendar days are stored.
const DayLayout = "2006-01-02"

var slotColumns = map[model.MealSlot]string{
	model.SlotBreakfast: "breakfast",
	model.SlotSnack1:    "snack1",
	model.SlotLunch:     "lunch",
	model.SlotSnack2:    "snack2",
	model.SlotDinner:    "dinner",
}

// MealPlanStore keeps one row per user and calendar day. Days are stored as
// DayLayout strings and read back as midnight in loc.
type MealPlanStore struct {
	db  *sql.DB
	loc *time.Location
}

func NewMealPlanStore(db *sql.DB, loc *time.Location) *MealPlanStore {
	if loc == nil {
		loc = time.Local
	}
	return &MealPlanStore{db: db, loc: loc}
}

func (s *MealPlanStore) scanMealPlan(scanner interface{ Scan(...any) error }) (*model.MealPlan, error) {
	var m model.MealPlan
	var day string
	var breakfast, snack1, lunch, snack2, dinner sql.NullString
	err := scanner.Scan(&m.ID, &m.UserID, &day, &breakfast, &snack1, &lunch, &snack2, &dinner)
	if err != nil {
		return nil, err
	}
	m.Date, err = time.ParseInLocation(DayLayout, day, s.loc)
	if err != nil {
		return nil, fmt.Errorf("parse meal plan date %q: %w", day, err)
	}
	m.Breakfast = nullStringPtr(breakfast)
	m.Snack1 = nullStringPtr(snack1)
	m.Lunch = nullStringPtr(lunch)
	m.Snack2 = nullStringPtr(snack2)
	m.Dinner = nullStringPtr(dinner)
	return &m, nil
}

func nullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

const mealPlanCols = `id, user_id, date, breakfast, snack1, lunch, snack2, dinner`

func (s *MealPlanStore) day(t time.Time) string {
	return t.In(s.loc).Format(DayLayout)
}

// ListRange returns rows whose day falls within [from, to], ordered by day.
func (s *MealPlanStore) ListRange(ctx context.Context, userID int64, from, to time.Time) ([]model.MealPlan, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+mealPlanCols+` FROM meal_plans WHERE user_id = ? AND date >= ? AND date <= ? ORDER BY date ASC`,
		userID, s.day(from), s.day(to),
	)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []model.MealPlan
	for rows.Next() {
		m, err := s.scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, *m)
	}
	return plans, rows.Err()
}

func (s *MealPlanStore) GetByDate(ctx context.Context, userID int64, date time.Time) (*model.MealPlan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+mealPlanCols+` FROM meal_plans WHERE user_id = ? AND date = ?`,
		userID, s.day(date),
	)
	m, err := s.scanMealPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return m, nil
}

// SetSlot writes one slot of a day, creating the day with only that slot
// filled when it does not exist. A nil text clears the slot.
func (s *MealPlanStore) SetSlot(ctx context.Context, userID int64, date time.Time, slot model.MealSlot, text *string) (*model.MealPlan, error) {
	col, ok := slotColumns[slot]
	if !ok {
		return nil, fmt.Errorf("unknown meal slot %q", slot)
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (user_id, date, `+col+`) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET `+col+` = excluded.`+col,
		userID, s.day(date), nullString(text),
	)
	if err != nil {
		return nil, fmt.Errorf("set meal slot: %w", err)
	}
	return s.GetByDate(ctx, userID, date)
}

// Replace writes all five slots of plan at date, overwriting any existing row.
func (s *MealPlanStore) Replace(ctx context.Context, userID int64, date time.Time, plan model.MealPlan) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO meal_plans (user_id, date, breakfast, snack1, lunch, snack2, dinner) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, date) DO UPDATE SET
		   breakfast = excluded.breakfast, snack1 = excluded.snack1, lunch = excluded.lunch,
		   snack2 = excluded.snack2, dinner = excluded.dinner`,
		userID, s.day(date),
		nullString(plan.Breakfast), nullString(plan.Snack1), nullString(plan.Lunch),
		nullString(plan.Snack2), nullString(plan.Dinner),
	)
	if err != nil {
		return fmt.Errorf("replace meal plan: %w", err)
	}
	return nil
}
