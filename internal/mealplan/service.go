package mealplan

import (
	"context"
	"strings"
	"time"

	"github.com/dukerupert/dispensa/internal/apperr"
	"github.com/dukerupert/dispensa/internal/model"
	"github.com/dukerupert/dispensa/internal/store"
)

// Day is one column of the weekly grid. Meals is nil when nothing is planned.
type Day struct {
	Date  string          `json:"date"`
	Meals *model.MealPlan `json:"meals"`
}

// MealSlotUpdate sets the text of one slot on one day. Empty text clears it.
type MealSlotUpdate struct {
	Date time.Time
	Slot model.MealSlot
	Text string
}

type Service struct {
	store *store.MealPlanStore
	loc   *time.Location
}

func NewService(ms *store.MealPlanStore, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: ms, loc: loc}
}

func (s *Service) Location() *time.Location { return s.loc }

// Week returns Monday through Sunday of the week containing date.
func (s *Service) Week(ctx context.Context, userID int64, date time.Time) ([7]Day, error) {
	var week [7]Day
	start := WeekStart(date, s.loc)
	for i := range week {
		week[i].Date = AddDays(start, i).Format(store.DayLayout)
	}

	plans, err := s.store.ListRange(ctx, userID, start, AddDays(start, 6))
	if err != nil {
		return week, apperr.Store("list meal plans", err)
	}
	for i := range plans {
		week[DayOffset(plans[i].Date)].Meals = &plans[i]
	}
	return week, nil
}

func (s *Service) SetSlot(ctx context.Context, userID int64, u MealSlotUpdate) (*model.MealPlan, error) {
	if _, ok := model.ParseMealSlot(string(u.Slot)); !ok {
		return nil, apperr.Validation("slot", "unknown meal slot "+string(u.Slot))
	}
	var text *string
	if t := strings.TrimSpace(u.Text); t != "" {
		text = &t
	}
	plan, err := s.store.SetSlot(ctx, userID, Midnight(u.Date, s.loc), u.Slot, text)
	if err != nil {
		return nil, apperr.Store("set meal slot", err)
	}
	return plan, nil
}

// DuplicateWeek copies every planned day of source's week onto the same
// weekday of target's week, replacing all five slots there. It returns the
// number of days written.
func (s *Service) DuplicateWeek(ctx context.Context, userID int64, source, target time.Time) (int, error) {
	from := WeekStart(source, s.loc)
	to := WeekStart(target, s.loc)

	plans, err := s.store.ListRange(ctx, userID, from, AddDays(from, 6))
	if err != nil {
		return 0, apperr.Store("list meal plans", err)
	}

	copied := 0
	for _, p := range plans {
		if p.Empty() {
			continue
		}
		day := AddDays(to, DayOffset(p.Date))
		if err := s.store.Replace(ctx, userID, day, p); err != nil {
			return copied, apperr.Store("copy meal plan", err)
		}
		copied++
	}
	return copied, nil
}
