package model

import "time"

// MealSlot names one of the five meals in a day.
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotSnack1    MealSlot = "snack1"
	SlotLunch     MealSlot = "lunch"
	SlotSnack2    MealSlot = "snack2"
	SlotDinner    MealSlot = "dinner"
)

var MealSlots = []MealSlot{SlotBreakfast, SlotSnack1, SlotLunch, SlotSnack2, SlotDinner}

func ParseMealSlot(s string) (MealSlot, bool) {
	for _, slot := range MealSlots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// MealPlan is one calendar day of meals. Date is truncated to midnight.
type MealPlan struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Date      time.Time `json:"date"`
	Breakfast *string   `json:"breakfast"`
	Snack1    *string   `json:"snack1"`
	Lunch     *string   `json:"lunch"`
	Snack2    *string   `json:"snack2"`
	Dinner    *string   `json:"dinner"`
}

// Slot returns a pointer to the field backing slot.
func (m *MealPlan) Slot(slot MealSlot) **string {
	switch slot {
	case SlotBreakfast:
		return &m.Breakfast
	case SlotSnack1:
		return &m.Snack1
	case SlotLunch:
		return &m.Lunch
	case SlotSnack2:
		return &m.Snack2
	case SlotDinner:
		return &m.Dinner
	}
	return nil
}

// Empty reports whether no slot is filled.
func (m *MealPlan) Empty() bool {
	for _, slot := range MealSlots {
		if p := *m.Slot(slot); p != nil && *p != "" {
			return false
		}
	}
	return true
}
