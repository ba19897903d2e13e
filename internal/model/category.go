package model

// Category groups pantry items, shopping items and recipes.
type Category string

const (
	CategoryFood      Category = "Alimentari"
	CategoryHome      Category = "Casa"
	CategoryDetergent Category = "Detersivi"
	CategoryOther     Category = "Altro"
)

// DefaultCategory is assigned when no category is given.
const DefaultCategory = CategoryOther

var Categories = []Category{CategoryFood, CategoryHome, CategoryDetergent, CategoryOther}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory returns the category named s, DefaultCategory for an empty
// string, and false for anything unknown.
func ParseCategory(s string) (Category, bool) {
	if s == "" {
		return DefaultCategory, true
	}
	c := Category(s)
	return c, c.Valid()
}
