package model

// Category is an entry in the fixed category enumeration used for budget
// editing and display. Transactions may reference ids outside this set.
type Category struct {
	ID    string
	Label string
}

// Canonical category identifiers.
const (
	CategoryFood          = "Food"
	CategoryDailyLiving   = "DailyLiving"
	CategoryHousing       = "Housing"
	CategoryTransport     = "Transport"
	CategoryEntertainment = "Entertainment"
	CategoryShopping      = "Shopping"
	CategoryOther         = "Other"
)

var categories = []Category{
	{ID: CategoryFood, Label: "Food & Dining"},
	{ID: CategoryDailyLiving, Label: "Daily Living"},
	{ID: CategoryHousing, Label: "Housing"},
	{ID: CategoryTransport, Label: "Transport & Fuel"},
	{ID: CategoryEntertainment, Label: "Entertainment"},
	{ID: CategoryShopping, Label: "Shopping"},
	{ID: CategoryOther, Label: "Other"},
}

// Categories returns the canonical category list in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory finds a canonical category by id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryLabel returns the display label for id, falling back to the raw id.
func CategoryLabel(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Label
	}
	return id
}

// IsKnownCategory reports whether id belongs to the canonical enumeration.
func IsKnownCategory(id string) bool {
	_, ok := LookupCategory(id)
	return ok
}
