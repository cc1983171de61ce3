package models

// Category is the closed set of transaction categories known to the app.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryShopping      Category = "shopping"
	CategoryEntertainment Category = "entertainment"
	CategoryHealth        Category = "health"
	CategoryBills         Category = "bills"
	CategorySalary        Category = "salary"
	CategoryOther         Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryShopping,
	CategoryEntertainment,
	CategoryHealth,
	CategoryBills,
	CategorySalary,
	CategoryOther,
}

var categoryIcons = map[Category]string{
	CategoryFood:          "fork.knife",
	CategoryTransport:     "car.fill",
	CategoryShopping:      "cart.fill",
	CategoryEntertainment: "tv.fill",
	CategoryHealth:        "cross.case.fill",
	CategoryBills:         "doc.text.fill",
	CategorySalary:        "banknote.fill",
	CategoryOther:         "ellipsis.circle.fill",
}

// Icon returns the icon identifier the clients render for the category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryOther]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryIcons[c]
	return ok
}

// ParseCategory resolves a raw category string from storage or a client.
// Unrecognized values fall back to CategoryOther so a single bad record
// never fails a whole computation.
func ParseCategory(raw string) Category {
	c := Category(raw)
	if c.Valid() {
		return c
	}
	return CategoryOther
}
