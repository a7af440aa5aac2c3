package catalog

import "strings"

// Category is the fixed set of product types the catalog recognizes.
type Category string

const (
	CategoryPhoneCases  Category = "Phone Cases"
	CategoryEarbuds     Category = "Earbuds"
	CategoryChargers    Category = "Chargers"
	CategoryPowerbank   Category = "Powerbank"
	CategoryHeadphones  Category = "Headphones"
	CategoryAdapters    Category = "Adapters"
	CategoryAccessories Category = "Accessories"
)

// AllCategories lists every recognized category.
var AllCategories = []Category{
	CategoryPhoneCases,
	CategoryEarbuds,
	CategoryChargers,
	CategoryPowerbank,
	CategoryHeadphones,
	CategoryAdapters,
	CategoryAccessories,
}

// IsValid returns true if the category is one of the recognized values.
func (c Category) IsValid() bool {
	for _, v := range AllCategories {
		if c == v {
			return true
		}
	}
	return false
}

// String returns the string representation of the category.
func (c Category) String() string {
	return string(c)
}

// categorySlugs maps supplier category slugs to catalog categories.
var categorySlugs = map[string]Category{
	"phone-cases": CategoryPhoneCases,
	"earbuds":     CategoryEarbuds,
	"chargers":    CategoryChargers,
	"powerbank":   CategoryPowerbank,
	"headphones":  CategoryHeadphones,
	"adapters":    CategoryAdapters,
	"accessories": CategoryAccessories,
}

// CategoryFromSlug resolves a supplier category slug to a catalog category.
// The second return reports whether the slug was recognized.
func CategoryFromSlug(slug string) (Category, bool) {
	c, ok := categorySlugs[strings.ToLower(slug)]
	return c, ok
}

// categoryRule matches keywords in a product's text against a category.
// Rules are evaluated in order; the first match wins.
type categoryRule struct {
	keywords []string
	category Category
}

var categoryRules = []categoryRule{
	{[]string{"case", "cover"}, CategoryPhoneCases},
	{[]string{"earbud", "airpod"}, CategoryEarbuds},
	{[]string{"charger", "charging"}, CategoryChargers},
	{[]string{"powerbank", "power bank"}, CategoryPowerbank},
	{[]string{"headphone", "headset"}, CategoryHeadphones},
	{[]string{"adapter"}, CategoryAdapters},
}

// Categorize classifies a product into exactly one category using
// case-insensitive substring matching over title and description.
// Products matching no rule land in Accessories.
func Categorize(title, description string) Category {
	text := strings.ToLower(title + " " + description)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(text, kw) {
				return rule.category
			}
		}
	}
	return CategoryAccessories
}
