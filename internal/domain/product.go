package domain

import (
	"strings"
	"time"
)

const (
	// PriceLimit is the exclusive upper bound for product prices.
	PriceLimit = 1000000.0

	// CategoryFood and CategoryBeverage are the categories that carry
	// the additional food attribute set.
	CategoryFood     = "food"
	CategoryBeverage = "beverages"
)

// FoodDetails holds the attributes present only on food-type products.
type FoodDetails struct {
	Expiry      *time.Time
	Ingredients string
	Storage     string
	Allergen    string
}

// Product represents a catalog entry. Food is non-nil exactly when the
// category is a food-type category; switching between the two variants
// happens in place and preserves the identity and numeric fields.
type Product struct {
	ID          int
	Name        string
	Brand       string
	Description string
	Price       float64
	MemberPrice float64
	Quantity    int
	Category    string
	Subcategory string
	Food        *FoodDetails
}

// IsFoodCategory reports whether a category name requires food details.
func IsFoodCategory(category string) bool {
	return strings.EqualFold(category, CategoryFood) ||
		strings.EqualFold(category, CategoryBeverage)
}

// IsFood reports whether the product is a food-type product.
func (p *Product) IsFood() bool {
	return IsFoodCategory(p.Category)
}

// SetCategory moves the product to a new category/subcategory pair,
// attaching the given food details when crossing into a food-type
// category and dropping them when leaving one.
func (p *Product) SetCategory(category, subcategory string, food *FoodDetails) {
	p.Category = category
	p.Subcategory = subcategory
	if IsFoodCategory(category) {
		if food != nil {
			p.Food = food
		}
	} else {
		p.Food = nil
	}
}
