package domain

import (
	"sort"
	"strings"
)

// Catalog maps category names to their subcategories. Lookups are
// case-insensitive and resolve to the canonically cased names so that
// stored records stay consistent regardless of how the user typed them.
type Catalog struct {
	subcategories map[string][]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{subcategories: make(map[string][]string)}
}

// Put registers a category with its subcategories, replacing any
// existing entry with the same name.
func (c *Catalog) Put(category string, subcategories []string) {
	c.subcategories[category] = subcategories
}

// Len returns the number of categories.
func (c *Catalog) Len() int {
	return len(c.subcategories)
}

// Categories returns the category names sorted for deterministic output.
func (c *Catalog) Categories() []string {
	names := make([]string, 0, len(c.subcategories))
	for name := range c.subcategories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Subcategories returns the subcategories of a category, matched
// case-insensitively.
func (c *Catalog) Subcategories(category string) []string {
	for name, subs := range c.subcategories {
		if strings.EqualFold(name, category) {
			return subs
		}
	}
	return nil
}

// CanonicalCategory resolves a category name to its stored casing.
// The second result is false when the category does not exist.
func (c *Catalog) CanonicalCategory(category string) (string, bool) {
	for name := range c.subcategories {
		if strings.EqualFold(name, category) {
			return name, true
		}
	}
	return "", false
}

// CanonicalSubcategory resolves a subcategory under the given category
// to its stored casing. The second result is false when either name is
// unknown.
func (c *Catalog) CanonicalSubcategory(category, subcategory string) (string, bool) {
	for _, sub := range c.Subcategories(category) {
		if strings.EqualFold(sub, subcategory) {
			return sub, true
		}
	}
	return "", false
}
