package models

import (
	"strings"
	"time"
)

// DefaultCategoryNames are created, in this order, when a user has no categories.
var DefaultCategoryNames = []string{
	"Administrative",
	"Tenant Communication",
	"Property Maintenance",
	"Property Improvements",
}

type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	IsDefault *bool      `json:"isDefault,omitempty"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// NormalizeCategoryName trims surrounding whitespace.
func NormalizeCategoryName(name string) string {
	return strings.TrimSpace(name)
}

// SameName compares names case-insensitively after trimming.
func (c Category) SameName(name string) bool {
	return strings.EqualFold(NormalizeCategoryName(c.Name), NormalizeCategoryName(name))
}

// FindCategoryByName returns the first category whose name matches, skipping
// the category with id exclude.
func FindCategoryByName(categories []Category, name string, exclude string) (Category, bool) {
	for _, c := range categories {
		if c.ID == exclude {
			continue
		}
		if c.SameName(name) {
			return c, true
		}
	}
	return Category{}, false
}
