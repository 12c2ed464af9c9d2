// Package models defines the records exchanged with the repslog data API
// and the local helpers around them. JSON field names match the remote
// schema exactly.
package models

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/common"
)

// PropertyType classifies how a property is rented.
type PropertyType string

const (
	PropertyTypeLongTerm  PropertyType = "LTR"
	PropertyTypeShortTerm PropertyType = "STR"
)

func (t PropertyType) Valid() bool {
	return t == PropertyTypeLongTerm || t == PropertyTypeShortTerm
}

// Property is a rental the user owns or manages.
type Property struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Nickname     *string      `json:"nickname,omitempty"`
	Type         PropertyType `json:"type"`
	Address1     string       `json:"address1"`
	Address2     *string      `json:"address2,omitempty"`
	City         string       `json:"city"`
	State        string       `json:"state"`
	Zip          string       `json:"zip"`
	AcquiredDate *Date        `json:"acquiredDate,omitempty"`
	IsActive     *bool        `json:"isActive,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	CreatedAt    *time.Time   `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time   `json:"updatedAt,omitempty"`
}

// Validate reports missing required fields and an unknown type.
func (p Property) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"name", p.Name},
		{"address1", p.Address1},
		{"city", p.City},
		{"state", p.State},
		{"zip", p.Zip},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return common.Validation("property is missing %s", strings.Join(missing, ", "))
	}
	if !p.Type.Valid() {
		return common.Validation("property type must be %s or %s, got %q", PropertyTypeLongTerm, PropertyTypeShortTerm, p.Type)
	}
	return nil
}

// DisplayName prefers the nickname.
func (p Property) DisplayName() string {
	if p.Nickname != nil && strings.TrimSpace(*p.Nickname) != "" {
		return *p.Nickname
	}
	return p.Name
}

// FilterPropertiesByType returns the properties of type t, in order.
func FilterPropertiesByType(properties []Property, t PropertyType) []Property {
	out := make([]Property, 0, len(properties))
	for _, p := range properties {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// OptionalString trims s and returns nil when it is empty.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
