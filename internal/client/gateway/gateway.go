package gateway

import (
	"context"
	"encoding/json"

	"github.com/dmitrijs2005/repslog/internal/client/models"
)

// Gateway talks to the remote GraphQL data API.
type Gateway interface {
	Query(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error)
	Mutate(ctx context.Context, document string, vars map[string]any, decodePath string) (json.RawMessage, error)

	ListProperties(ctx context.Context) ([]models.Property, error)
	GetProperty(ctx context.Context, id string) (models.Property, error)
	CreateProperty(ctx context.Context, in PropertyInput) (models.Property, error)
	UpdateProperty(ctx context.Context, in PropertyInput) (models.Property, error)
	DeleteProperty(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (models.Category, error)

	ListEntries(ctx context.Context) ([]models.Entry, error)
}

// TokenSource supplies the bearer token for each request. An empty token
// sends the request without an Authorization header.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// PropertyInput is the createProperty/updateProperty input. Server-managed
// timestamps are not part of it.
type PropertyInput struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Nickname     *string             `json:"nickname,omitempty"`
	Type         models.PropertyType `json:"type"`
	Address1     string              `json:"address1"`
	Address2     *string             `json:"address2,omitempty"`
	City         string              `json:"city"`
	State        string              `json:"state"`
	Zip          string              `json:"zip"`
	AcquiredDate *models.Date        `json:"acquiredDate,omitempty"`
	IsActive     *bool               `json:"isActive,omitempty"`
	Notes        *string             `json:"notes,omitempty"`
}

// updateVars renders the input for updateProperty. Unset optional fields
// are sent as null so a cleared value reaches the server; isActive is left
// out when unset.
func (in PropertyInput) updateVars() map[string]any {
	vars := map[string]any{
		"id":           in.ID,
		"name":         in.Name,
		"nickname":     in.Nickname,
		"type":         in.Type,
		"address1":     in.Address1,
		"address2":     in.Address2,
		"city":         in.City,
		"state":        in.State,
		"zip":          in.Zip,
		"acquiredDate": in.AcquiredDate,
		"notes":        in.Notes,
	}
	if in.IsActive != nil {
		vars["isActive"] = *in.IsActive
	}
	return vars
}

// PropertyInputOf copies the mutable fields of p.
func PropertyInputOf(p models.Property) PropertyInput {
	return PropertyInput{
		ID:           p.ID,
		Name:         p.Name,
		Nickname:     p.Nickname,
		Type:         p.Type,
		Address1:     p.Address1,
		Address2:     p.Address2,
		City:         p.City,
		State:        p.State,
		Zip:          p.Zip,
		AcquiredDate: p.AcquiredDate,
		IsActive:     p.IsActive,
		Notes:        p.Notes,
	}
}
