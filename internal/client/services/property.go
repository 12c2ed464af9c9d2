package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/repslog/internal/client/gateway"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/store"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
	"github.com/google/uuid"
)

// PropertyService manages the user's properties.
type PropertyService interface {
	FetchProperties(ctx context.Context) error
	AddProperty(ctx context.Context, in PropertyInput) (models.Property, error)
	UpdateProperty(ctx context.Context, p models.Property) (models.Property, error)
	DeleteProperty(ctx context.Context, p models.Property) error

	LongTermProperties() []models.Property
	ShortTermProperties() []models.Property
}

// PropertyInput holds the fields of a new property. Optional strings are
// trimmed and dropped when blank.
type PropertyInput struct {
	Name         string
	Nickname     string
	Type         models.PropertyType
	Address1     string
	Address2     string
	City         string
	State        string
	Zip          string
	AcquiredDate *models.Date
	Notes        string
}

type propertyService struct {
	gw    gateway.Gateway
	store *store.Store
	log   logging.Logger
}

func NewPropertyService(gw gateway.Gateway, st *store.Store, log logging.Logger) PropertyService {
	if log == nil {
		log = logging.Discard()
	}
	return &propertyService{gw: gw, store: st, log: log.With("service", "properties")}
}

func (s *propertyService) FetchProperties(ctx context.Context) error {
	end := s.store.BeginLoading()
	defer end()
	s.store.ClearError()

	props, err := s.gw.ListProperties(ctx)
	if err != nil {
		s.store.SetError(fmt.Sprintf("Failed to fetch properties: %v", err))
		s.log.Error(ctx, "fetch properties failed", "error", err)
		return common.Remote("fetch properties", err)
	}

	s.store.SetProperties(props)
	s.log.Debug(ctx, "properties fetched", "count", len(props))
	return nil
}

func (s *propertyService) AddProperty(ctx context.Context, in PropertyInput) (models.Property, error) {
	active := true
	p := models.Property{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(in.Name),
		Nickname:     models.OptionalString(in.Nickname),
		Type:         models.PropertyType(strings.ToUpper(strings.TrimSpace(string(in.Type)))),
		Address1:     strings.TrimSpace(in.Address1),
		Address2:     models.OptionalString(in.Address2),
		City:         strings.TrimSpace(in.City),
		State:        strings.TrimSpace(in.State),
		Zip:          strings.TrimSpace(in.Zip),
		AcquiredDate: in.AcquiredDate,
		IsActive:     &active,
		Notes:        models.OptionalString(in.Notes),
	}
	if err := p.Validate(); err != nil {
		return models.Property{}, err
	}

	saved, err := s.gw.CreateProperty(ctx, gateway.PropertyInputOf(p))
	if err != nil {
		return models.Property{}, common.Remote("create property", err)
	}

	s.store.AppendProperty(saved)
	s.log.Info(ctx, "property added", "property_id", saved.ID, "type", saved.Type)
	return saved, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, p models.Property) (models.Property, error) {
	if p.ID == "" {
		return models.Property{}, common.Validation("property id is required")
	}
	for _, f := range []**string{&p.Nickname, &p.Address2, &p.Notes} {
		if *f != nil {
			*f = models.OptionalString(**f)
		}
	}
	if err := p.Validate(); err != nil {
		return models.Property{}, err
	}

	updated, err := s.gw.UpdateProperty(ctx, gateway.PropertyInputOf(p))
	if err != nil {
		return models.Property{}, common.Remote("update property", err)
	}

	if !s.store.ReplaceProperty(updated) {
		s.log.Warn(ctx, "updated property not in local store", "property_id", updated.ID)
	}
	return updated, nil
}

// DeleteProperty refuses to delete a property that locally known entries
// still reference; the server would leave them dangling.
func (s *propertyService) DeleteProperty(ctx context.Context, p models.Property) error {
	var refs int
	for _, e := range s.store.Entries() {
		if e.PropertyID == p.ID {
			refs++
		}
	}
	if refs > 0 {
		return common.Validation("property %q still has %d entries", p.DisplayName(), refs)
	}

	if err := s.gw.DeleteProperty(ctx, p.ID); err != nil {
		return common.Remote("delete property", err)
	}

	s.store.RemoveProperty(p.ID)
	s.log.Info(ctx, "property deleted", "property_id", p.ID)
	return nil
}

func (s *propertyService) LongTermProperties() []models.Property {
	return models.FilterPropertiesByType(s.store.Properties(), models.PropertyTypeLongTerm)
}

func (s *propertyService) ShortTermProperties() []models.Property {
	return models.FilterPropertiesByType(s.store.Properties(), models.PropertyTypeShortTerm)
}
