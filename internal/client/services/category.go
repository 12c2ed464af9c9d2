package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/repslog/internal/client/gateway"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/store"
	"github.com/dmitrijs2005/repslog/internal/common"
	"github.com/dmitrijs2005/repslog/internal/logging"
)

// CategoryService manages activity categories. A user without categories
// gets models.DefaultCategoryNames on the first fetch.
type CategoryService interface {
	FetchCategories(ctx context.Context) error
	AddCategory(ctx context.Context, name string) (models.Category, error)
	RenameCategory(ctx context.Context, c models.Category, name string) (models.Category, error)
	DeleteCategory(ctx context.Context, c models.Category) error
}

type categoryService struct {
	gw    gateway.Gateway
	store *store.Store
	log   logging.Logger
}

func NewCategoryService(gw gateway.Gateway, st *store.Store, log logging.Logger) CategoryService {
	if log == nil {
		log = logging.Discard()
	}
	return &categoryService{gw: gw, store: st, log: log.With("service", "categories")}
}

// FetchCategories replaces the local categories. When the remote list is
// empty it creates the defaults and fetches exactly once more, whatever the
// outcome of the creates.
func (s *categoryService) FetchCategories(ctx context.Context) error {
	end := s.store.BeginLoading()
	defer end()

	cats, err := s.fetch(ctx)
	if err != nil || len(cats) > 0 {
		return err
	}

	s.createDefaults(ctx)

	_, err = s.fetch(ctx)
	return err
}

func (s *categoryService) fetch(ctx context.Context) ([]models.Category, error) {
	s.store.ClearError()

	cats, err := s.gw.ListCategories(ctx)
	if err != nil {
		s.store.SetError(fmt.Sprintf("Failed to fetch categories: %v", err))
		s.log.Error(ctx, "fetch categories failed", "error", err)
		return nil, common.Remote("fetch categories", err)
	}

	s.store.SetCategories(cats)
	s.log.Debug(ctx, "categories fetched", "count", len(cats))
	return cats, nil
}

func (s *categoryService) createDefaults(ctx context.Context) {
	s.log.Info(ctx, "no categories, creating defaults", "count", len(models.DefaultCategoryNames))
	for _, name := range models.DefaultCategoryNames {
		if _, err := s.create(ctx, name, true); err != nil {
			s.log.Warn(ctx, "default category not created", "name", name, "error", err)
		}
	}
}

func (s *categoryService) create(ctx context.Context, name string, isDefault bool) (models.Category, error) {
	input := map[string]any{"name": name}
	if isDefault {
		input["isDefault"] = true
	}

	raw, err := s.gw.Mutate(ctx, gateway.CreateCategoryMutation, map[string]any{"input": input}, "createCategory")
	if err != nil {
		return models.Category{}, common.Remote("create category", err)
	}
	return decodeCategory(raw)
}

func (s *categoryService) AddCategory(ctx context.Context, name string) (models.Category, error) {
	name, err := s.checkName(name, "")
	if err != nil {
		return models.Category{}, err
	}

	c, err := s.create(ctx, name, false)
	if err != nil {
		return models.Category{}, err
	}
	s.log.Info(ctx, "category added", "category_id", c.ID, "name", c.Name)

	if _, err := s.fetch(ctx); err != nil {
		s.log.Warn(ctx, "refresh after add failed, keeping category locally", "error", err)
		s.store.AppendCategory(c)
	}
	return c, nil
}

func (s *categoryService) RenameCategory(ctx context.Context, c models.Category, name string) (models.Category, error) {
	name, err := s.checkName(name, c.ID)
	if err != nil {
		return models.Category{}, err
	}

	vars := map[string]any{"input": map[string]any{"id": c.ID, "name": name}}
	raw, err := s.gw.Mutate(ctx, gateway.UpdateCategoryMutation, vars, "updateCategory")
	if err != nil {
		return models.Category{}, common.Remote("rename category", err)
	}
	updated, err := decodeCategory(raw)
	if err != nil {
		return models.Category{}, err
	}

	s.store.ReplaceCategory(updated)
	return updated, nil
}

// DeleteCategory first detaches the category from every locally known
// entry that uses it, then deletes it. A failed detach aborts before the
// delete, leaving the already detached entries without a category.
func (s *categoryService) DeleteCategory(ctx context.Context, c models.Category) error {
	for _, e := range s.store.Entries() {
		if e.CategoryID == nil || *e.CategoryID != c.ID {
			continue
		}
		vars := map[string]any{"input": map[string]any{"id": e.ID, "categoryID": nil}}
		if _, err := s.gw.Mutate(ctx, gateway.UpdateEntryMutation, vars, "updateEntry"); err != nil {
			return common.Remote("detach category from entry "+e.ID, err)
		}
		e.CategoryID = nil
		s.store.ReplaceEntry(e)
	}

	vars := map[string]any{"input": map[string]any{"id": c.ID}}
	if _, err := s.gw.Mutate(ctx, gateway.DeleteCategoryMutation, vars, "deleteCategory"); err != nil {
		return common.Remote("delete category", err)
	}

	s.store.RemoveCategory(c.ID)
	s.log.Info(ctx, "category deleted", "category_id", c.ID)
	return nil
}

// checkName trims name and rejects blanks and case-insensitive duplicates
// among the local categories other than exclude.
func (s *categoryService) checkName(name, exclude string) (string, error) {
	name = models.NormalizeCategoryName(name)
	if name == "" {
		return "", common.Validation("category name is required")
	}
	if dup, ok := models.FindCategoryByName(s.store.Categories(), name, exclude); ok {
		return "", common.Validation("category %q already exists", dup.Name)
	}
	return name, nil
}

func decodeCategory(raw json.RawMessage) (models.Category, error) {
	var c models.Category
	if err := json.Unmarshal(raw, &c); err != nil {
		return models.Category{}, common.Remote("decode category", err)
	}
	return c, nil
}
