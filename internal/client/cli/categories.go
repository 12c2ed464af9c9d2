package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/repslog/internal/client/models"
)

func categoryID(c models.Category) string { return c.ID }

func printCategories(w io.Writer, cats []models.Category) {
	if len(cats) == 0 {
		fmt.Fprintln(w, "No categories")
		return
	}
	for i, c := range cats {
		fmt.Fprintf(w, "%2d. %s  (%s)\n", i+1, c.Name, c.ID)
	}
}

func (a *App) Categories(ctx context.Context) error {
	printCategories(a.out, a.store.Categories())
	return nil
}

func (a *App) AddCategory(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Enter category name", a.out)
	if err != nil {
		return a.report(err)
	}
	c, err := a.categories.AddCategory(ctx, name)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Category %s added\n", c.Name)
	return nil
}

func (a *App) RenameCategory(ctx context.Context) error {
	cats := a.store.Categories()
	printCategories(a.out, cats)

	c, err := choose(a.reader, "Category to rename", a.out, cats, categoryID)
	if err != nil {
		return a.report(err)
	}
	name, err := GetSimpleText(a.reader, "Enter new name", a.out)
	if err != nil {
		return a.report(err)
	}

	renamed, err := a.categories.RenameCategory(ctx, c, name)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Renamed to %s\n", renamed.Name)
	return nil
}

// DeleteCategory warns how many entries lose their category before asking
// for confirmation.
func (a *App) DeleteCategory(ctx context.Context) error {
	cats := a.store.Categories()
	printCategories(a.out, cats)

	c, err := choose(a.reader, "Category to delete", a.out, cats, categoryID)
	if err != nil {
		return a.report(err)
	}

	var refs int
	for _, e := range a.store.Entries() {
		if e.CategoryID != nil && *e.CategoryID == c.ID {
			refs++
		}
	}
	prompt := fmt.Sprintf("Delete %s?", c.Name)
	if refs > 0 {
		prompt = fmt.Sprintf("Delete %s? %d entries will have no category.", c.Name, refs)
	}
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		return a.report(err)
	}

	if err := a.categories.DeleteCategory(ctx, c); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
