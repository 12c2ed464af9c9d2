package cli

import (
	"context"
	"errors"
	"fmt"
)

// Sync reloads properties, categories and entries. Each fetch runs even
// when an earlier one failed.
func (a *App) Sync(ctx context.Context) error {
	err := errors.Join(
		a.properties.FetchProperties(ctx),
		a.categories.FetchCategories(ctx),
		a.entries.FetchEntries(ctx),
	)
	if err != nil {
		return a.report(err)
	}

	fmt.Fprintf(a.out, "Synced: %d properties, %d categories, %d entries\n",
		len(a.store.Properties()), len(a.store.Categories()), len(a.store.Entries()))
	return nil
}

// Sagas lists create/update operations that stopped half way.
func (a *App) Sagas(ctx context.Context) error {
	list, err := a.entries.IncompleteSagas(ctx)
	if err != nil {
		return a.report(err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No incomplete operations")
		return nil
	}

	for _, s := range list {
		fmt.Fprintf(a.out, "%s %s entry=%s step=%s photos=%d", s.UpdatedAt.In(a.loc).Format("2006-01-02 15:04"),
			s.Kind, s.EntryID, s.Step, len(s.ImageKeys))
		if s.Failed() {
			fmt.Fprintf(a.out, " error=%q", s.LastError)
		}
		if s.Resumable() {
			fmt.Fprint(a.out, " (resumable)")
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

// Resume attaches photos of resumable sagas to their entries.
func (a *App) Resume(ctx context.Context) error {
	n, err := a.entries.ResumeSagas(ctx)
	if n > 0 {
		fmt.Fprintf(a.out, "Resumed %d %s\n", n, plural(n, "operation", "operations"))
	}
	if err != nil {
		return a.report(err)
	}
	if n == 0 {
		fmt.Fprintln(a.out, "Nothing to resume")
	}
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
