package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/repslog/internal/client/imagex"
	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/services"
	"github.com/dmitrijs2005/repslog/internal/client/store"
)

// Test seams.
var (
	openImage = imagex.Open
	nowFn     = time.Now
)

func entryID(e models.Entry) string { return e.ID }

func printEntries(w io.Writer, st *store.Store, entries []models.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries")
		return
	}
	for i, e := range entries {
		property := e.PropertyID
		if p, ok := st.Property(e.PropertyID); ok {
			property = p.DisplayName()
		}
		category := "-"
		if e.CategoryID != nil {
			category = *e.CategoryID
			if c, ok := st.Category(*e.CategoryID); ok {
				category = c.Name
			}
		}

		fmt.Fprintf(w, "%2d. %s %6s  %s | %s | %s: %s", i+1, e.Date, models.FormatDuration(e.TotalMinutes),
			property, category, e.Performer, e.ActivityType)
		if n := len(e.ImageKeys()); n > 0 {
			fmt.Fprintf(w, " [%d photos]", n)
		}
		fmt.Fprintf(w, "  (%s)\n", e.ID)
	}
}

// Entries lists entries newest first.
func (a *App) Entries(ctx context.Context) error {
	printEntries(a.out, a.store, models.SortEntriesNewestFirst(a.store.Entries()))
	return nil
}

func (a *App) AddEntry(ctx context.Context) error {
	in, err := a.inputEntry()
	if err != nil {
		return a.report(err)
	}

	id, err := a.entries.AddEntry(ctx, in)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Entry %s added\n", id)
	return nil
}

func (a *App) DeleteEntry(ctx context.Context) error {
	entries := models.SortEntriesNewestFirst(a.store.Entries())
	printEntries(a.out, a.store, entries)

	e, err := choose(a.reader, "Entry to delete", a.out, entries, entryID)
	if err != nil {
		return a.report(err)
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete entry of %s with %d photos?", e.Date, len(e.ImageKeys())), a.out)
	if err != nil || !ok {
		return a.report(err)
	}

	if err := a.entries.DeleteEntry(ctx, e); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}

// EditEntry changes an entry. Its photos are kept and new ones can be added.
func (a *App) EditEntry(ctx context.Context) error {
	entries := models.SortEntriesNewestFirst(a.store.Entries())
	printEntries(a.out, a.store, entries)

	e, err := choose(a.reader, "Entry to edit", a.out, entries, entryID)
	if err != nil {
		return a.report(err)
	}
	fields, err := a.editEntryFields(e)
	if err != nil {
		return a.report(err)
	}
	images, err := a.inputImages("New photo files (comma separated, optional)")
	if err != nil {
		return a.report(err)
	}

	err = a.entries.UpdateEntry(ctx, services.UpdateEntryInput{
		EntryID:           e.ID,
		EntryFields:       fields,
		NewImages:         images,
		ExistingImageKeys: e.ImageKeys(),
	})
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Entry %s updated\n", e.ID)
	return nil
}

// Photos prints the download links of an entry's photos.
func (a *App) Photos(ctx context.Context) error {
	entries := models.SortEntriesNewestFirst(a.store.Entries())
	printEntries(a.out, a.store, entries)

	e, err := choose(a.reader, "Entry", a.out, entries, entryID)
	if err != nil {
		return a.report(err)
	}

	property := e.PropertyID
	if ref, err := a.entries.ResolveProperty(ctx, e.PropertyRef()); err != nil {
		a.log.Warn(ctx, "property not resolved", "entry_id", e.ID, "error", err)
	} else if p, ok := ref.Entity(); ok {
		property = p.DisplayName()
	}
	category := "-"
	if cref, ok := e.CategoryRef(); ok {
		category = cref.ID()
		if ref, err := a.entries.ResolveCategory(ctx, cref); err != nil {
			a.log.Warn(ctx, "category not resolved", "entry_id", e.ID, "error", err)
		} else if c, ok := ref.Entity(); ok {
			category = c.Name
		}
	}
	fmt.Fprintf(a.out, "%s %s  %s | %s | %s: %s\n", e.Date, models.FormatDuration(e.TotalMinutes),
		property, category, e.Performer, e.ActivityType)

	keys := e.ImageKeys()
	if len(keys) == 0 {
		fmt.Fprintln(a.out, "No photos")
		return nil
	}
	for i, key := range keys {
		url, err := a.entries.ImageURL(ctx, key)
		if err != nil {
			return a.report(err)
		}
		fmt.Fprintf(a.out, "%2d. %s\n", i+1, url)
	}
	return nil
}

func (a *App) inputEntry() (services.AddEntryInput, error) {
	var in services.AddEntryInput

	props := a.store.Properties()
	printProperties(a.out, props)
	p, err := choose(a.reader, "Property", a.out, props, propertyID)
	if err != nil {
		return in, err
	}
	in.PropertyID = p.ID

	cats := a.store.Categories()
	printCategories(a.out, cats)
	answer, err := GetSimpleText(a.reader, "Category (number or id, empty for none)", a.out)
	if err != nil {
		return in, err
	}
	if answer != "" {
		c, err := pick(cats, answer, categoryID)
		if err != nil {
			return in, err
		}
		in.CategoryID = &c.ID
	}

	if in.Date, err = a.inputDate(); err != nil {
		return in, err
	}
	if in.Hours, err = GetInt(a.reader, "Hours", 0, a.out); err != nil {
		return in, err
	}
	if in.Minutes, err = GetInt(a.reader, "Minutes", 0, a.out); err != nil {
		return in, err
	}

	performer, err := GetSimpleText(a.reader, fmt.Sprintf("Performer (%s) [%s]",
		strings.Join(models.PerformerOptions, ", "), models.PerformerOptions[0]), a.out)
	if err != nil {
		return in, err
	}
	if performer == "" {
		performer = models.PerformerOptions[0]
	}
	in.Performer = performer

	if in.ActivityType, err = GetRequiredText(a.reader, "Activity type", a.out); err != nil {
		return in, err
	}

	notes, err := GetSimpleText(a.reader, "Notes (optional)", a.out)
	if err != nil {
		return in, err
	}
	in.Notes = models.OptionalString(notes)

	if in.StartTime, err = a.inputTimeOfDay("Start time HH:MM (optional)"); err != nil {
		return in, err
	}
	if in.EndTime, err = a.inputTimeOfDay("End time HH:MM (optional)"); err != nil {
		return in, err
	}

	in.Images, err = a.inputImages("Photo files (comma separated, optional)")
	return in, err
}

func (a *App) inputImages(prompt string) ([]image.Image, error) {
	paths, err := GetList(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	var images []image.Image
	for _, path := range paths {
		img, err := openImage(path)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

// editEntryFields prompts for every field of e, showing the current values.
func (a *App) editEntryFields(e models.Entry) (services.EntryFields, error) {
	f := services.EntryFields{
		PropertyID: e.PropertyID,
		Hours:      e.TotalMinutes / 60,
		Minutes:    e.TotalMinutes % 60,
	}

	props := a.store.Properties()
	printProperties(a.out, props)
	answer, err := GetTextOr(a.reader, "Property (number or id)", e.PropertyID, a.out)
	if err != nil {
		return f, err
	}
	if answer != e.PropertyID {
		p, err := pick(props, answer, propertyID)
		if err != nil {
			return f, err
		}
		f.PropertyID = p.ID
	}

	cats := a.store.Categories()
	printCategories(a.out, cats)
	cat, err := GetOptionalTextOr(a.reader, "Category (number or id)", e.CategoryID, a.out)
	if err != nil {
		return f, err
	}
	if cat != nil && cat != e.CategoryID {
		c, err := pick(cats, *cat, categoryID)
		if err != nil {
			return f, err
		}
		cat = &c.ID
	}
	f.CategoryID = cat

	date, err := GetTextOr(a.reader, "Date YYYY-MM-DD", e.Date.String(), a.out)
	if err != nil {
		return f, err
	}
	d, err := models.ParseDate(date)
	if err != nil {
		return f, err
	}
	if f.Date, err = d.Time(a.loc); err != nil {
		return f, err
	}

	if f.Hours, err = GetInt(a.reader, "Hours", f.Hours, a.out); err != nil {
		return f, err
	}
	if f.Minutes, err = GetInt(a.reader, "Minutes", f.Minutes, a.out); err != nil {
		return f, err
	}
	if f.Performer, err = GetTextOr(a.reader, "Performer", e.Performer, a.out); err != nil {
		return f, err
	}
	if f.ActivityType, err = GetTextOr(a.reader, "Activity type", e.ActivityType, a.out); err != nil {
		return f, err
	}
	if f.Notes, err = GetOptionalTextOr(a.reader, "Notes", e.Notes, a.out); err != nil {
		return f, err
	}
	if f.StartTime, err = a.editTimeOfDay("Start time HH:MM", e.StartTime); err != nil {
		return f, err
	}
	if f.EndTime, err = a.editTimeOfDay("End time HH:MM", e.EndTime); err != nil {
		return f, err
	}
	return f, nil
}

func (a *App) editTimeOfDay(prompt string, cur *models.TimeOfDay) (*models.TimeOfDay, error) {
	var shown *string
	if cur != nil {
		s := string(*cur)
		shown = &s
	}
	s, err := GetOptionalTextOr(a.reader, prompt, shown, a.out)
	switch {
	case err != nil:
		return nil, err
	case s == shown:
		return cur, nil
	case s == nil:
		return nil, nil
	}
	t, err := models.ParseTimeOfDay(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (a *App) inputDate() (time.Time, error) {
	s, err := GetSimpleText(a.reader, "Date YYYY-MM-DD (empty for today)", a.out)
	if err != nil {
		return time.Time{}, err
	}
	if s == "" {
		return nowFn().In(a.loc), nil
	}
	d, err := models.ParseDate(s)
	if err != nil {
		return time.Time{}, err
	}
	return d.Time(a.loc)
}

func (a *App) inputTimeOfDay(prompt string) (*models.TimeOfDay, error) {
	s, err := GetSimpleText(a.reader, prompt, a.out)
	if err != nil || s == "" {
		return nil, err
	}
	t, err := models.ParseTimeOfDay(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
