package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/repslog/internal/client/models"
	"github.com/dmitrijs2005/repslog/internal/client/services"
)

func propertyID(p models.Property) string { return p.ID }

func printProperties(w io.Writer, props []models.Property) {
	if len(props) == 0 {
		fmt.Fprintln(w, "No properties")
		return
	}
	for i, p := range props {
		fmt.Fprintf(w, "%2d. [%s] %s, %s, %s %s  (%s)\n", i+1, p.Type, p.DisplayName(), p.Address1, p.City, p.State, p.ID)
	}
}

// Properties lists long-term rentals first, then short-term ones.
func (a *App) Properties(ctx context.Context) error {
	long, short := a.properties.LongTermProperties(), a.properties.ShortTermProperties()

	fmt.Fprintln(a.out, "Long-term rentals:")
	printProperties(a.out, long)
	fmt.Fprintln(a.out, "Short-term rentals:")
	printProperties(a.out, short)
	return nil
}

func (a *App) AddProperty(ctx context.Context) error {
	var in services.PropertyInput
	var err error

	prompts := []struct {
		label    string
		dst      *string
		required bool
	}{
		{"Enter name", &in.Name, true},
		{"Enter nickname (optional)", &in.Nickname, false},
		{"Enter address", &in.Address1, true},
		{"Enter address line 2 (optional)", &in.Address2, false},
		{"Enter city", &in.City, true},
		{"Enter state", &in.State, true},
		{"Enter zip", &in.Zip, true},
	}
	for _, p := range prompts {
		if p.required {
			*p.dst, err = GetRequiredText(a.reader, p.label, a.out)
		} else {
			*p.dst, err = GetSimpleText(a.reader, p.label, a.out)
		}
		if err != nil {
			return a.report(err)
		}
	}

	t, err := GetRequiredText(a.reader, fmt.Sprintf("Enter type (%s or %s)", models.PropertyTypeLongTerm, models.PropertyTypeShortTerm), a.out)
	if err != nil {
		return a.report(err)
	}
	in.Type = models.PropertyType(t)

	p, err := a.properties.AddProperty(ctx, in)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Property %s added (%s)\n", p.DisplayName(), p.ID)
	return nil
}

// EditProperty changes a property. Empty answers keep the current values.
func (a *App) EditProperty(ctx context.Context) error {
	props := a.store.Properties()
	printProperties(a.out, props)

	p, err := choose(a.reader, "Property to edit", a.out, props, propertyID)
	if err != nil {
		return a.report(err)
	}

	for _, f := range []struct {
		label string
		dst   *string
	}{
		{"Name", &p.Name},
		{"Address", &p.Address1},
		{"City", &p.City},
		{"State", &p.State},
		{"Zip", &p.Zip},
	} {
		if *f.dst, err = GetTextOr(a.reader, f.label, *f.dst, a.out); err != nil {
			return a.report(err)
		}
	}
	for _, f := range []struct {
		label string
		dst   **string
	}{
		{"Nickname", &p.Nickname},
		{"Address line 2", &p.Address2},
		{"Notes", &p.Notes},
	} {
		if *f.dst, err = GetOptionalTextOr(a.reader, f.label, *f.dst, a.out); err != nil {
			return a.report(err)
		}
	}

	t, err := GetTextOr(a.reader, fmt.Sprintf("Type (%s or %s)", models.PropertyTypeLongTerm, models.PropertyTypeShortTerm), string(p.Type), a.out)
	if err != nil {
		return a.report(err)
	}
	p.Type = models.PropertyType(strings.ToUpper(t))

	updated, err := a.properties.UpdateProperty(ctx, p)
	if err != nil {
		return a.report(err)
	}
	fmt.Fprintf(a.out, "Property %s updated\n", updated.DisplayName())
	return nil
}

func (a *App) DeleteProperty(ctx context.Context) error {
	props := a.store.Properties()
	printProperties(a.out, props)

	p, err := choose(a.reader, "Property to delete", a.out, props, propertyID)
	if err != nil {
		return a.report(err)
	}
	ok, err := Confirm(a.reader, fmt.Sprintf("Delete %s?", p.DisplayName()), a.out)
	if err != nil || !ok {
		return a.report(err)
	}

	if err := a.properties.DeleteProperty(ctx, p); err != nil {
		return a.report(err)
	}
	fmt.Fprintln(a.out, "Deleted")
	return nil
}
