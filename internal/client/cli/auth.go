package cli

import (
	"context"
	"fmt"
)

// getToken is swapped in tests.
var getToken = GetToken

// Login reads an ID token without echo, signs in with it and loads all
// collections.
func (a *App) Login(ctx context.Context) error {
	token, err := getToken(a.out)
	if err != nil {
		return a.report(err)
	}

	id, err := a.session.SignIn(ctx, token)
	if err != nil {
		return a.report(fmt.Errorf("login unsuccessful: %w", err))
	}
	fmt.Fprintf(a.out, "Signed in as %s\n", id.UserID)

	return a.Sync(ctx)
}

// Logout forgets the session and clears the local collections.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.SignOut(ctx); err != nil {
		return a.report(err)
	}
	a.store.SetProperties(nil)
	a.store.SetCategories(nil)
	a.store.SetEntries(nil)
	a.store.ClearError()
	fmt.Fprintln(a.out, "Signed out")
	return nil
}
