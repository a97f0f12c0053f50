package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/tasktracker/internal/client/state"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the account fields and creates a new user. On success
// it prints a confirmation; the user still has to log in.
func (a *App) Register(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, firstName, lastName, email, string(password)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Registered! You can now log in.")
	return nil
}

// Login prompts for credentials, authenticates, fetches the profile, and
// persists the session so it survives restarts.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.api.Login(ctx, email, string(password)); err != nil {
		return err
	}

	profile, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	if err := a.persistSession(ctx, profile); err != nil {
		return err
	}

	a.store.Apply(state.LoggedIn{Profile: profile})

	fmt.Fprintf(a.out, "Welcome, %s!\n", profile.FirstName)
	return nil
}

// Logout clears the local session and drops the in-memory token.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Clear(ctx); err != nil {
		return err
	}
	a.api.SetToken("")
	a.store.Apply(state.LoggedOut{})

	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
