package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/shopsync/internal/client/models"
	"github.com/dmitrijs2005/shopsync/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for account details and creates a new account. A
// successful registration establishes the session immediately and loads the
// user's collections from the server.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	firstName, err := getSimpleText(a.reader, "First name (optional)", a.out)
	if err != nil {
		return err
	}
	lastName, err := getSimpleText(a.reader, "Last name (optional)", a.out)
	if err != nil {
		return err
	}

	form := session.RegisterForm{Email: email, Password: password, FirstName: firstName, LastName: lastName}
	identity, err := a.session.Register(ctx, form)
	if err != nil {
		if errors.Is(err, session.ErrDuplicateAccount) {
			fmt.Fprintln(a.out, "An account with this email already exists.")
			return err
		}
		fmt.Fprintf(a.out, "Registration failed: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Registered as %s\n", identity.Email)
	return a.activate(ctx, identity.ID)
}

// Login prompts for credentials and authenticates. On success the
// synchronizer is activated for the user so local collection changes start
// flowing to the server.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	identity, err := a.session.Login(ctx, session.LoginForm{Email: email, Password: password})
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			fmt.Fprintln(a.out, "Invalid email or password.")
			return err
		}
		fmt.Fprintf(a.out, "Login failed: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", identity.Email)
	return a.activate(ctx, identity.ID)
}

func (a *App) activate(ctx context.Context, userID string) error {
	if err := a.sync.Activate(ctx, userID); err != nil {
		fmt.Fprintf(a.out, "Failed to load your collections: %s\n", err)
		return err
	}
	return nil
}

// Logout clears the session locally and detaches the synchronizer. No
// network call is involved.
func (a *App) Logout(ctx context.Context) error {
	if identity := a.session.Identity(); identity != nil {
		a.ledger.Clear(identity.ID)
	}
	a.sync.Deactivate()
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Profile fetches and prints the current user's profile.
func (a *App) Profile(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	profile, err := a.session.FetchProfile(ctx, identity.ID)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to fetch profile: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Email:      %s\n", profile.Email)
	fmt.Fprintf(a.out, "First name: %s\n", profile.FirstName)
	fmt.Fprintf(a.out, "Last name:  %s\n", profile.LastName)
	fmt.Fprintf(a.out, "Phone:      %s\n", profile.Phone)
	fmt.Fprintf(a.out, "Address:    %s\n", profile.Address)
	return nil
}

// UpdateProfile prompts for the mutable profile fields and submits the
// patch. Empty answers keep the current values.
func (a *App) UpdateProfile(ctx context.Context) error {
	identity := a.session.Identity()
	if identity == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	patch := models.ProfilePatch{}
	var err error
	if patch.FirstName, err = getSimpleText(a.reader, "First name", a.out); err != nil {
		return err
	}
	if patch.LastName, err = getSimpleText(a.reader, "Last name", a.out); err != nil {
		return err
	}
	if patch.Phone, err = getSimpleText(a.reader, "Phone", a.out); err != nil {
		return err
	}
	if patch.Address, err = getSimpleText(a.reader, "Address", a.out); err != nil {
		return err
	}

	if _, err := a.session.UpdateProfile(ctx, identity.ID, patch); err != nil {
		fmt.Fprintf(a.out, "Failed to update profile: %s\n", err)
		return err
	}

	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}
