package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/tasktracker/internal/client/state"
	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// showProfile fetches and prints the current profile.
func (a *App) showProfile(ctx context.Context) error {
	profile, err := a.api.GetProfile(ctx)
	if err != nil {
		return err
	}

	a.store.Apply(state.ProfileUpdated{Profile: profile})

	fmt.Fprintf(a.out, "Name:  %s %s\n", profile.FirstName, profile.LastName)
	fmt.Fprintf(a.out, "Email: %s\n", profile.Email)
	if profile.ProfilePic != "" {
		fmt.Fprintf(a.out, "Photo: %s\n", profile.ProfilePic)
	}
	fmt.Fprintf(a.out, "Since: %s\n", profile.CreatedAt.Format("2006-01-02"))
	return nil
}

// updateProfile prompts for a new display name and saves it.
func (a *App) updateProfile(ctx context.Context) error {
	firstName, err := getSimpleText(a.reader, "Enter first name", a.out)
	if err != nil {
		return err
	}

	lastName, err := getSimpleText(a.reader, "Enter last name", a.out)
	if err != nil {
		return err
	}

	profile, err := a.api.UpdateProfile(ctx, firstName, lastName)
	if err != nil {
		return err
	}

	if err := a.persistSession(ctx, profile); err != nil {
		return err
	}
	a.store.Apply(state.ProfileUpdated{Profile: profile})

	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

// changePassword re-verifies the current password server-side before the
// new one is accepted.
func (a *App) changePassword(ctx context.Context) error {
	current, err := getPassword("Current password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	if err := a.api.UpdatePassword(ctx, string(current), string(next)); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Password updated.")
	return nil
}

// uploadPicture sends a local image file as the new profile picture.
func (a *App) uploadPicture(ctx context.Context) error {
	path, err := getSimpleText(a.reader, "Enter path to image file", a.out)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	profile, err := a.api.UpdateProfilePicture(ctx, filepath.Base(path), f)
	if err != nil {
		return err
	}

	if err := a.persistSession(ctx, profile); err != nil {
		return err
	}
	a.store.Apply(state.ProfileUpdated{Profile: profile})

	fmt.Fprintln(a.out, "Profile picture updated.")
	return nil
}
