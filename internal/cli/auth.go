package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/mkorchagin/passwallet/internal/session"
)

// Register prompts for the new account's tag, display name and optional
// email, validating the tag locally before the ceremony starts.
func (a *App) Register(ctx context.Context) error {
	tag, err := readLine(a.reader, "Choose a tag (a-z, 0-9, _)", a.out)
	if err != nil {
		return err
	}
	if !session.ValidateTag(tag) {
		return session.ErrInvalidTag
	}

	displayName, err := readLine(a.reader, "Display name", a.out)
	if err != nil {
		return err
	}
	email, err := readLine(a.reader, "Email (optional)", a.out)
	if err != nil {
		return err
	}

	profile, err := a.session.Register(ctx, tag, displayName, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered @%s\n", profile.Tag)
	return nil
}

// Login prompts for a tag and runs the authentication ceremony.
func (a *App) Login(ctx context.Context) error {
	tag, err := readLine(a.reader, "Tag", a.out)
	if err != nil {
		return err
	}

	profile, err := a.session.Login(ctx, tag)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, @%s\n", profile.Tag)
	return nil
}

// QuickLogin re-asserts the stored session behind the biometric gate.
func (a *App) QuickLogin(ctx context.Context) error {
	profile, err := a.session.QuickLogin(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNoStoredCredentials) {
			fmt.Fprintln(a.out, "No stored credentials on this device; use register or login first.")
			return nil
		}
		return err
	}
	fmt.Fprintf(a.out, "Welcome back, @%s\n", profile.Tag)
	return nil
}

// Logout clears the token entries. It cannot fail.
func (a *App) Logout(ctx context.Context) error {
	a.session.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
