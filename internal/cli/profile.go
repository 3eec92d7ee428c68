package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/mkorchagin/passwallet/internal/availability"
	"github.com/mkorchagin/passwallet/internal/models"
	"github.com/mkorchagin/passwallet/internal/session"
)

// Status prints the session snapshot.
func (a *App) Status(ctx context.Context) error {
	st := a.session.Snapshot()
	fmt.Fprintf(a.out, "Session: %s\n", st.Status)
	if !st.TokenExpiry.IsZero() {
		fmt.Fprintf(a.out, "Token expires: %s\n", st.TokenExpiry.Format(time.RFC3339))
	}
	return nil
}

// WhoAmI re-fetches and prints the current profile.
func (a *App) WhoAmI(ctx context.Context) error {
	profile, err := a.session.RefreshUser(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "@%s", profile.Tag)
	if profile.DisplayName != "" {
		fmt.Fprintf(a.out, " (%s)", profile.DisplayName)
	}
	fmt.Fprintln(a.out)
	if profile.Email != "" {
		fmt.Fprintf(a.out, "Email:    %s\n", profile.Email)
	}
	fmt.Fprintf(a.out, "Currency: %s\n", profile.DefaultCurrency)
	fmt.Fprintf(a.out, "Network:  %s\n", profile.PreferredNetwork)
	fmt.Fprintf(a.out, "Verified: %v\n", profile.Verified)
	return nil
}

// Update prompts for new profile fields; blank answers leave a field
// untouched.
func (a *App) Update(ctx context.Context) error {
	var upd models.ProfileUpdate

	if v, err := readLine(a.reader, "Display name (blank to keep)", a.out); err != nil {
		return err
	} else if v != "" {
		upd.DisplayName = &v
	}
	if v, err := readLine(a.reader, "Email (blank to keep)", a.out); err != nil {
		return err
	} else if v != "" {
		upd.Email = &v
	}
	if v, err := readLine(a.reader, "Default currency (blank to keep)", a.out); err != nil {
		return err
	} else if v != "" {
		upd.DefaultCurrency = &v
	}
	if v, err := readLine(a.reader, "Preferred network (blank to keep)", a.out); err != nil {
		return err
	} else if v != "" {
		upd.PreferredNetwork = &v
	}

	if upd.Empty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	profile, err := a.session.UpdateProfile(ctx, upd)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Profile updated (last change %s)\n", profile.UpdatedAt.Format(time.RFC3339))
	return nil
}

// Check schedules a debounced availability lookup and waits for its
// result. Usage: check tag <value> | check email <value>.
func (a *App) Check(ctx context.Context, args []string) error {
	if len(args) != 2 || (args[0] != "tag" && args[0] != "email") {
		fmt.Fprintln(a.out, "Usage: check tag <value> | check email <value>")
		return nil
	}

	field := availability.FieldTag
	input := args[1]
	if args[0] == "email" {
		field = availability.FieldEmail
	} else {
		input = session.NormalizeTag(input)
	}

	a.checker.Update(ctx, field, input)

	select {
	case r := <-a.results:
		if r.Available {
			fmt.Fprintf(a.out, "%s %q is available\n", r.Field, r.Input)
		} else {
			fmt.Fprintf(a.out, "%s %q is taken\n", r.Field, r.Input)
		}
	case <-time.After(a.cfg.DebounceInterval + a.cfg.RequestTimeout):
		fmt.Fprintln(a.out, "No result (check cancelled or superseded).")
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}
