package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/server/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. On success it
// creates the session carrying the account's display name; all further
// list/search/edit/delete commands run under it.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	name, err := a.service.Authenticate(ctx, email, string(password))
	if err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	a.session = session.New(name, email)
	fmt.Printf("Welcome, %s!\n", name)
	return nil
}

// Logout drops the session, returning the front end to the anonymous state.
func (a *App) Logout(ctx context.Context) error {
	a.session = nil
	fmt.Println("Logged out.")
	return nil
}

// ResetPassword prompts for an email and a new password and overwrites the
// stored hash. The operation requires no authentication and is reachable
// from the anonymous prompt.
func (a *App) ResetPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.service.ResetPassword(ctx, email, string(password)); err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	fmt.Println("Password reset successfully!")
	return nil
}
