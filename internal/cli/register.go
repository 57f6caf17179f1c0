package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mgouveia/userdb/internal/common"
)

// Register prompts for the new account's fields and attempts to create it.
// On success it prints a confirmation and leaves the user at the login
// prompt; signing up does not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(confirm)

	if err := a.service.Register(ctx, name, email, string(password), string(confirm)); err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	fmt.Println("Account created successfully!")
	return nil
}
