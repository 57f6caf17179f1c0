package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/server/accounts"
)

// List prints all accounts sorted by the optional field argument
// ("name" by default, or "email").
func (a *App) List(ctx context.Context, args []string) error {
	field := ""
	if len(args) > 0 {
		field = args[0]
	}
	order, ok := accounts.ParseOrderBy(field)
	if !ok {
		fmt.Println("Usage: list [name|email]")
		return nil
	}

	result, err := a.service.List(ctx, order)
	if err != nil {
		fmt.Println(renderErr(err))
		return err
	}
	printSummaries(result)
	return nil
}

// Search prints the accounts whose name or email contains the given term.
func (a *App) Search(ctx context.Context, args []string) error {
	term := strings.Join(args, " ")

	result, err := a.service.Search(ctx, term)
	if err != nil {
		fmt.Println(renderErr(err))
		return err
	}
	printSummaries(result)
	return nil
}

// Edit loads the account, shows its current values, and prompts for
// replacements. Empty input keeps the current value; an empty password
// keeps the current one (that rule belongs to the service, not just the
// prompt).
func (a *App) Edit(ctx context.Context, args []string) error {
	id, ok := parseID(args, "edit")
	if !ok {
		return nil
	}

	current, err := a.service.Get(ctx, id)
	if err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", current.Name), os.Stdout)
	if err != nil {
		return err
	}
	if name == "" {
		name = current.Name
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", current.Email), os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		email = current.Email
	}

	password, err := getPassword("New password (leave blank to keep current)", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeBytes(password)

	if err := a.service.Update(ctx, id, name, email, string(password)); err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	fmt.Println("Account updated successfully!")
	return nil
}

// Delete removes an account by id. The id argument is the confirmation;
// there is no extra prompt.
func (a *App) Delete(ctx context.Context, args []string) error {
	id, ok := parseID(args, "delete")
	if !ok {
		return nil
	}

	if err := a.service.Delete(ctx, id); err != nil {
		fmt.Println(renderErr(err))
		return err
	}

	fmt.Println("Account deleted successfully!")
	return nil
}

func parseID(args []string, cmd string) (int64, bool) {
	if len(args) == 0 {
		fmt.Printf("Usage: %s <id>\n", cmd)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Printf("Usage: %s <id>\n", cmd)
		return 0, false
	}
	return id, true
}

func printSummaries(result []accounts.Summary) {
	if len(result) == 0 {
		fmt.Println("No accounts found.")
		return
	}
	fmt.Printf("%-6s %-24s %s\n", "ID", "NAME", "EMAIL")
	for _, item := range result {
		fmt.Printf("%-6d %-24s %s\n", item.ID, item.Name, item.Email)
	}
}
