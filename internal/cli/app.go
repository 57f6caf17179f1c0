// Package cli implements the interactive terminal front end for the
// account backend: a small REPL that drives the account service and renders
// its typed failures as short user-facing messages.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/cryptox"
	"github.com/mgouveia/userdb/internal/logging"
	"github.com/mgouveia/userdb/internal/server/accounts"
	"github.com/mgouveia/userdb/internal/server/config"
	"github.com/mgouveia/userdb/internal/server/db"
	"github.com/mgouveia/userdb/internal/server/session"
)

type App struct {
	config  *config.Config
	manager *db.Manager
	service *accounts.Service
	session *session.Session
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	m, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	svc := accounts.NewService(m.Conn(), m.Accounts, cryptox.SHA256Codec{}, cfg.QueryTimeout, log)

	return &App{
		config:  cfg,
		manager: m,
		service: svc,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.manager.Close()
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) status() string {
	if a.session != nil {
		return a.session.Name
	}
	return "anonymous"
}

// renderErr maps the service's failure taxonomy to the short messages shown
// to the user. Unknown errors fall back to their own text.
func renderErr(err error) string {
	switch {
	case errors.Is(err, common.ErrMissingField):
		return "Fill in all the fields!"
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match!"
	case errors.Is(err, common.ErrInvalidEmail):
		return "Invalid email!"
	case errors.Is(err, common.ErrDuplicateEmail):
		return "Email already registered!"
	case errors.Is(err, common.ErrNotFound):
		return "Account not found!"
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Wrong email or password!"
	case errors.Is(err, common.ErrEmailNotFound):
		return "Email not found!"
	case errors.Is(err, common.ErrStoreUnavailable):
		return "Could not reach the database, try again later."
	default:
		return err.Error()
	}
}
