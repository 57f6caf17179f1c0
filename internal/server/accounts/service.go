package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/cryptox"
	"github.com/mgouveia/userdb/internal/dbx"
	"github.com/mgouveia/userdb/internal/logging"
)

// Service orchestrates the validator, the credential codec, and the account
// repository to implement register, authenticate, update, delete, list,
// search, and password reset.
//
// Every failure is one of the sentinel values in internal/common; raw store
// or codec errors never cross this boundary except wrapped under
// common.ErrStoreUnavailable. Operations are stateless: the service holds
// no account data between calls.
type Service struct {
	db      *sql.DB
	repoFor func(dbx.DBTX) Repository
	codec   cryptox.Codec
	timeout time.Duration
	log     logging.Logger
}

// NewService constructs a Service. repoFor binds a Repository to either the
// pooled handle or a transaction; the repository manager's Accounts method
// is the usual value. timeout bounds every store access.
func NewService(db *sql.DB, repoFor func(dbx.DBTX) Repository, codec cryptox.Codec, timeout time.Duration, log logging.Logger) *Service {
	return &Service{
		db:      db,
		repoFor: repoFor,
		codec:   codec,
		timeout: timeout,
		log:     log,
	}
}

// Register validates the input, hashes the password, and creates the
// account. The duplicate-email pre-check and the insert run in one
// transaction; the store's unique constraint remains the backstop for
// races, so ErrDuplicateEmail can also surface at commit time.
//
// The confirmation value is only checked for equality with the password,
// never for emptiness on its own.
func (s *Service) Register(ctx context.Context, name, email, password, passwordConfirm string) error {
	if anyMissing(name, email, password) {
		return common.ErrMissingField
	}
	if password != passwordConfirm {
		return common.ErrPasswordMismatch
	}
	if !ValidEmail(email) {
		return common.ErrInvalidEmail
	}

	digest, err := s.codec.Hash(password)
	if err != nil {
		return s.storeErr(ctx, "register", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)
		_, err := repo.GetByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, common.ErrNotFound) {
			return err
		}
		_, err = repo.Create(ctx, &Account{Name: name, Email: email, PasswordHash: digest})
		return err
	})
	return s.classify(ctx, "register", err)
}

// Authenticate looks the account up by email and compares the candidate
// password's digest against the stored one. A lookup miss and a digest
// mismatch both yield ErrInvalidCredentials. On success it returns the
// account's display name for the caller's session.
func (s *Service) Authenticate(ctx context.Context, email, password string) (string, error) {
	if anyMissing(email, password) {
		return "", common.ErrMissingField
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.repoFor(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrInvalidCredentials
		}
		return "", s.storeErr(ctx, "authenticate", err)
	}

	if !s.codec.Verify(a.PasswordHash, password) {
		return "", common.ErrInvalidCredentials
	}
	return a.Name, nil
}

// Get loads one account for display or edit pre-fill. The password hash
// stays behind the service boundary.
func (s *Service) Get(ctx context.Context, id int64) (*Summary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	a, err := s.repoFor(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, s.storeErr(ctx, "get", err)
	}
	return &Summary{ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

// Update rewrites name and email in place. An empty password keeps the
// stored hash unchanged; a non-empty one replaces it wholesale. No proof of
// the current credential is required; that is intended behavior, not an
// oversight. An email change must stay unique against other accounts.
func (s *Service) Update(ctx context.Context, id int64, name, email, password string) error {
	if anyMissing(name, email) {
		return common.ErrMissingField
	}

	digest := ""
	if password != "" {
		var err error
		digest, err = s.codec.Hash(password)
		if err != nil {
			return s.storeErr(ctx, "update", err)
		}
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)
		other, err := repo.GetByEmail(ctx, email)
		if err == nil && other.ID != id {
			return common.ErrDuplicateEmail
		}
		if err != nil && !errors.Is(err, common.ErrNotFound) {
			return err
		}
		return repo.Update(ctx, &Account{ID: id, Name: name, Email: email, PasswordHash: digest})
	})
	return s.classify(ctx, "update", err)
}

// Delete removes the account irreversibly. A missing id reports
// ErrNotFound, never success.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.classify(ctx, "delete", s.repoFor(s.db).Delete(ctx, id))
}

// List returns all accounts, without password hashes, sorted ascending on
// the requested field.
func (s *Service) List(ctx context.Context, order OrderBy) ([]Summary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.repoFor(s.db).List(ctx, order)
	if err != nil {
		return nil, s.storeErr(ctx, "list", err)
	}
	return result, nil
}

// Search returns accounts whose name or email contains term as a literal
// substring, sorted ascending by name. An empty term matches every record.
func (s *Service) Search(ctx context.Context, term string) ([]Summary, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	result, err := s.repoFor(s.db).Search(ctx, term, OrderByName)
	if err != nil {
		return nil, s.storeErr(ctx, "search", err)
	}
	return result, nil
}

// ResetPassword overwrites the stored hash for the account with the given
// email. It requires no proof of identity beyond knowing the address; that
// is intended behavior and callers should treat the operation accordingly.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	if anyMissing(email, newPassword) {
		return common.ErrMissingField
	}

	digest, err := s.codec.Hash(newPassword)
	if err != nil {
		return s.storeErr(ctx, "reset_password", err)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repoFor(tx)
		a, err := repo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, common.ErrNotFound) {
				return common.ErrEmailNotFound
			}
			return err
		}
		a.PasswordHash = digest
		return repo.Update(ctx, a)
	})
	return s.classify(ctx, "reset_password", err)
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// classify passes taxonomy sentinels through untouched and folds everything
// else into ErrStoreUnavailable.
func (s *Service) classify(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		common.ErrNotFound,
		common.ErrDuplicateEmail,
		common.ErrMissingField,
		common.ErrPasswordMismatch,
		common.ErrInvalidEmail,
		common.ErrInvalidCredentials,
		common.ErrEmailNotFound,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	return s.storeErr(ctx, op, err)
}

func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	s.log.Error(ctx, "store failure", "op", op, "err", err)
	return fmt.Errorf("%w: %v", common.ErrStoreUnavailable, err)
}
