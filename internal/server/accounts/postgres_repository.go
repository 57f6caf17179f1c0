package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/dbx"
)

// pgUniqueViolation is the Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgresRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx) over the pgx stdlib driver.
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a new PostgresRepository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func isPostgresUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (r *PostgresRepository) Create(ctx context.Context, a *Account) (*Account, error) {
	query :=
		`INSERT INTO accounts (name, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query, a.Name, a.Email, a.PasswordHash).Scan(&a.ID)
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query :=
		`SELECT id, name, email, password_hash FROM accounts
		 WHERE id = $1
		 `

	a := &Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query :=
		`SELECT id, name, email, password_hash FROM accounts
		 WHERE email = $1
		 `

	a := &Account{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *Account) error {
	var (
		res sql.Result
		err error
	)
	if a.PasswordHash == "" {
		query := `UPDATE accounts SET name = $1, email = $2 WHERE id = $3`
		res, err = r.db.ExecContext(ctx, query, a.Name, a.Email, a.ID)
	} else {
		query := `UPDATE accounts SET name = $1, email = $2, password_hash = $3 WHERE id = $4`
		res, err = r.db.ExecContext(ctx, query, a.Name, a.Email, a.PasswordHash, a.ID)
	}
	if err != nil {
		if isPostgresUniqueViolation(err) {
			return common.ErrDuplicateEmail
		}
		return fmt.Errorf("db error: %w", err)
	}

	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	ra, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if ra == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, order OrderBy) ([]Summary, error) {
	query := fmt.Sprintf(`SELECT id, name, email FROM accounts ORDER BY %s`, order.column())

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectSummaries(rows)
}

func (r *PostgresRepository) Search(ctx context.Context, term string, order OrderBy) ([]Summary, error) {
	query := fmt.Sprintf(
		`SELECT id, name, email FROM accounts WHERE name LIKE $1 ESCAPE '\' OR email LIKE $2 ESCAPE '\' ORDER BY %s`,
		order.column())

	pattern := likePattern(term)
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectSummaries(rows)
}
