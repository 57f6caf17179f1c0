package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mgouveia/userdb/internal/common"
	"github.com/mgouveia/userdb/internal/dbx"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or
// *sql.Tx) over the modernc sqlite driver.
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func isSQLiteUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
		se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func (r *SQLiteRepository) Create(ctx context.Context, a *Account) (*Account, error) {
	query := `INSERT INTO accounts (name, email, password_hash) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, a.Name, a.Email, a.PasswordHash)
	if err != nil {
		if isSQLiteUniqueViolation(err) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	a.ID = id
	return a, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*Account, error) {
	query := `SELECT id, name, email, password_hash FROM accounts WHERE id = ?`

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

func (r *SQLiteRepository) GetByEmail(ctx context.Context, email string) (*Account, error) {
	query := `SELECT id, name, email, password_hash FROM accounts WHERE email = ?`

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

func (r *SQLiteRepository) Update(ctx context.Context, a *Account) error {
	var (
		res sql.Result
		err error
	)
	if a.PasswordHash == "" {
		query := `UPDATE accounts SET name = ?, email = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, query, a.Name, a.Email, a.ID)
	} else {
		query := `UPDATE accounts SET name = ?, email = ?, password_hash = ? WHERE id = ?`
		res, err = r.db.ExecContext(ctx, query, a.Name, a.Email, a.PasswordHash, a.ID)
	}
	if err != nil {
		if isSQLiteUniqueViolation(err) {
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

func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM accounts WHERE id = ?`

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

func (r *SQLiteRepository) List(ctx context.Context, order OrderBy) ([]Summary, error) {
	query := fmt.Sprintf(`SELECT id, name, email FROM accounts ORDER BY %s`, order.column())

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectSummaries(rows)
}

// Search relies on PRAGMA case_sensitive_like being set on the connection
// (done by the repository manager) so containment matches case-sensitively,
// as the Postgres backend does.
func (r *SQLiteRepository) Search(ctx context.Context, term string, order OrderBy) ([]Summary, error) {
	query := fmt.Sprintf(
		`SELECT id, name, email FROM accounts WHERE name LIKE ? ESCAPE '\' OR email LIKE ? ESCAPE '\' ORDER BY %s`,
		order.column())

	pattern := likePattern(term)
	rows, err := r.db.QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return collectSummaries(rows)
}
