package accounts

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgouveia/userdb/internal/common"
)

func newPostgresRepoMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestPostgresRepository_CreateReturnsID(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectQuery(`INSERT INTO accounts \(name, email, password_hash\)`).
		WithArgs("Ana", "ana@x.com", "digest").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	a, err := repo.Create(context.Background(), &Account{Name: "Ana", Email: "ana@x.com", PasswordHash: "digest"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), a.ID)
}

func TestPostgresRepository_CreateUniqueViolation(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "accounts_email_key"})

	_, err := repo.Create(context.Background(), &Account{Name: "Ana", Email: "ana@x.com", PasswordHash: "digest"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestPostgresRepository_GetByEmail(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password_hash"}).
		AddRow(int64(1), "Ana", "ana@x.com", "digest")
	mock.ExpectQuery(`SELECT id, name, email, password_hash FROM accounts`).
		WithArgs("ana@x.com").
		WillReturnRows(rows)

	a, err := repo.GetByEmail(context.Background(), "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, "digest", a.PasswordHash)
}

func TestPostgresRepository_GetByIDNotFound(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectQuery(`SELECT id, name, email, password_hash FROM accounts`).
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostgresRepository_UpdateUniqueViolation(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectExec(`UPDATE accounts SET name = \$1, email = \$2 WHERE id = \$3`).
		WithArgs("Bob", "ana@x.com", int64(2)).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	err := repo.Update(context.Background(), &Account{ID: 2, Name: "Bob", Email: "ana@x.com"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

func TestPostgresRepository_UpdateEmptyHashSkipsPasswordColumn(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectExec(`UPDATE accounts SET name = \$1, email = \$2 WHERE id = \$3`).
		WithArgs("Ana", "ana@x.com", int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &Account{ID: 1, Name: "Ana", Email: "ana@x.com"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteNotFound(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	mock.ExpectExec(`DELETE FROM accounts WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 99), common.ErrNotFound)
}

func TestPostgresRepository_SearchUsesEscapedPattern(t *testing.T) {
	repo, mock := newPostgresRepoMock(t)

	rows := sqlmock.NewRows([]string{"id", "name", "email"}).
		AddRow(int64(1), "Ana", "ana@x.com")
	mock.ExpectQuery(`SELECT id, name, email FROM accounts WHERE name LIKE \$1 ESCAPE '\\' OR email LIKE \$2 ESCAPE '\\' ORDER BY name`).
		WithArgs("%an%", "%an%").
		WillReturnRows(rows)

	result, err := repo.Search(context.Background(), "an", OrderByName)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Ana", result[0].Name)
}
