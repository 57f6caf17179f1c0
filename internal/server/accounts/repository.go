package accounts

import (
	"context"
	"database/sql"
	"strings"
)

// Repository is the durable, queryable collection of account records.
// Implementations must enforce the unique-email invariant themselves (a
// UNIQUE constraint) and report violations as common.ErrDuplicateEmail,
// so that the constraint is authoritative even when a caller's pre-check
// raced with a concurrent write.
type Repository interface {
	// Create persists a new record and fills in the assigned id.
	Create(ctx context.Context, a *Account) (*Account, error)

	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByEmail finds an account by exact (case-sensitive) email. Used for
	// authentication and duplicate checks.
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// Update rewrites name and email in place. When a.PasswordHash is empty
	// the stored hash is retained; otherwise it is replaced wholesale.
	Update(ctx context.Context, a *Account) error

	// Delete removes the record irreversibly. Missing ids report
	// common.ErrNotFound, never success.
	Delete(ctx context.Context, id int64) error

	// List returns all accounts in ascending lexicographic order on the
	// requested field.
	List(ctx context.Context, order OrderBy) ([]Summary, error)

	// Search returns accounts whose name or email contains term as a
	// literal substring, ordered by the requested field.
	Search(ctx context.Context, term string, order OrderBy) ([]Summary, error)
}

// likeEscaper neutralizes LIKE metacharacters so a search term always
// matches as a literal substring.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func collectSummaries(rows *sql.Rows) ([]Summary, error) {
	defer rows.Close()

	var result []Summary
	for rows.Next() {
		var item Summary
		if err := rows.Scan(&item.ID, &item.Name, &item.Email); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
