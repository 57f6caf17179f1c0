// Package accounts holds the account data layer: the persisted model, the
// repository contract with its SQLite and Postgres implementations, input
// validation, and the service orchestrating them.
package accounts

// Account is the sole persisted entity: an identity record keyed by a
// store-assigned id, with a globally unique email and a hashed password.
// PasswordHash is never the plaintext and is never empty after creation.
type Account struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
}

// Summary is the listing projection of an account. The password hash never
// appears in list or search results.
type Summary struct {
	ID    int64
	Name  string
	Email string
}

// OrderBy is the closed set of sort keys accepted by list and search.
// Caller-supplied strings go through ParseOrderBy; only these values ever
// reach query text.
type OrderBy string

const (
	OrderByName  OrderBy = "name"
	OrderByEmail OrderBy = "email"
)

// ParseOrderBy maps a caller-supplied string to a sort key. The empty
// string selects the default (name). Anything else is rejected.
func ParseOrderBy(s string) (OrderBy, bool) {
	switch s {
	case "", "name":
		return OrderByName, true
	case "email":
		return OrderByEmail, true
	}
	return OrderByName, false
}

// column returns the SQL column for the sort key. Unknown values fall back
// to name so free-form text can never be interpolated into a query.
func (o OrderBy) column() string {
	if o == OrderByEmail {
		return "email"
	}
	return "name"
}
