package accounts

import (
	"regexp"
	"strings"
)

// emailPattern is the permissive shape existing account data was validated
// against: one or more of [A-Za-z0-9_.+-], an '@', a dash/alphanumeric
// domain label, a dot, then further labels that may themselves contain dots
// (including a trailing dot run).
//
// The match is anchored at the start only. A syntactically valid prefix
// followed by trailing garbage is accepted; tightening the anchor would
// reject addresses already stored by earlier deployments.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)

// ValidEmail reports whether email begins with a syntactically valid
// address under the pattern above.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// anyMissing reports whether any of the given fields is empty or blank.
func anyMissing(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return true
		}
	}
	return false
}
