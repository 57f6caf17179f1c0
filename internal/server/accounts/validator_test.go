package accounts

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{"simple", "ana@x.com", true},
		{"subdomain", "ana@mail.example.com.br", true},
		{"local part specials", "a.b+c_d-1@example.com", true},
		{"dash in domain", "ana@my-host.org", true},

		{"empty", "", false},
		{"no at", "ana", false},
		{"no domain", "ana@", false},
		{"no local part", "@x.com", false},
		{"no dot in domain", "ana@x", false},
		{"dot then nothing", "ana@x.", false},
		{"space in local part", "an a@x.com", false},

		// The pattern is permissive at the tail: a trailing dot run and
		// trailing content after a valid prefix are accepted.
		{"trailing dot run", "ana@x.com..", true},
		{"trailing junk", "ana@x.com extra", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidEmail(tc.email), "email %q", tc.email)
		})
	}
}

// TestEmailPatternFullAnchorIsStricter documents the difference between the
// shipping start-anchored pattern and a fully anchored variant. Switching to
// the strict variant would reject addresses the permissive one stores; this
// test pins down exactly which.
func TestEmailPatternFullAnchorIsStricter(t *testing.T) {
	strict := regexp.MustCompile(emailPattern.String() + `$`)

	for _, email := range []string{"ana@x.com extra", "ana@x.com,"} {
		assert.True(t, ValidEmail(email))
		assert.False(t, strict.MatchString(email))
	}

	// fully valid addresses pass both
	for _, email := range []string{"ana@x.com", "a+b@sub.example.org"} {
		assert.True(t, ValidEmail(email))
		assert.True(t, strict.MatchString(email))
	}
}

func TestAnyMissing(t *testing.T) {
	assert.False(t, anyMissing("a", "b", "c"))
	assert.True(t, anyMissing("a", "", "c"))
	assert.True(t, anyMissing("   "))
	assert.False(t, anyMissing())
}
