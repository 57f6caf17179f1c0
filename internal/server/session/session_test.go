package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	before := time.Now()
	s := New("Ana", "ana@x.com")

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, "Ana", s.Name)
	assert.Equal(t, "ana@x.com", s.Email)
	assert.False(t, s.StartedAt.Before(before))
}

func TestNewIDsAreUnique(t *testing.T) {
	seen := map[string]struct{}{}
	for i := 0; i < 100; i++ {
		s := New("Ana", "ana@x.com")
		if _, dup := seen[s.ID]; dup {
			t.Fatalf("duplicate session id %q", s.ID)
		}
		seen[s.ID] = struct{}{}
	}
}
