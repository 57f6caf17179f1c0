// Package session defines the caller-held record of an authenticated
// interaction. A Session is created on successful authentication, carried
// by the caller for the lifetime of the interaction, and dropped on logout.
// It is never stored server-side and never shared process-wide.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session identifies one authenticated interaction.
type Session struct {
	ID        string
	Name      string
	Email     string
	StartedAt time.Time
}

// New returns a Session for the given account, with a fresh random id.
func New(name, email string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		StartedAt: time.Now(),
	}
}
