// ABOUTME: Entity capability interface shared by all fitness records.
// ABOUTME: Repositories use it to read and assign identities without reflection.
package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid")

// Entity is implemented by every persisted record.
type Entity interface {
	GetID() uuid.UUID
	SetID(id uuid.UUID)
}

// ShortID returns the 8-character prefix used in listings.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}

// DateOf truncates t to midnight UTC. Photos and measurements are keyed by day.
func DateOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
