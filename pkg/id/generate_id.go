package id

import (
	"strings"

	"github.com/google/uuid"
)

// NewEventID returns a random UUIDv4 string used as the public id of audit events.
func NewEventID() string { return uuid.NewString() }

// NewID32 returns a UUIDv4 as exactly 32 lowercase hex characters (no separators).
// Used for X-Request-Id values.
func NewID32() string { return strings.ReplaceAll(uuid.NewString(), "-", "") }
