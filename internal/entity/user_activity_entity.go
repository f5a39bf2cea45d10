package entity

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity is a fire-and-forget audit record. Writes are
// best-effort: failures are logged, never surfaced or retried.
type UserActivity struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Kind      string
	Metadata  map[string]interface{}
	CreatedAt time.Time
}
