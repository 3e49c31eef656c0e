package models

import (
	"time"

	"github.com/google/uuid"
)

// UserActivity is one audit-trail entry for a mutating request.
type UserActivity struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Action    string    `json:"action" db:"action"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
