package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents the kind of a derived notification
type NotificationType string

const NotificationTypeLowStock NotificationType = "LOW_STOCK"

// Notification is a derived side-effect record. Only the stock ledger
// creates these; clients can read and acknowledge them.
type Notification struct {
	ID        uuid.UUID        `json:"id" db:"id"`
	Type      NotificationType `json:"type" db:"type"`
	Title     string           `json:"title" db:"title"`
	Message   string           `json:"message" db:"message"`
	Metadata  JSONB            `json:"metadata,omitempty" db:"metadata"`
	Read      bool             `json:"read" db:"read"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}
