package models

import (
	"time"

	"github.com/google/uuid"
)

// MovementType represents the kind of stock movement
type MovementType string

const (
	MovementTypePurchase   MovementType = "PURCHASE"
	MovementTypeSale       MovementType = "SALE"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
	MovementTypeTransfer   MovementType = "TRANSFER"
	MovementTypeReturn     MovementType = "RETURN"
	MovementTypeWriteOff   MovementType = "WRITE_OFF"
)

// MovementStatus is always COMPLETED once persisted; there is no
// partial or pending state in this design.
type MovementStatus string

const MovementStatusCompleted MovementStatus = "COMPLETED"

// IsValid reports whether t is one of the six movement kinds.
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment,
		MovementTypeTransfer, MovementTypeReturn, MovementTypeWriteOff:
		return true
	}
	return false
}

// Outgoing reports whether the movement decreases stock.
// ADJUSTMENT counts as incoming.
func (t MovementType) Outgoing() bool {
	switch t {
	case MovementTypeSale, MovementTypeTransfer, MovementTypeWriteOff:
		return true
	}
	return false
}

// StockMovement is an immutable, append-only record of one inventory change.
type StockMovement struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	ItemID     uuid.UUID      `json:"item_id" db:"item_id"`
	Type       MovementType   `json:"type" db:"type"`
	Quantity   int            `json:"quantity" db:"quantity"`
	UnitPrice  float64        `json:"unit_price" db:"unit_price"`
	TotalPrice float64        `json:"total_price" db:"total_price"`
	Reference  *string        `json:"reference,omitempty" db:"reference"`
	Notes      *string        `json:"notes,omitempty" db:"notes"`
	Metadata   JSONB          `json:"metadata,omitempty" db:"metadata"`
	Status     MovementStatus `json:"status" db:"status"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// MovementFilter holds filter criteria for movement listings
type MovementFilter struct {
	ItemID *uuid.UUID    `json:"item_id,omitempty"`
	Type   *MovementType `json:"type,omitempty"`
}
