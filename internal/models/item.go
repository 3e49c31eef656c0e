package models

import (
	"time"

	"github.com/google/uuid"
)

// ItemStatus represents the lifecycle state of an item
type ItemStatus string

const (
	ItemStatusActive   ItemStatus = "ACTIVE"
	ItemStatusArchived ItemStatus = "ARCHIVED"
)

// JSONB represents PostgreSQL JSONB type
type JSONB map[string]interface{}

type Item struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	SKU          string     `json:"sku" db:"sku"`
	Barcode      *string    `json:"barcode,omitempty" db:"barcode"`
	Description  *string    `json:"description,omitempty" db:"description"`
	CategoryID   uuid.UUID  `json:"category_id" db:"category_id"`
	SupplierID   uuid.UUID  `json:"supplier_id" db:"supplier_id"`
	LocationID   *uuid.UUID `json:"location_id,omitempty" db:"location_id"`
	CurrentStock int        `json:"current_stock" db:"current_stock"`
	MinimumStock int        `json:"minimum_stock" db:"minimum_stock"`
	MaximumStock *int       `json:"maximum_stock,omitempty" db:"maximum_stock"`
	ReorderPoint *int       `json:"reorder_point,omitempty" db:"reorder_point"`
	UnitPrice    float64    `json:"unit_price" db:"unit_price"`
	CostPrice    float64    `json:"cost_price" db:"cost_price"`
	Status       ItemStatus `json:"status" db:"status"`
	Metadata     JSONB      `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`

	// Populated on detail reads, not stored on the items row
	Images          []*ItemImage     `json:"images,omitempty" db:"-"`
	RecentMovements []*StockMovement `json:"stock_movements,omitempty" db:"-"`
}

// ItemImage is an ordered image attachment for an item. The object itself
// lives in object storage; this row only references it.
type ItemImage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ItemID    uuid.UUID `json:"item_id" db:"item_id"`
	ObjectKey string    `json:"object_key" db:"object_key"`
	URL       string    `json:"url,omitempty" db:"-"`
	IsPrimary bool      `json:"is_primary" db:"is_primary"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BatchAction enumerates the administrative bulk operations on items
type BatchAction string

const (
	BatchActionDelete  BatchAction = "delete"
	BatchActionArchive BatchAction = "archive"
	BatchActionRestore BatchAction = "restore"
)
