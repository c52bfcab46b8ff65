package models

import "time"

type InventoryStatus string

const (
	InventoryInStock        InventoryStatus = "in_stock"
	InventoryDamaged        InventoryStatus = "damaged"
	InventoryMaintenance    InventoryStatus = "maintenance"
	InventoryLost           InventoryStatus = "lost"
	InventoryPendingBinding InventoryStatus = "pending_binding"
)

// InventoryItem is one physical serialized unit. Status transitions are the
// authoritative source of stock side-effects: the variant stock counter is
// adjusted at the moment a unit changes status, never re-derived from it.
type InventoryItem struct {
	ID     uint   `gorm:"primaryKey"`
	QRCode string `gorm:"column:qr_code;size:36;not null;uniqueIndex"`

	ProductID       uint            `gorm:"not null;index"`
	VariantPosition int             `gorm:"column:variant_position;not null;default:0"`
	Status          InventoryStatus `gorm:"size:20;not null;index"`

	CurrentLocation string `gorm:"size:180"`
	SerialNumber    string `gorm:"size:60"`
	LotNumber       string `gorm:"size:60"`

	PurchaseItemID uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryLog is the append-only tracking ledger. Multi-step stock moves
// write one row per step so a partially applied sequence can be replayed or
// repaired by hand.
type InventoryLog struct {
	ID              uint   `gorm:"primaryKey"`
	InventoryItemID uint   `gorm:"index"`
	Event           string `gorm:"size:40;not null"` // ex: rebind_stock_out, marked_lost
	Step            int    `gorm:"not null;default:0"`
	FromProductID   uint
	ToProductID     uint
	Detail          string `gorm:"size:500"`
	Actor           string `gorm:"size:120"`
	CreatedAt       time.Time
}
