package models

import "time"

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

// Upstream supply models
type PurchaseOrder struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:40;not null;uniqueIndex"` // ex: PO-2025-000042

	SupplierName string         `gorm:"size:180"`
	Status       PurchaseStatus `gorm:"size:12;index"`
	OrderedAt    time.Time

	Items []PurchaseItem `gorm:"foreignKey:PurchaseOrderID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type PurchaseItem struct {
	ID              uint `gorm:"primaryKey"`
	PurchaseOrderID uint `gorm:"not null;index"`

	// Same ambiguity as OrderItem.ProductRef: historic rows carry either the
	// surrogate ID or the legacy code.
	ProductRef string `gorm:"column:product_ref;size:64"`

	Quantity    int     `gorm:"not null;default:0"`
	ReceivedQty int     `gorm:"column:received_qty;not null;default:0"`
	UnitCost    float64 `gorm:"column:unit_cost;not null;default:0"`
}
