package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderShipped    OrderStatus = "shipped"
	OrderCancelled  OrderStatus = "cancelled"
)

// Reserving reports whether an order in this status still holds demand
// against stock. An empty status is treated as pending (legacy rows predate
// the status column).
func (s OrderStatus) Reserving() bool {
	switch s {
	case OrderPending, OrderProcessing, OrderConfirmed, "":
		return true
	}
	return false
}

// Sales order models
type Order struct {
	ID   uint   `gorm:"primaryKey"`
	Code string `gorm:"size:40;not null;uniqueIndex"` // generated sequential, ex: SO-2025-000123

	CustomerName  string `gorm:"size:180"`
	CustomerPhone string `gorm:"size:40"`

	Status   OrderStatus `gorm:"size:12;index"`
	Total    float64     `gorm:"not null;default:0"`
	Discount float64     `gorm:"not null;default:0"`

	Items        []OrderItem          `gorm:"foreignKey:OrderID"`
	Installments []PaymentInstallment `gorm:"foreignKey:OrderID"`

	// Order-level defaults for installation jobs; per-item SubJob blocks
	// override these field by field.
	JobInfo JobInfo `gorm:"embedded;embeddedPrefix:job_"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderItem rows are replaced wholesale on every order save (delete-all,
// insert-all), so nothing outside the order may hold their IDs.
type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"not null;index"`

	// ProductRef holds whatever the form recorded: a surrogate ID, a legacy
	// code, or a legacy code standing in for an ID. Disambiguated at read
	// time by services.Resolver.
	ProductRef string `gorm:"column:product_ref;size:64"`

	// Snapshot of the product/variant at order time (copies, not live refs).
	SnapshotProductID uint   `gorm:"column:snapshot_product_id"`
	SnapshotCode      string `gorm:"column:snapshot_code;size:40"`
	SnapshotName      string `gorm:"column:snapshot_name;size:180"`
	VariantPosition   int    `gorm:"column:variant_position;not null;default:0"`
	SnapshotColor     string `gorm:"column:snapshot_color;size:80"`

	Quantity  int     `gorm:"not null;default:1"`
	UnitPrice float64 `gorm:"column:unit_price;not null;default:0"`

	SubJob *SubJob `gorm:"foreignKey:OrderItemID"`
}

type PaymentInstallment struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"not null;index"`

	Amount        float64 `gorm:"not null;default:0"`
	PaidAt        *time.Time
	SignatureURL  string `gorm:"size:255"`
	SlipURL       string `gorm:"size:255"`
	SignedByName  string `gorm:"size:180"`
	SignedByPhone string `gorm:"size:40"`
}

// JobInfo is the order-level default block for installation/delivery fields.
type JobInfo struct {
	JobType         string `gorm:"size:40"`
	AppointmentDate *time.Time
	CompletionDate  *time.Time
	Team            string `gorm:"size:120"`
	InspectorName   string `gorm:"size:120"`
	InspectorPhone  string `gorm:"size:40"`
	LocationName    string `gorm:"size:180"`
	Address         string `gorm:"size:255"`
	MapLink         string `gorm:"size:255"`
	Distance        float64
	Notes           string `gorm:"size:500"`
}

// SubJob is the optional per-item override block. Any zero field falls back
// to the order's JobInfo when the virtual job is derived.
type SubJob struct {
	ID          uint `gorm:"primaryKey"`
	OrderItemID uint `gorm:"not null;uniqueIndex"`

	// JobID, when present, pins the derived job's identifier; otherwise one
	// is fabricated from the order code and item position.
	JobID      string `gorm:"column:job_id;size:60;index"`
	Status     string `gorm:"size:20"`
	ProductRef string `gorm:"column:product_ref;size:64"`

	JobType         string `gorm:"size:40"`
	AppointmentDate *time.Time
	CompletionDate  *time.Time
	Team            string `gorm:"size:120"`
	InspectorName   string `gorm:"size:120"`
	InspectorPhone  string `gorm:"size:40"`
	LocationName    string `gorm:"size:180"`
	Address         string `gorm:"size:255"`
	MapLink         string `gorm:"size:255"`
	Distance        float64
	Notes           string `gorm:"size:500"`
}
