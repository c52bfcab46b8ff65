package models

import (
	"time"

	"gorm.io/gorm"
)

// Product catalog models
type Product struct {
	ID uint `gorm:"primaryKey"`
	// Code is the human-readable legacy identifier (ex: AA001). Order lines
	// recorded before the surrogate-ID migration reference products by this
	// code, sometimes in the same column that newer rows use for the ID.
	Code          string `gorm:"size:40;not null;uniqueIndex"`
	Name          string `gorm:"not null"`
	Category      string `gorm:"size:80"`
	Material      string `gorm:"size:80"`
	MinStockLevel int    `gorm:"column:min_stock_level;not null;default:0"`

	Variants []Variant `gorm:"foreignKey:ProductID"`

	// Read-time counters rebuilt from purchase/order/inventory records on
	// every listing. Never written to the store.
	TotalPurchased int `gorm:"-" json:"total_purchased"`
	TotalSold      int `gorm:"-" json:"total_sold"`
	TotalPending   int `gorm:"-" json:"total_pending"`
	TotalLost      int `gorm:"-" json:"total_lost"`

	DeletedAt gorm.DeletedAt `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Variant is one purchasable configuration of a Product. Historic order rows
// identify a variant only by (product identifier, position in the list), so
// Position is kept as the aggregation key; VariantKey is the stable generated
// identifier assigned at creation so that reordering the list stops breaking
// anything new.
type Variant struct {
	ID         uint   `gorm:"primaryKey"`
	ProductID  uint   `gorm:"not null;index"`
	VariantKey string `gorm:"size:36;not null;index"`
	Position   int    `gorm:"not null;default:0"`

	Color          string  `gorm:"size:80"`
	SecondaryColor string  `gorm:"size:80"`
	Length         float64 `gorm:"not null;default:0"`
	Width          float64 `gorm:"not null;default:0"`
	Height         float64 `gorm:"not null;default:0"`
	Price          float64 `gorm:"not null;default:0"`

	// Stock is the single authoritative mutable counter; everything else
	// shown next to it is recomputed per read.
	Stock    int `gorm:"column:current_stock;not null;default:0"`
	MinStock int `gorm:"column:min_stock;not null;default:0"`

	ImageURL string `gorm:"size:255"`

	TotalSold    int `gorm:"-" json:"total_sold"`
	PendingCount int `gorm:"-" json:"pending_count"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
