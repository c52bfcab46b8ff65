package services

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

// StockService rebuilds product counters and the low-stock report from the
// transactional record sets on every call. There is no cached aggregate:
// correct but O(all transactions) per read.
type StockService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewStockService(db *gorm.DB, log zerolog.Logger) *StockService {
	return &StockService{DB: db, Log: log}
}

// snapshot is one consistent-enough read of every record set the aggregator
// needs. Each fetch degrades independently to an empty slice: counters are
// advisory reorder hints, so a failed bucket must zero out, not abort the
// whole listing.
type snapshot struct {
	products       []models.Product
	purchaseItems  []models.PurchaseItem
	purchaseOrders []models.PurchaseOrder
	orders         []models.Order
	inventory      []models.InventoryItem
}

func (s *StockService) fetch(ctx context.Context) snapshot {
	var snap snapshot
	db := s.DB.WithContext(ctx)

	if err := db.Preload("Variants", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position asc")
	}).Order("id asc").Find(&snap.products).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "products").Msg("aggregation fetch failed, degrading to empty")
		snap.products = nil
	}
	if err := db.Find(&snap.purchaseOrders).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "purchase_orders").Msg("aggregation fetch failed, degrading to empty")
		snap.purchaseOrders = nil
	}
	if err := db.Find(&snap.purchaseItems).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "purchase_items").Msg("aggregation fetch failed, degrading to empty")
		snap.purchaseItems = nil
	}
	if err := db.Preload("Items").Find(&snap.orders).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "orders").Msg("aggregation fetch failed, degrading to empty")
		snap.orders = nil
	}
	if err := db.Where("status = ?", models.InventoryLost).Find(&snap.inventory).Error; err != nil {
		s.Log.Warn().Err(err).Str("bucket", "inventory_items").Msg("aggregation fetch failed, degrading to empty")
		snap.inventory = nil
	}
	return snap
}

// ListProductsWithCounters returns every product with its variants and the
// recomputed purchase/sold/pending/lost counters attached. It never fails:
// partial store failures degrade to zero-filled counters.
func (s *StockService) ListProductsWithCounters(ctx context.Context) []models.Product {
	snap := s.fetch(ctx)
	c := AggregateCounters(snap.products, snap.purchaseItems, snap.purchaseOrders, snap.orders, snap.inventory)
	c.Attach(snap.products)
	if snap.products == nil {
		return []models.Product{}
	}
	return snap.products
}

// ListLowStockVariants returns the reorder report. Same degrade policy as
// ListProductsWithCounters.
func (s *StockService) ListLowStockVariants(ctx context.Context) []ReorderEntry {
	snap := s.fetch(ctx)
	c := AggregateCounters(snap.products, snap.purchaseItems, snap.purchaseOrders, snap.orders, snap.inventory)
	entries := LowStockReport(snap.products, c)
	if entries == nil {
		return []ReorderEntry{}
	}
	return entries
}
