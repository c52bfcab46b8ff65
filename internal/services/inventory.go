package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

// InventoryService owns the write paths that flip unit statuses and, through
// them, the authoritative stock counters.
type InventoryService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewInventoryService(db *gorm.DB, log zerolog.Logger) *InventoryService {
	return &InventoryService{DB: db, Log: log}
}

// MarkItemLost flips a unit to lost, decrements the stock it was counted in
// and appends a ledger entry. Returns false when the unit does not exist or
// is already lost.
func (s *InventoryService) MarkItemLost(ctx context.Context, inventoryItemID uint, reason string) bool {
	db := s.DB.WithContext(ctx)
	var item models.InventoryItem
	if err := db.First(&item, inventoryItemID).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.Log.Warn().Err(err).Uint("inventory_item", inventoryItemID).Msg("mark lost: load failed")
		}
		return false
	}
	if item.Status == models.InventoryLost {
		return false
	}
	wasInStock := item.Status == models.InventoryInStock
	if err := db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
		Update("status", models.InventoryLost).Error; err != nil {
		s.Log.Warn().Err(err).Uint("inventory_item", item.ID).Msg("mark lost: status update failed")
		return false
	}
	// Only units that were counted in stock decrement it; a damaged or
	// maintenance unit already left the counter.
	if wasInStock {
		err := db.Model(&models.Variant{}).
			Where("product_id = ? AND position = ? AND current_stock > 0", item.ProductID, item.VariantPosition).
			UpdateColumn("current_stock", gorm.Expr("current_stock - 1")).Error
		if err != nil {
			s.Log.Error().Err(err).Uint("inventory_item", item.ID).Msg("mark lost: stock decrement failed after status flip")
		}
	}
	entry := models.InventoryLog{
		InventoryItemID: item.ID,
		Event:           "marked_lost",
		FromProductID:   item.ProductID,
		Detail:          reason,
	}
	if err := db.Create(&entry).Error; err != nil {
		s.Log.Warn().Err(err).Uint("inventory_item", item.ID).Msg("mark lost: ledger append failed")
	}
	return true
}

// ReceivePurchaseOrder converts every outstanding unit on the PO's lines
// into in-stock serialized inventory rows, one per unit, each with a fresh
// QR code, and bumps the receiving variant's stock. Lines whose product
// reference does not resolve are skipped and logged; they cannot affect
// stock (see Resolver).
func (s *InventoryService) ReceivePurchaseOrder(ctx context.Context, purchaseOrderID uint) ([]models.InventoryItem, error) {
	db := s.DB.WithContext(ctx)

	var po models.PurchaseOrder
	if err := db.Preload("Items").First(&po, purchaseOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase order %d", ErrNotFound, purchaseOrderID)
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstreamIO, err)
	}
	if po.Status == models.PurchaseCancelled {
		return nil, &ValidationError{Fields: map[string]string{"status": "purchase order is cancelled"}}
	}

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamIO, err)
	}
	resolver := NewResolver(products)

	var created []models.InventoryItem
	serial := 0
	for li := range po.Items {
		line := &po.Items[li]
		outstanding := line.Quantity - line.ReceivedQty
		if outstanding <= 0 {
			continue
		}
		product, ok := resolver.Resolve(line.ProductRef, 0, "")
		if !ok {
			s.Log.Warn().Str("product_ref", line.ProductRef).Uint("purchase_order", po.ID).
				Msg("receive: unresolved product reference, line skipped")
			continue
		}
		variant, err := defaultVariant(db, product.ID)
		if err != nil {
			return created, err
		}
		for n := 0; n < outstanding; n++ {
			serial++
			item := models.InventoryItem{
				QRCode:          uuid.NewString(),
				ProductID:       product.ID,
				VariantPosition: variant.Position,
				Status:          models.InventoryInStock,
				SerialNumber:    fmt.Sprintf("%s-%03d", po.Code, serial),
				LotNumber:       po.Code,
				PurchaseItemID:  line.ID,
			}
			if err := db.Create(&item).Error; err != nil {
				return created, fmt.Errorf("%w: create inventory item: %v", ErrUpstreamIO, err)
			}
			created = append(created, item)
			log := models.InventoryLog{
				InventoryItemID: item.ID,
				Event:           "received",
				ToProductID:     product.ID,
				Detail:          fmt.Sprintf("purchase order %s", po.Code),
			}
			if err := db.Create(&log).Error; err != nil {
				s.Log.Warn().Err(err).Uint("inventory_item", item.ID).Msg("receive: ledger append failed")
			}
		}
		err = db.Model(&models.Variant{}).Where("id = ?", variant.ID).
			UpdateColumn("current_stock", gorm.Expr("current_stock + ?", outstanding)).Error
		if err != nil {
			return created, &PartialWriteError{Op: "receive purchase order", Step: li, Compensated: false, Err: err}
		}
		err = db.Model(&models.PurchaseItem{}).Where("id = ?", line.ID).
			Update("received_qty", line.Quantity).Error
		if err != nil {
			return created, &PartialWriteError{Op: "receive purchase order", Step: li, Compensated: false, Err: err}
		}
	}
	if err := db.Model(&models.PurchaseOrder{}).Where("id = ?", po.ID).
		Update("status", models.PurchaseReceived).Error; err != nil {
		s.Log.Warn().Err(err).Uint("purchase_order", po.ID).Msg("receive: status update failed")
	}
	s.Log.Info().Uint("purchase_order", po.ID).Int("units", len(created)).Msg("purchase order received")
	return created, nil
}
