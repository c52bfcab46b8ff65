package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

// TransferService moves one serialized unit between products when a QC
// decision identifies a blind receive. The move is a saga of independently
// committed steps: every step writes its own ledger row before it runs, and
// committed stock steps are compensated in reverse order on failure. Stock
// writes are guarded SQL expressions rather than read-modify-write, so two
// concurrent transfers cannot clobber each other's counter.
type TransferService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewTransferService(db *gorm.DB, log zerolog.Logger) *TransferService {
	return &TransferService{DB: db, Log: log}
}

// StatusForOutcome maps a QC outcome to the unit status it leaves behind.
func StatusForOutcome(outcome models.QCOutcome) (models.InventoryStatus, error) {
	switch outcome {
	case models.QCPass:
		return models.InventoryInStock, nil
	case models.QCFail:
		return models.InventoryDamaged, nil
	case models.QCRework:
		return models.InventoryMaintenance, nil
	}
	return "", &ValidationError{Fields: map[string]string{"outcome": "must be pass, fail or rework"}}
}

// defaultVariant returns the variant stock moves are applied to: the lowest
// position. Serialized units are not variant-addressed upstream, so product
// level moves land on the first variant.
func defaultVariant(db *gorm.DB, productID uint) (*models.Variant, error) {
	var v models.Variant
	err := db.Where("product_id = ?", productID).Order("position asc").First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d has no variant", ErrNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamIO, err)
	}
	return &v, nil
}

func (s *TransferService) logStep(item *models.InventoryItem, step int, event string, from, to uint, detail string) {
	entry := models.InventoryLog{
		InventoryItemID: item.ID,
		Event:           event,
		Step:            step,
		FromProductID:   from,
		ToProductID:     to,
		Detail:          detail,
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		// Ledger rows are diagnostics; losing one must not fail the move.
		s.Log.Warn().Err(err).Uint("inventory_item", item.ID).Str("event", event).Msg("ledger append failed")
	}
}

// decrement applies max(0, stock-1) atomically; no row matches when stock is
// already zero, which is the same result.
func (s *TransferService) decrement(variantID uint) error {
	return s.DB.Model(&models.Variant{}).
		Where("id = ? AND current_stock > 0", variantID).
		UpdateColumn("current_stock", gorm.Expr("current_stock - 1")).Error
}

func (s *TransferService) increment(variantID uint, n int) error {
	return s.DB.Model(&models.Variant{}).
		Where("id = ?", variantID).
		UpdateColumn("current_stock", gorm.Expr("current_stock + ?", n)).Error
}

// ComputeStockTransfer rebinds the unit to newProductID: stock out of the
// old product, stock into the new one, unit re-pointed and restatused per
// the QC outcome, ledger entry appended. A failure mid-sequence triggers
// compensation of the committed stock steps; if compensation itself fails
// the caller gets a PartialWriteError naming the step that left the ledger
// unbalanced.
func (s *TransferService) ComputeStockTransfer(ctx context.Context, inventoryItemID, newProductID uint, outcome models.QCOutcome) error {
	newStatus, err := StatusForOutcome(outcome)
	if err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)

	var item models.InventoryItem
	if err := db.First(&item, inventoryItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: inventory item %d", ErrNotFound, inventoryItemID)
		}
		return fmt.Errorf("%w: %v", ErrUpstreamIO, err)
	}
	oldProductID := item.ProductID
	if newProductID == oldProductID {
		return &ValidationError{Fields: map[string]string{"new_product_id": "unit is already bound to this product"}}
	}
	oldVar, err := defaultVariant(db, oldProductID)
	if err != nil {
		return err
	}
	newVar, err := defaultVariant(db, newProductID)
	if err != nil {
		return err
	}

	// Step 0: stock out of the old product.
	s.logStep(&item, 0, "rebind_stock_out", oldProductID, newProductID, "")
	if err := s.decrement(oldVar.ID); err != nil {
		return &PartialWriteError{Op: "stock transfer", Step: 0, Compensated: true, Err: err}
	}

	// Step 1: stock into the new product.
	s.logStep(&item, 1, "rebind_stock_in", oldProductID, newProductID, "")
	if err := s.increment(newVar.ID, 1); err != nil {
		if cerr := s.increment(oldVar.ID, 1); cerr != nil {
			s.Log.Error().Err(cerr).Uint("inventory_item", item.ID).Msg("compensation failed, stock ledger unbalanced")
			return &PartialWriteError{Op: "stock transfer", Step: 1, Compensated: false, Err: err}
		}
		return &PartialWriteError{Op: "stock transfer", Step: 1, Compensated: true, Err: err}
	}

	// Step 2: re-point the unit and settle its status.
	s.logStep(&item, 2, "rebind_unit", oldProductID, newProductID, string(newStatus))
	err = db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
		Updates(map[string]any{"product_id": newProductID, "variant_position": newVar.Position, "status": newStatus}).Error
	if err != nil {
		cerr1 := s.increment(oldVar.ID, 1)
		cerr2 := s.decrement(newVar.ID)
		if cerr1 != nil || cerr2 != nil {
			s.Log.Error().Uint("inventory_item", item.ID).Msg("compensation failed, stock ledger unbalanced")
			return &PartialWriteError{Op: "stock transfer", Step: 2, Compensated: false, Err: err}
		}
		return &PartialWriteError{Op: "stock transfer", Step: 2, Compensated: true, Err: err}
	}

	// Step 3: closing ledger entry for the completed rebind.
	s.logStep(&item, 3, "rebind_done", oldProductID, newProductID,
		fmt.Sprintf("qc outcome %s, unit now %s", outcome, newStatus))

	s.Log.Info().
		Uint("inventory_item", item.ID).
		Uint("from_product", oldProductID).
		Uint("to_product", newProductID).
		Str("outcome", string(outcome)).
		Msg("stock transfer committed")
	return nil
}
