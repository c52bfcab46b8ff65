package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

// QCService appends inspection outcomes. A record carrying a rebind
// instruction hands off to the transfer saga; otherwise the outcome settles
// the unit's status in place.
type QCService struct {
	DB       *gorm.DB
	Log      zerolog.Logger
	Transfer *TransferService
}

func NewQCService(db *gorm.DB, log zerolog.Logger, transfer *TransferService) *QCService {
	return &QCService{DB: db, Log: log, Transfer: transfer}
}

// SaveRecord validates and appends the QC record, then applies its
// side-effect. QC history is append-only: records are never updated.
func (s *QCService) SaveRecord(ctx context.Context, rec *models.QCRecord) error {
	fields := map[string]string{}
	if rec.InventoryItemID == 0 {
		fields["inventory_item_id"] = "required"
	}
	if _, err := StatusForOutcome(rec.Outcome); err != nil {
		fields["outcome"] = "must be pass, fail or rework"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	db := s.DB.WithContext(ctx)
	var item models.InventoryItem
	if err := db.First(&item, rec.InventoryItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if err := db.Create(rec).Error; err != nil {
		return err
	}

	if rec.RebindProductID != 0 && rec.RebindProductID != item.ProductID {
		return s.Transfer.ComputeStockTransfer(ctx, item.ID, rec.RebindProductID, rec.Outcome)
	}
	status, _ := StatusForOutcome(rec.Outcome)
	if err := db.Model(&models.InventoryItem{}).Where("id = ?", item.ID).
		Update("status", status).Error; err != nil {
		return err
	}
	return nil
}
