package models

import "time"

type QCOutcome string

const (
	QCPass   QCOutcome = "pass"
	QCFail   QCOutcome = "fail"
	QCRework QCOutcome = "rework"
)

// QCRecord is an append-only inspection outcome for one inventory unit.
// RebindProductID, when set to a product other than the one the unit is
// currently bound to, marks a blind receive that must be corrected with a
// stock transfer.
type QCRecord struct {
	ID              uint      `gorm:"primaryKey"`
	InventoryItemID uint      `gorm:"not null;index"`
	Outcome         QCOutcome `gorm:"size:10;not null"`
	Checklist       string    `gorm:"type:text"` // JSON-encoded checklist answers
	Notes           string    `gorm:"size:500"`
	Inspector       string    `gorm:"size:120"`
	RebindProductID uint
	CreatedAt       time.Time
}
