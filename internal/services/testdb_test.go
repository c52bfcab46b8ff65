package services

import (
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.Product{}, &models.Variant{},
		&models.Order{}, &models.OrderItem{}, &models.SubJob{}, &models.PaymentInstallment{},
		&models.PurchaseOrder{}, &models.PurchaseItem{},
		&models.InventoryItem{}, &models.InventoryLog{},
		&models.QCRecord{}, &models.JobRecord{}, &models.Setting{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLogger() zerolog.Logger { return zerolog.Nop() }

// seedProduct inserts a product with one variant and returns both.
func seedProduct(t *testing.T, db *gorm.DB, code string, stock, minStock int) (models.Product, models.Variant) {
	t.Helper()
	p := models.Product{Code: code, Name: "Product " + code}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("product %s: %v", code, err)
	}
	v := models.Variant{ProductID: p.ID, VariantKey: code + "-v0", Position: 0, Color: "ทอง", Stock: stock, MinStock: minStock, Price: 100}
	if err := db.Create(&v).Error; err != nil {
		t.Fatalf("variant %s: %v", code, err)
	}
	return p, v
}
