package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/siamlux/siamlux-api/internal/models"
)

func TestReceivePurchaseOrderFanOut(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db, testLogger())

	_, aaVar := seedProduct(t, db, "AA001", 2, 0)
	bb, _ := seedProduct(t, db, "BB002", 0, 0)

	po := models.PurchaseOrder{Code: "PO-1", Status: models.PurchasePending, Items: []models.PurchaseItem{
		{ProductRef: "AA001", Quantity: 3},           // legacy code spelling
		{ProductRef: fmt.Sprint(bb.ID), Quantity: 2}, // surrogate id spelling
	}}
	if err := db.Create(&po).Error; err != nil {
		t.Fatalf("po: %v", err)
	}

	items, err := svc.ReceivePurchaseOrder(context.Background(), po.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 units for 5 ordered, got %d", len(items))
	}
	qrs := map[string]bool{}
	for _, it := range items {
		if it.Status != models.InventoryInStock {
			t.Fatalf("unit status = %s, want in_stock", it.Status)
		}
		if it.QRCode == "" || qrs[it.QRCode] {
			t.Fatalf("qr codes must be fresh and unique, got %q", it.QRCode)
		}
		qrs[it.QRCode] = true
	}

	var v models.Variant
	if err := db.First(&v, aaVar.ID).Error; err != nil {
		t.Fatal(err)
	}
	if v.Stock != 5 {
		t.Fatalf("AA001 stock = %d, want 2+3", v.Stock)
	}
	var gotPO models.PurchaseOrder
	db.First(&gotPO, po.ID)
	if gotPO.Status != models.PurchaseReceived {
		t.Fatalf("po status = %s, want received", gotPO.Status)
	}

	// Receiving again creates nothing: lines are fully received.
	again, err := svc.ReceivePurchaseOrder(context.Background(), po.ID)
	if err != nil {
		t.Fatalf("second receive: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second receive created %d units", len(again))
	}
}

func TestReceivePurchaseOrderErrors(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db, testLogger())

	if _, err := svc.ReceivePurchaseOrder(context.Background(), 404); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	po := models.PurchaseOrder{Code: "PO-X", Status: models.PurchaseCancelled}
	if err := db.Create(&po).Error; err != nil {
		t.Fatal(err)
	}
	_, err := svc.ReceivePurchaseOrder(context.Background(), po.ID)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError for cancelled PO, got %v", err)
	}
}

func TestReceiveSkipsUnresolvedLines(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db, testLogger())
	seedProduct(t, db, "AA001", 0, 0)

	po := models.PurchaseOrder{Code: "PO-2", Status: models.PurchasePending, Items: []models.PurchaseItem{
		{ProductRef: "GHOST", Quantity: 4},
		{ProductRef: "AA001", Quantity: 1},
	}}
	if err := db.Create(&po).Error; err != nil {
		t.Fatal(err)
	}
	items, err := svc.ReceivePurchaseOrder(context.Background(), po.ID)
	if err != nil {
		t.Fatalf("receive: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("unresolved line must be skipped, got %d units", len(items))
	}
}

func TestMarkItemLost(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db, testLogger())

	aa, aaVar := seedProduct(t, db, "AA001", 5, 0)
	unit := models.InventoryItem{QRCode: "qr-1", ProductID: aa.ID, Status: models.InventoryInStock}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatal(err)
	}

	if !svc.MarkItemLost(context.Background(), unit.ID, "missing after delivery") {
		t.Fatal("expected mark lost to succeed")
	}
	var got models.InventoryItem
	db.First(&got, unit.ID)
	if got.Status != models.InventoryLost {
		t.Fatalf("status = %s, want lost", got.Status)
	}
	var v models.Variant
	db.First(&v, aaVar.ID)
	if v.Stock != 4 {
		t.Fatalf("stock = %d, want 4 (decremented with the status flip)", v.Stock)
	}
	var entry models.InventoryLog
	if err := db.Where("inventory_item_id = ? AND event = ?", unit.ID, "marked_lost").First(&entry).Error; err != nil {
		t.Fatalf("ledger entry missing: %v", err)
	}
	if entry.Detail != "missing after delivery" {
		t.Fatalf("reason not recorded: %q", entry.Detail)
	}

	// Already lost and unknown ids both report false.
	if svc.MarkItemLost(context.Background(), unit.ID, "again") {
		t.Fatal("second mark lost must report false")
	}
	if svc.MarkItemLost(context.Background(), 9999, "ghost") {
		t.Fatal("unknown unit must report false")
	}
	// Stock untouched by the no-ops.
	db.First(&v, aaVar.ID)
	if v.Stock != 4 {
		t.Fatalf("stock changed by no-op: %d", v.Stock)
	}
}

func TestMarkLostDamagedUnitKeepsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewInventoryService(db, testLogger())
	aa, aaVar := seedProduct(t, db, "AA001", 5, 0)
	unit := models.InventoryItem{QRCode: "qr-2", ProductID: aa.ID, Status: models.InventoryDamaged}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatal(err)
	}
	if !svc.MarkItemLost(context.Background(), unit.ID, "scrapped") {
		t.Fatal("expected success")
	}
	var v models.Variant
	db.First(&v, aaVar.ID)
	if v.Stock != 5 {
		t.Fatalf("damaged unit was not in stock; counter must stay at 5, got %d", v.Stock)
	}
}
