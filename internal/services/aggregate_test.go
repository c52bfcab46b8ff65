package services

import (
	"fmt"
	"math/rand"
	"reflect"
	"testing"

	"github.com/siamlux/siamlux-api/internal/models"
)

func TestAggregateScenarioD_NoDoubleCountAcrossSpellings(t *testing.T) {
	products := []models.Product{
		{ID: 1, Code: "AA001", Variants: []models.Variant{{ProductID: 1, Position: 0}}},
	}
	orders := []models.Order{
		{ID: 10, Code: "SO-1", Status: models.OrderPending, Items: []models.OrderItem{
			{ProductRef: "AA001", Quantity: 2}, // legacy code spelling
			{ProductRef: "1", Quantity: 3},     // surrogate id spelling
		}},
	}
	c := AggregateCounters(products, nil, nil, orders, nil)
	p := &products[0]
	sold, pending := c.VariantCounts(p, 0)
	if sold != 5 || pending != 5 {
		t.Fatalf("expected 5/5 across both spellings, got sold=%d pending=%d", sold, pending)
	}
	purchased, soldTotal, pendingTotal, lost := c.ProductTotals(p)
	if soldTotal != 5 || pendingTotal != 5 || purchased != 0 || lost != 0 {
		t.Fatalf("product totals wrong: %d %d %d %d", purchased, soldTotal, pendingTotal, lost)
	}
}

func TestAggregateStatusBuckets(t *testing.T) {
	products := []models.Product{
		{ID: 1, Code: "AA001", Variants: []models.Variant{{ProductID: 1, Position: 0}}},
	}
	orders := []models.Order{
		{Code: "SO-1", Status: models.OrderPending, Items: []models.OrderItem{{ProductRef: "AA001", Quantity: 1}}},
		{Code: "SO-2", Status: models.OrderShipped, Items: []models.OrderItem{{ProductRef: "AA001", Quantity: 4}}},
		{Code: "SO-3", Status: models.OrderCancelled, Items: []models.OrderItem{{ProductRef: "AA001", Quantity: 9}}},
		{Code: "SO-4", Status: "", Items: []models.OrderItem{{ProductRef: "AA001", Quantity: 2}}}, // legacy unset status reserves
	}
	c := AggregateCounters(products, nil, nil, orders, nil)
	sold, pending := c.VariantCounts(&products[0], 0)
	// Sold sums shipped orders on top of open ones; that conflation is the
	// established reporting behavior, pinned here on purpose.
	if sold != 7 {
		t.Fatalf("sold = %d, want 7 (pending 1 + shipped 4 + unset 2)", sold)
	}
	if pending != 3 {
		t.Fatalf("pending = %d, want 3 (pending 1 + unset 2)", pending)
	}
}

func TestAggregatePurchasedAndLost(t *testing.T) {
	products := []models.Product{
		{ID: 1, Code: "AA001", Variants: []models.Variant{{ProductID: 1, Position: 0}}},
	}
	pos := []models.PurchaseOrder{
		{ID: 1, Status: models.PurchasePending},
		{ID: 2, Status: models.PurchaseCancelled},
	}
	items := []models.PurchaseItem{
		{PurchaseOrderID: 1, ProductRef: "AA001", Quantity: 10},
		{PurchaseOrderID: 1, ProductRef: "1", Quantity: 5}, // id spelling
		{PurchaseOrderID: 2, ProductRef: "AA001", Quantity: 99},
		{PurchaseOrderID: 1, ProductRef: "GHOST", Quantity: 7}, // unresolved, never counted
	}
	inventory := []models.InventoryItem{
		{ProductID: 1, Status: models.InventoryLost},
		{ProductID: 1, Status: models.InventoryLost},
		{ProductID: 1, Status: models.InventoryInStock},
	}
	c := AggregateCounters(products, items, pos, nil, inventory)
	purchased, _, _, lost := c.ProductTotals(&products[0])
	if purchased != 15 {
		t.Fatalf("purchased = %d, want 15 (cancelled PO and unresolved line excluded)", purchased)
	}
	if lost != 2 {
		t.Fatalf("lost = %d, want 2", lost)
	}
}

func TestAggregateUnresolvedItemsAreDisplayOnly(t *testing.T) {
	products := []models.Product{
		{ID: 1, Code: "AA001", Variants: []models.Variant{{ProductID: 1, Position: 0}}},
	}
	orders := []models.Order{
		{Code: "SO-1", Status: models.OrderPending, Items: []models.OrderItem{
			{ProductRef: "DELETED-PRODUCT", Quantity: 50},
		}},
	}
	c := AggregateCounters(products, nil, nil, orders, nil)
	if sold, pending := c.VariantCounts(&products[0], 0); sold != 0 || pending != 0 {
		t.Fatalf("unresolved item affected counters: sold=%d pending=%d", sold, pending)
	}
}

func TestAggregateIdempotent(t *testing.T) {
	products := []models.Product{
		{ID: 1, Code: "AA001", Variants: []models.Variant{{ProductID: 1, Position: 0}, {ProductID: 1, Position: 1}}},
		{ID: 2, Code: "BB002", Variants: []models.Variant{{ProductID: 2, Position: 0}}},
	}
	orders := []models.Order{
		{Code: "SO-1", Status: models.OrderConfirmed, Items: []models.OrderItem{
			{ProductRef: "AA001", VariantPosition: 1, Quantity: 2},
			{ProductRef: "2", Quantity: 1},
		}},
	}
	first := AggregateCounters(products, nil, nil, orders, nil)
	second := AggregateCounters(products, nil, nil, orders, nil)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not idempotent:\n%+v\n%+v", first, second)
	}
}

// Property: the writer (aggregator) and the reader (reorder report) must
// agree on the composite variant key for every (product, position) pair.
// Random catalogs and orders; any key-scheme divergence shows up as a
// variant whose reorder flag ignores its pending demand.
func TestVariantKeyConsistencyProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 200; trial++ {
		nProducts := 1 + rng.Intn(4)
		var products []models.Product
		for i := 0; i < nProducts; i++ {
			p := models.Product{ID: uint(i + 1), Code: fmt.Sprintf("P%03d", i+1)}
			nVars := 1 + rng.Intn(3)
			for v := 0; v < nVars; v++ {
				p.Variants = append(p.Variants, models.Variant{
					ProductID: p.ID,
					Position:  v,
					Stock:     rng.Intn(10),
					MinStock:  rng.Intn(5),
				})
			}
			products = append(products, p)
		}
		var orders []models.Order
		nOrders := rng.Intn(5)
		expected := map[string]int{} // canonical code_pos -> pending qty
		for o := 0; o < nOrders; o++ {
			ord := models.Order{Code: fmt.Sprintf("SO-%d-%d", trial, o), Status: models.OrderPending}
			nItems := 1 + rng.Intn(3)
			for it := 0; it < nItems; it++ {
				p := products[rng.Intn(len(products))]
				pos := rng.Intn(len(p.Variants))
				qty := 1 + rng.Intn(5)
				ref := p.Code
				if rng.Intn(2) == 0 {
					ref = fmt.Sprint(p.ID) // random spelling
				}
				ord.Items = append(ord.Items, models.OrderItem{ProductRef: ref, VariantPosition: pos, Quantity: qty})
				expected[fmt.Sprintf("%s_%d", p.Code, pos)] += qty
			}
			orders = append(orders, ord)
		}
		c := AggregateCounters(products, nil, nil, orders, nil)
		for pi := range products {
			p := &products[pi]
			for _, v := range p.Variants {
				want := expected[fmt.Sprintf("%s_%d", p.Code, v.Position)]
				_, got := c.VariantCounts(p, v.Position)
				if got != want {
					t.Fatalf("trial %d: pending for %s_%d = %d, want %d", trial, p.Code, v.Position, got, want)
				}
				// Reorder must be computed against the same pending value.
				needed := ReorderNeeded(v.Stock, v.MinStock, got)
				if needed != (v.Stock < v.MinStock+want) {
					t.Fatalf("trial %d: reorder flag diverged from consistent key scheme", trial)
				}
			}
		}
	}
}
