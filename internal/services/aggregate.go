package services

import (
	"fmt"

	"github.com/siamlux/siamlux-api/internal/models"
)

// variantKey is the composite bucket key for per-variant counters:
// "{productIdentifier}_{positionIndex}". Historic rows recorded either the
// surrogate ID or the legacy code as the identifier, so readers probe both
// spellings (see Counters.VariantCounts). Every component that buckets or
// reads per-variant demand must go through this one function; a second
// spelling of the key is how silent under-counting starts.
func variantKey(ident string, position int) string {
	if position < 0 {
		position = 0
	}
	return fmt.Sprintf("%s_%d", ident, position)
}

// Counters are the read-time reconciliation maps. Purchased and Lost are
// product-level (supply records carry no variant granularity); Sold and
// Pending are keyed by composite variant key. Buckets are keyed by the raw
// recorded identifier, not the canonical one, and probed under both
// spellings when attached to a product.
type Counters struct {
	Purchased map[string]int
	Sold      map[string]int
	Pending   map[string]int
	Lost      map[string]int
}

func newCounters() Counters {
	return Counters{
		Purchased: make(map[string]int),
		Sold:      make(map[string]int),
		Pending:   make(map[string]int),
		Lost:      make(map[string]int),
	}
}

// AggregateCounters rebuilds all counters from scratch out of the explicit
// input collections. It is a pure function: no store access, no shared
// state, deterministic for identical inputs.
//
// Note on Sold: it accumulates across every non-cancelled order regardless
// of status, so shipped orders are counted on top of still-pending ones.
// That conflates historical sales with reserved demand, but it is the
// established reporting behavior and is kept as-is.
func AggregateCounters(
	products []models.Product,
	purchases []models.PurchaseItem,
	purchaseOrders []models.PurchaseOrder,
	orders []models.Order,
	inventory []models.InventoryItem,
) Counters {
	c := newCounters()
	r := NewResolver(products)

	cancelledPOs := make(map[uint]bool)
	for _, po := range purchaseOrders {
		if po.Status == models.PurchaseCancelled {
			cancelledPOs[po.ID] = true
		}
	}
	for _, pi := range purchases {
		if cancelledPOs[pi.PurchaseOrderID] {
			continue
		}
		if _, ok := r.Resolve(pi.ProductRef, 0, ""); !ok {
			continue // unresolved refs are display-only, never counted
		}
		c.Purchased[refIdent(pi.ProductRef)] += pi.Quantity
	}

	for oi := range orders {
		o := &orders[oi]
		if o.Status == models.OrderCancelled {
			continue
		}
		reserving := o.Status.Reserving()
		for _, it := range o.Items {
			if _, ok := r.ResolveItem(it); !ok {
				continue
			}
			key := variantKey(itemIdent(it), it.VariantPosition)
			c.Sold[key] += it.Quantity
			if reserving {
				c.Pending[key] += it.Quantity
			}
		}
	}

	for _, unit := range inventory {
		if unit.Status != models.InventoryLost {
			continue
		}
		c.Lost[fmt.Sprint(unit.ProductID)]++
	}
	return c
}

// refIdent normalizes the raw recorded identifier into the bucket spelling.
func refIdent(raw string) string {
	ref := ParseProductRef(raw)
	return ref.Raw
}

// itemIdent picks the identifier an order line actually recorded, falling
// back to the snapshot when the ref column is empty.
func itemIdent(it models.OrderItem) string {
	if ref := ParseProductRef(it.ProductRef); ref.Kind != RefEmpty {
		return ref.Raw
	}
	if it.SnapshotProductID != 0 {
		return fmt.Sprint(it.SnapshotProductID)
	}
	return it.SnapshotCode
}

// identSpellings returns both historic spellings of a product identifier.
func identSpellings(p *models.Product) []string {
	spellings := []string{fmt.Sprint(p.ID)}
	if p.Code != "" && p.Code != spellings[0] {
		spellings = append(spellings, p.Code)
	}
	return spellings
}

// VariantCounts sums the per-variant buckets for a product's variant at the
// given position, probing both identifier spellings.
func (c Counters) VariantCounts(p *models.Product, position int) (sold, pending int) {
	for _, ident := range identSpellings(p) {
		key := variantKey(ident, position)
		sold += c.Sold[key]
		pending += c.Pending[key]
	}
	return sold, pending
}

// ProductTotals sums every counter for one product across both identifier
// spellings and all of its variant positions.
func (c Counters) ProductTotals(p *models.Product) (purchased, sold, pending, lost int) {
	for _, ident := range identSpellings(p) {
		purchased += c.Purchased[ident]
		lost += c.Lost[ident]
	}
	for _, v := range p.Variants {
		s, pd := c.VariantCounts(p, v.Position)
		sold += s
		pending += pd
	}
	return purchased, sold, pending, lost
}

// Attach writes the derived counters onto the transient fields of each
// product and variant in place.
func (c Counters) Attach(products []models.Product) {
	for i := range products {
		p := &products[i]
		for vi := range p.Variants {
			v := &p.Variants[vi]
			v.TotalSold, v.PendingCount = c.VariantCounts(p, v.Position)
		}
		p.TotalPurchased, p.TotalSold, p.TotalPending, p.TotalLost = c.ProductTotals(p)
	}
}
