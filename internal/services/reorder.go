package services

import "github.com/siamlux/siamlux-api/internal/models"

// ReorderEntry is one row of the low-stock report.
type ReorderEntry struct {
	SKU             string  `json:"sku"`
	ProductCode     string  `json:"product_code"`
	ProductName     string  `json:"product_name"`
	VariantPosition int     `json:"variant_position"`
	Color           string  `json:"color"`
	Stock           int     `json:"current_stock"`
	MinStock        int     `json:"min_stock"`
	PendingReserved int     `json:"pending_reserved"`
	ReorderQuantity int     `json:"reorder_quantity"`
	Price           float64 `json:"price"`
}

// ReorderNeeded reports whether current stock fails to cover the minimum
// threshold plus demand reserved by open orders.
func ReorderNeeded(stock, minStock, pending int) bool {
	return stock < minStock+pending
}

// ReorderQuantity is the shortfall, never negative.
func ReorderQuantity(stock, minStock, pending int) int {
	q := minStock + pending - stock
	if q < 0 {
		return 0
	}
	return q
}

// LowStockReport surfaces every variant whose stock cannot cover minimum
// plus reserved demand. Pending is re-derived from the same composite-key
// buckets the aggregator wrote; any divergence in key scheme here would
// silently zero the reservation term, which is why the variant-position
// plumbing goes through Counters.VariantCounts in both places.
func LowStockReport(products []models.Product, c Counters) []ReorderEntry {
	var out []ReorderEntry
	for i := range products {
		p := &products[i]
		for _, v := range p.Variants {
			_, pending := c.VariantCounts(p, v.Position)
			minStock := v.MinStock
			if minStock == 0 {
				minStock = p.MinStockLevel
			}
			if !ReorderNeeded(v.Stock, minStock, pending) {
				continue
			}
			dims := Dimensions{Length: v.Length, Width: v.Width, Height: v.Height}
			out = append(out, ReorderEntry{
				SKU:             SKU(p.Code, &dims, v.Color, v.SecondaryColor),
				ProductCode:     p.Code,
				ProductName:     p.Name,
				VariantPosition: v.Position,
				Color:           v.Color,
				Stock:           v.Stock,
				MinStock:        minStock,
				PendingReserved: pending,
				ReorderQuantity: ReorderQuantity(v.Stock, minStock, pending),
				Price:           v.Price,
			})
		}
	}
	return out
}
