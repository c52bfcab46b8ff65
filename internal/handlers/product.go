package handlers

import (
	"net/http"

	"github.com/siamlux/siamlux-api/internal/httpx"
	"github.com/siamlux/siamlux-api/internal/services"
)

// ProductHandler serves the reconciled product listings. Both endpoints are
// advisory reads: they always answer 200, with counters zeroed for any
// bucket the store failed to deliver.
type ProductHandler struct {
	Svc *services.StockService
}

func NewProductHandler(svc *services.StockService) *ProductHandler {
	return &ProductHandler{Svc: svc}
}

// List: GET /products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products := h.Svc.ListProductsWithCounters(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"items": products, "total": len(products)})
}

// LowStock: GET /products/low-stock
func (h *ProductHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	entries := h.Svc.ListLowStockVariants(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"items": entries, "total": len(entries)})
}
