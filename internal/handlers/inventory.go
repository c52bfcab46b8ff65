package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/siamlux/siamlux-api/internal/httpx"
	"github.com/siamlux/siamlux-api/internal/models"
	"github.com/siamlux/siamlux-api/internal/services"
)

// InventoryHandler exposes the authoritative write paths. Unlike the
// listing endpoints these report failure explicitly; a partially applied
// transfer comes back as a 500 naming the failed step.
type InventoryHandler struct {
	Inv      *services.InventoryService
	Transfer *services.TransferService
}

func NewInventoryHandler(inv *services.InventoryService, transfer *services.TransferService) *InventoryHandler {
	return &InventoryHandler{Inv: inv, Transfer: transfer}
}

// writeServiceError maps the service error taxonomy onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", vErr.Fields)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	var pErr *services.PartialWriteError
	if errors.As(err, &pErr) {
		httpx.JSONError(w, http.StatusInternalServerError, "partial_write",
			map[string]any{"step": pErr.Step, "compensated": pErr.Compensated})
		return
	}
	httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
}

// StockTransfer: POST /inventory/transfer
func (h *InventoryHandler) StockTransfer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InventoryItemID uint   `json:"inventory_item_id"`
		NewProductID    uint   `json:"new_product_id"`
		Outcome         string `json:"outcome"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.InventoryItemID == 0 || req.NewProductID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			map[string]string{"inventory_item_id": "required", "new_product_id": "required"})
		return
	}
	err := h.Transfer.ComputeStockTransfer(r.Context(), req.InventoryItemID, req.NewProductID, models.QCOutcome(req.Outcome))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "transferred"})
}

// MarkLost: POST /inventory/lost
func (h *InventoryHandler) MarkLost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InventoryItemID uint   `json:"inventory_item_id"`
		Reason          string `json:"reason"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if req.InventoryItemID == 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", map[string]string{"inventory_item_id": "required"})
		return
	}
	ok := h.Inv.MarkItemLost(r.Context(), req.InventoryItemID, req.Reason)
	httpx.JSON(w, http.StatusOK, map[string]bool{"lost": ok})
}

// ReceivePurchaseOrder: POST /purchase-orders/receive?id=...
func (h *InventoryHandler) ReceivePurchaseOrder(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	items, err := h.Inv.ReceivePurchaseOrder(r.Context(), uint(id))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": items, "total": len(items)})
}
