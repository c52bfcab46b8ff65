package handlers

import (
	"net/http"

	"github.com/siamlux/siamlux-api/internal/httpx"
	"github.com/siamlux/siamlux-api/internal/models"
	"github.com/siamlux/siamlux-api/internal/services"
)

type QCHandler struct {
	Svc *services.QCService
}

func NewQCHandler(svc *services.QCService) *QCHandler {
	return &QCHandler{Svc: svc}
}

// Create: POST /qc
func (h *QCHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		InventoryItemID uint   `json:"inventory_item_id"`
		Outcome         string `json:"outcome"`
		Checklist       string `json:"checklist"`
		Notes           string `json:"notes"`
		Inspector       string `json:"inspector"`
		RebindProductID uint   `json:"rebind_product_id"`
	}
	if err := httpx.Decode(r, &req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	rec := models.QCRecord{
		InventoryItemID: req.InventoryItemID,
		Outcome:         models.QCOutcome(req.Outcome),
		Checklist:       req.Checklist,
		Notes:           req.Notes,
		Inspector:       req.Inspector,
		RebindProductID: req.RebindProductID,
	}
	if err := h.Svc.SaveRecord(r.Context(), &rec); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]any{"id": rec.ID})
}
