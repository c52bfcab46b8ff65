package server

import (
	"net/http"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/siamlux/siamlux-api/internal/handlers"
	"github.com/siamlux/siamlux-api/internal/httpx"
	"github.com/siamlux/siamlux-api/internal/services"
)

// New constructs the root http.Handler with all routes applied.
func New(db *gorm.DB, log zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	stockSvc := services.NewStockService(db, log)
	jobSvc := services.NewJobService(db, log)
	invSvc := services.NewInventoryService(db, log)
	transferSvc := services.NewTransferService(db, log)
	qcSvc := services.NewQCService(db, log, transferSvc)

	ph := handlers.NewProductHandler(stockSvc)
	jh := handlers.NewJobHandler(jobSvc)
	ih := handlers.NewInventoryHandler(invSvc, transferSvc)
	qh := handlers.NewQCHandler(qcSvc)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "db_unreachable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /products", ph.List)
	mux.HandleFunc("GET /products/low-stock", ph.LowStock)
	mux.HandleFunc("GET /jobs", jh.List)
	mux.HandleFunc("GET /jobs/view", jh.Get)
	mux.HandleFunc("POST /inventory/transfer", ih.StockTransfer)
	mux.HandleFunc("POST /inventory/lost", ih.MarkLost)
	mux.HandleFunc("POST /purchase-orders/receive", ih.ReceivePurchaseOrder)
	mux.HandleFunc("POST /qc", qh.Create)

	return mux
}
