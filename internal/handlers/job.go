package handlers

import (
	"net/http"

	"github.com/siamlux/siamlux-api/internal/httpx"
	"github.com/siamlux/siamlux-api/internal/services"
)

type JobHandler struct {
	Svc *services.JobService
}

func NewJobHandler(svc *services.JobService) *JobHandler {
	return &JobHandler{Svc: svc}
}

// List: GET /jobs
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	jobs := h.Svc.ListJobs(r.Context())
	httpx.JSON(w, http.StatusOK, map[string]any{"items": jobs, "total": len(jobs)})
}

// Get: GET /jobs/view?id=...
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		httpx.JSONError(w, http.StatusBadRequest, "missing_id", nil)
		return
	}
	job, err := h.Svc.GetJobByID(r.Context(), id)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_load_job", nil)
		return
	}
	if job == nil {
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
		return
	}
	httpx.JSON(w, http.StatusOK, job)
}
