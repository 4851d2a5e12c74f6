// Package http provides http transport for trends
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"moodring/internal/modkit/httpkit"
	svc "moodring/internal/services/trends/service"
)

// Register mounts trends endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// recomputed summary over an archived batch
	httpkit.Get(r, "/batches/{batch_id}", h.summary)

	// human-readable rendering of the same summary
	httpkit.Get(r, "/batches/{batch_id}/text", h.text)
}

type handlers struct{ svc svc.Service }

// TrendTextResponse wraps the rendered report
// swagger:model
type TrendTextResponse struct {
	BatchID string `json:"batch_id" example:"6f1e1d2c-5a0b-4c3d-9e8f-7a6b5c4d3e2f"`
	Text    string `json:"text"`
}

// swagger:route GET /trends/batches/{batch_id} Trends trendsSummary
// @Summary Aggregate summary for an archived batch
// @Tags Trends
// @Produce json
// @Param batch_id path string true "Batch id"
// @Success 200 {object} domain.Summary "ok"
// @Router /trends/batches/{batch_id} [get]
func (h *handlers) summary(r *stdhttp.Request) (any, error) {
	return h.svc.SummarizeBatch(r.Context(), chi.URLParam(r, "batch_id"))
}

// swagger:route GET /trends/batches/{batch_id}/text Trends trendsText
// @Summary Readable trend report for an archived batch
// @Tags Trends
// @Produce json
// @Param batch_id path string true "Batch id"
// @Success 200 {object} TrendTextResponse "ok"
// @Router /trends/batches/{batch_id}/text [get]
func (h *handlers) text(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "batch_id")
	text, err := h.svc.TrendTextBatch(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return TrendTextResponse{BatchID: id, Text: text}, nil
}
