// Package http provides http transport for the batch archive
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"moodring/internal/modkit/httpkit"
	perr "moodring/internal/platform/errors"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/archive/domain"
	svc "moodring/internal/services/archive/service"
)

// Register mounts archive endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	// recent batches, newest first
	httpkit.Get(r, "/batches", h.list)

	// one batch ref with its items
	httpkit.Get(r, "/batches/{batch_id}", h.get)
}

type handlers struct{ svc svc.Service }

// BatchResponse is one archived batch with its items
// swagger:model
type BatchResponse struct {
	domain.BatchRef
	Predictions []andom.Enriched `json:"predictions"`
}

// swagger:route GET /archive/batches Archive archiveList
// @Summary Recent archived batches
// @Tags Archive
// @Produce json
// @Param limit query int false "Max refs to return"
// @Success 200 {array} domain.BatchRef "ok"
// @Router /archive/batches [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, perr.InvalidArgf("archive: limit %q is not a positive integer", raw)
		}
		limit = n
	}
	return h.svc.ListBatches(r.Context(), limit)
}

// swagger:route GET /archive/batches/{batch_id} Archive archiveGet
// @Summary One archived batch with items
// @Tags Archive
// @Produce json
// @Param batch_id path string true "Batch id"
// @Success 200 {object} BatchResponse "ok"
// @Router /archive/batches/{batch_id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	id := chi.URLParam(r, "batch_id")
	ref, err := h.svc.GetBatch(r.Context(), id)
	if err != nil {
		return nil, err
	}
	items, err := h.svc.ReadBatch(r.Context(), id)
	if err != nil {
		return nil, err
	}
	return BatchResponse{BatchRef: ref, Predictions: items}, nil
}
