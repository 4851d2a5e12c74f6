// Package http provides http transport for analysis
package http

import (
	stdhttp "net/http"

	"moodring/internal/modkit/httpkit"
	perr "moodring/internal/platform/errors"
	"moodring/internal/platform/net/http/bind"
	"moodring/internal/services/analysis/domain"
	trendsdomain "moodring/internal/services/trends/domain"
)

// Deps are the handler dependencies. Archive and Summarizer are optional;
// without them batch persistence and summaries are simply absent
type Deps struct {
	Enricher   domain.EnricherPort
	Archive    domain.ArchiveWriter
	Summarizer trendsdomain.SummarizerPort
	BatchMax   int
}

// Register mounts analysis endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	// one feedback item
	httpkit.Post(r, "/feedback", h.feedback)

	// a batch of feedback items, optionally persisted
	httpkit.Post(r, "/batch", h.batch)
}

type handlers struct{ deps Deps }

// BatchResponse is the batch analysis payload. BatchID is present only when
// the batch was persisted, Summary only when the trends module is mounted
// swagger:model
type BatchResponse struct {
	BatchID     string                `json:"batch_id,omitempty" example:"6f1e1d2c-5a0b-4c3d-9e8f-7a6b5c4d3e2f"`
	Predictions []domain.Enriched     `json:"predictions"`
	Summary     *trendsdomain.Summary `json:"summary,omitempty"`
}

// swagger:route POST /analysis/feedback Analysis analysisFeedback
// @Summary Analyze one feedback item
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.FeedbackInput true "Feedback"
// @Success 200 {object} domain.Enriched "ok"
// @Router /analysis/feedback [post]
func (h *handlers) feedback(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.FeedbackInput](r)
	if err != nil {
		return nil, err
	}
	return h.deps.Enricher.Enrich(r.Context(), in.Text)
}

// swagger:route POST /analysis/batch Analysis analysisBatch
// @Summary Analyze a batch of feedback items
// @Tags Analysis
// @Accept json
// @Produce json
// @Param payload body domain.FeedbackBatchInput true "Batch"
// @Success 200 {object} BatchResponse "ok"
// @Router /analysis/batch [post]
func (h *handlers) batch(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.FeedbackBatchInput](r)
	if err != nil {
		return nil, err
	}
	if h.deps.BatchMax > 0 && len(in.Items) > h.deps.BatchMax {
		return nil, perr.InvalidArgf("analysis: batch of %d exceeds the maximum of %d", len(in.Items), h.deps.BatchMax)
	}

	preds, err := h.deps.Enricher.EnrichBatch(r.Context(), in.Items)
	if err != nil {
		return nil, err
	}

	out := BatchResponse{Predictions: preds}

	if in.Persist {
		if h.deps.Archive == nil {
			return nil, perr.Unavailablef("analysis: no archive configured for persist")
		}
		source := in.Source
		if source == "" {
			source = "api"
		}
		id, err := h.deps.Archive.SaveBatch(r.Context(), source, preds)
		if err != nil {
			return nil, err
		}
		out.BatchID = id
	}

	if h.deps.Summarizer != nil {
		s := h.deps.Summarizer.Summarize(preds)
		out.Summary = &s
	}
	return out, nil
}
