package service

import (
	"context"

	"moodring/internal/core/taxonomy"
	perr "moodring/internal/platform/errors"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/trends/domain"
)

// Service defines the trends service contract
type Service interface {
	domain.ServicePort
}

// Svc implements the trends service over the taxonomy table and, when
// available, the archive reader for persisted batches
type Svc struct {
	tax     *taxonomy.Table
	th      taxonomy.Thresholds
	batches domain.BatchReader
}

// New constructs a trends service. batches may be nil, which disables the
// archived-batch queries only
func New(tax *taxonomy.Table, th taxonomy.Thresholds, batches domain.BatchReader) *Svc {
	if tax == nil {
		panic("trends.Service requires a non nil taxonomy table")
	}
	return &Svc{tax: tax, th: th, batches: batches}
}

// Summarize aggregates an in-memory batch
func (s *Svc) Summarize(preds []andom.Enriched) domain.Summary {
	return NewAnalyzer(preds, s.tax, s.th).Summary()
}

// SummarizeBatch recomputes the summary over an archived batch
func (s *Svc) SummarizeBatch(ctx context.Context, batchID string) (domain.Summary, error) {
	preds, err := s.readBatch(ctx, batchID)
	if err != nil {
		return domain.Summary{}, err
	}
	return NewAnalyzer(preds, s.tax, s.th).Summary(), nil
}

// TrendTextBatch renders the archived batch summary as readable text
func (s *Svc) TrendTextBatch(ctx context.Context, batchID string) (string, error) {
	preds, err := s.readBatch(ctx, batchID)
	if err != nil {
		return "", err
	}
	return NewAnalyzer(preds, s.tax, s.th).TrendText(), nil
}

func (s *Svc) readBatch(ctx context.Context, batchID string) ([]andom.Enriched, error) {
	if s.batches == nil {
		return nil, perr.Unavailablef("trends: no batch archive configured")
	}
	if batchID == "" {
		return nil, perr.InvalidArgf("trends: batch id is required")
	}
	return s.batches.ReadBatch(ctx, batchID)
}
