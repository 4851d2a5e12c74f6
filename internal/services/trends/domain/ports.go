package domain

import (
	"context"

	andom "moodring/internal/services/analysis/domain"
)

// SummarizerPort aggregates an in-memory batch of enriched predictions.
// Other modules use it to attach a summary to results they already hold
type SummarizerPort interface {
	Summarize(preds []andom.Enriched) Summary
}

// ServicePort is the full trends surface consumed by handlers
type ServicePort interface {
	SummarizerPort

	// SummarizeBatch recomputes the summary over an archived batch
	SummarizeBatch(ctx context.Context, batchID string) (Summary, error)

	// TrendTextBatch renders the archived batch summary as readable text
	TrendTextBatch(ctx context.Context, batchID string) (string, error)
}

// BatchReader is the slice of the archive the trends service needs
type BatchReader interface {
	ReadBatch(ctx context.Context, batchID string) ([]andom.Enriched, error)
}

// Ports are dependencies injected into the trends module
type Ports struct {
	Batches BatchReader // optional; nil disables archived-batch endpoints
}
