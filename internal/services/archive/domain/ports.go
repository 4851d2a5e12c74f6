package domain

import (
	"context"

	andom "moodring/internal/services/analysis/domain"
)

// ServicePort is the archive surface consumed by handlers and other modules.
// ReadBatch deliberately matches the trends BatchReader contract
type ServicePort interface {
	// SaveBatch persists one enriched batch atomically and returns its ref
	SaveBatch(ctx context.Context, source string, preds []andom.Enriched) (BatchRef, error)

	// ReadBatch returns a batch's items in their original order
	ReadBatch(ctx context.Context, batchID string) ([]andom.Enriched, error)

	// GetBatch returns the batch ref, or a not-found error
	GetBatch(ctx context.Context, batchID string) (BatchRef, error)

	// ListBatches returns up to limit refs, most recent first
	ListBatches(ctx context.Context, limit int) ([]BatchRef, error)
}
