// Package service contains archive workflows
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"moodring/internal/modkit/repokit"
	perr "moodring/internal/platform/errors"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/archive/domain"
	"moodring/internal/services/archive/repo"
)

// Service defines the archive service contract
type Service interface {
	domain.ServicePort
}

// Config for the archive service
type Config struct {
	ListLimit int // hard cap for ListBatches
}

// Svc implements the archive service
type Svc struct {
	Repo   repo.Storage
	binder repokit.Binder[repo.Storage]
	db     repokit.TxRunner
	cfg    Config
}

// New constructs an archive service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Storage], cfg Config) *Svc {
	if db == nil {
		panic("archive.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("archive.Service requires a non nil Repo binder")
	}
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = 100
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg}
}

// SaveBatch persists the batch row and its items in one transaction
func (s *Svc) SaveBatch(ctx context.Context, source string, preds []andom.Enriched) (domain.BatchRef, error) {
	if len(preds) == 0 {
		return domain.BatchRef{}, perr.InvalidArgf("archive: refusing to save an empty batch")
	}
	if source == "" {
		source = "unspecified"
	}

	ref := domain.BatchRef{
		ID:        uuid.NewString(),
		Source:    source,
		Items:     len(preds),
		CreatedAt: time.Now().UTC(),
	}

	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		if err := r.InsertBatch(ctx, ref); err != nil {
			return perr.FromPostgresf(err, "archive: insert batch %s", ref.ID)
		}
		if err := r.InsertItems(ctx, ref.ID, preds); err != nil {
			return perr.FromPostgresf(err, "archive: insert %d items for batch %s", len(preds), ref.ID)
		}
		return nil
	})
	if err != nil {
		return domain.BatchRef{}, err
	}
	return ref, nil
}

// ReadBatch returns the batch items in original order. The ref lookup comes
// first so a missing batch reads as not-found rather than an empty slice
func (s *Svc) ReadBatch(ctx context.Context, batchID string) ([]andom.Enriched, error) {
	if _, err := s.GetBatch(ctx, batchID); err != nil {
		return nil, err
	}
	items, err := s.Repo.SelectItems(ctx, batchID)
	if err != nil {
		return nil, perr.FromPostgresf(err, "archive: read items for batch %s", batchID)
	}
	return items, nil
}

// GetBatch returns the batch ref
func (s *Svc) GetBatch(ctx context.Context, batchID string) (domain.BatchRef, error) {
	if batchID == "" {
		return domain.BatchRef{}, perr.InvalidArgf("archive: batch id is required")
	}
	if _, err := uuid.Parse(batchID); err != nil {
		return domain.BatchRef{}, perr.InvalidArgf("archive: %q is not a valid batch id", batchID)
	}
	return s.Repo.SelectBatch(ctx, batchID)
}

// ListBatches returns up to limit refs, most recent first
func (s *Svc) ListBatches(ctx context.Context, limit int) ([]domain.BatchRef, error) {
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}
	refs, err := s.Repo.SelectRecent(ctx, limit)
	if err != nil {
		return nil, perr.FromPostgresf(err, "archive: list batches")
	}
	return refs, nil
}
