// Package repo provides the Postgres repository for the batch archive
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"moodring/internal/modkit/repokit"
	perr "moodring/internal/platform/errors"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/archive/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the archive repository
type Storage interface {
	InsertBatch(ctx context.Context, ref domain.BatchRef) error
	InsertItems(ctx context.Context, batchID string, preds []andom.Enriched) error
	SelectBatch(ctx context.Context, batchID string) (domain.BatchRef, error)
	SelectItems(ctx context.Context, batchID string) ([]andom.Enriched, error)
	SelectRecent(ctx context.Context, limit int) ([]domain.BatchRef, error)
}

// itemCols is the per-item column list shared by insert and select
const itemCols = `text, clean_text,
	sentiment, sentiment_confidence, sentiment_intensity,
	emotion, emotion_confidence, emotion_intensity,
	secondary_emotion, secondary_confidence, is_mixed_emotion,
	sarcasm_detected, sarcasm_confidence, sarcasm_indicators,
	business_action, business_priority, business_category, explanation`

// InsertBatch implements Storage
func (s *pg) InsertBatch(ctx context.Context, ref domain.BatchRef) error {
	_, err := s.q.Exec(ctx, `
		INSERT INTO batches (id, source, item_count, created_at)
		VALUES ($1, $2, $3, $4)`,
		ref.ID, ref.Source, ref.Items, ref.CreatedAt,
	)
	return err
}

// InsertItems implements Storage with one multi-row insert per batch
func (s *pg) InsertItems(ctx context.Context, batchID string, preds []andom.Enriched) error {
	if len(preds) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO batch_items (batch_id, idx, ` + itemCols + `) VALUES `)

	const cols = 20
	args := make([]any, 0, len(preds)*cols)
	for i, p := range preds {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i * cols
		sb.WriteByte('(')
		for c := 1; c <= cols; c++ {
			if c > 1 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", base+c)
		}
		sb.WriteByte(')')

		indicators, err := json.Marshal(p.SarcasmIndicators)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeJSON, "archive: marshal indicators for item %d", i)
		}

		args = append(args,
			batchID, i, p.Text, p.CleanText,
			p.Sentiment, p.SentimentConfidence, p.SentimentIntensity,
			p.Emotion, p.EmotionConfidence, p.EmotionIntensity,
			p.SecondaryEmotion, p.SecondaryConfidence, p.IsMixedEmotion,
			p.SarcasmDetected, p.SarcasmConfidence, indicators,
			p.BusinessInsight.Action, p.BusinessInsight.Priority, p.BusinessInsight.Category,
			p.Explanation,
		)
	}

	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// SelectBatch implements Storage
func (s *pg) SelectBatch(ctx context.Context, batchID string) (domain.BatchRef, error) {
	var ref domain.BatchRef
	err := s.q.QueryRow(ctx, `
		SELECT id::text, source, item_count, created_at
		FROM batches WHERE id = $1::uuid`, batchID,
	).Scan(&ref.ID, &ref.Source, &ref.Items, &ref.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.BatchRef{}, perr.NotFoundf("archive: batch %s not found", batchID)
	}
	if err != nil {
		return domain.BatchRef{}, perr.FromPostgresf(err, "archive: load batch %s", batchID)
	}
	return ref, nil
}

// SelectItems implements Storage, returning items in their original order
func (s *pg) SelectItems(ctx context.Context, batchID string) ([]andom.Enriched, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+itemCols+`
		FROM batch_items WHERE batch_id = $1::uuid
		ORDER BY idx`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]andom.Enriched, 0, 64)
	for rows.Next() {
		var p andom.Enriched
		var indicators []byte
		if err := rows.Scan(
			&p.Text, &p.CleanText,
			&p.Sentiment, &p.SentimentConfidence, &p.SentimentIntensity,
			&p.Emotion, &p.EmotionConfidence, &p.EmotionIntensity,
			&p.SecondaryEmotion, &p.SecondaryConfidence, &p.IsMixedEmotion,
			&p.SarcasmDetected, &p.SarcasmConfidence, &indicators,
			&p.BusinessInsight.Action, &p.BusinessInsight.Priority, &p.BusinessInsight.Category,
			&p.Explanation,
		); err != nil {
			return nil, err
		}
		if len(indicators) > 0 {
			if err := json.Unmarshal(indicators, &p.SarcasmIndicators); err != nil {
				return nil, perr.Wrapf(err, perr.ErrorCodeJSON, "archive: indicators for batch %s", batchID)
			}
		}
		if p.SarcasmIndicators == nil {
			p.SarcasmIndicators = []string{}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SelectRecent implements Storage
func (s *pg) SelectRecent(ctx context.Context, limit int) ([]domain.BatchRef, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id::text, source, item_count, created_at
		FROM batches ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.BatchRef, 0, limit)
	for rows.Next() {
		var ref domain.BatchRef
		if err := rows.Scan(&ref.ID, &ref.Source, &ref.Items, &ref.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}
