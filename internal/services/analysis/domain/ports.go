package domain

import "context"

// ClassifierPort produces raw per-task outputs for preprocessed text
type ClassifierPort interface {
	Classify(ctx context.Context, task Task, cleaned string) (ClassifierOutput, error)
}

// ExplainerPort surfaces the most influential tokens behind a prediction
type ExplainerPort interface {
	TopTokens(ctx context.Context, task Task, cleaned string, n int) ([]TokenWeight, error)
}

// ArchiveWriter persists an enriched batch and returns its id
type ArchiveWriter interface {
	SaveBatch(ctx context.Context, source string, preds []Enriched) (string, error)
}

// EnricherPort is the external port of the analysis module
type EnricherPort interface {
	// Enrich cleans text, runs both classification tasks, and derives the full record
	Enrich(ctx context.Context, text string) (Enriched, error)

	// EnrichOutputs derives the full record from caller-supplied classifier outputs.
	// text is the raw feedback; clean is its preprocessed form
	EnrichOutputs(ctx context.Context, text, clean string, sentiment, emotion ClassifierOutput) (Enriched, error)

	// EnrichBatch runs Enrich over texts concurrently, preserving input order
	EnrichBatch(ctx context.Context, texts []string) ([]Enriched, error)
}

// Ports are dependencies injected into the analysis module
type Ports struct {
	Classifier ClassifierPort // required
	Explainer  ExplainerPort  // optional; nil drops the token fallback in explanations
	Archive    ArchiveWriter  // optional; nil disables batch persistence
}
