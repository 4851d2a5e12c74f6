// Package domain defines the core types and contracts for the analysis service
package domain

import "moodring/internal/core/taxonomy"

// Task names one of the two independent classification tasks
type Task string

// Classification tasks
const (
	TaskSentiment Task = "sentiment"
	TaskEmotion   Task = "emotion"
)

// ClassifierOutput is the raw per-task result handed to the enrichment pipeline.
// Classes and Probabilities are index-aligned; the class order is stable across
// calls on the same classifier instance
type ClassifierOutput struct {
	Label         string    `json:"label" example:"frustration"`
	Classes       []string  `json:"classes"`
	Probabilities []float64 `json:"probabilities"`
}

// TokenWeight is one influential token for a prediction, heaviest first
type TokenWeight struct {
	Token  string  `json:"token" example:"useless"`
	Weight float64 `json:"weight" example:"2"`
}

// Enriched is the fully derived record for one feedback item
type Enriched struct {
	Text                string           `json:"text" example:"Great job breaking my order again!"`
	CleanText           string           `json:"clean_text" example:"great job breaking order"`
	Sentiment           string           `json:"sentiment" example:"negative"`
	SentimentConfidence float64          `json:"sentiment_confidence" example:"0.87"`
	SentimentIntensity  string           `json:"sentiment_intensity" example:"high"`
	Emotion             string           `json:"emotion" example:"frustration"`
	EmotionConfidence   float64          `json:"emotion_confidence" example:"0.74"`
	EmotionIntensity    string           `json:"emotion_intensity" example:"medium"`
	SecondaryEmotion    *string          `json:"secondary_emotion"`
	SecondaryConfidence *float64         `json:"secondary_confidence"`
	IsMixedEmotion      bool             `json:"is_mixed_emotion" example:"false"`
	SarcasmDetected     bool             `json:"sarcasm_detected" example:"true"`
	SarcasmConfidence   float64          `json:"sarcasm_confidence" example:"0.825"`
	SarcasmIndicators   []string         `json:"sarcasm_indicators"`
	BusinessInsight     taxonomy.Insight `json:"business_insight"`
	Explanation         string           `json:"explanation"`
}

// FeedbackInput carries one feedback text for analysis
type FeedbackInput struct {
	Text string `json:"text" validate:"required,min=1" example:"The update deleted all my settings"`
}

// FeedbackBatchInput carries a batch of feedback texts
type FeedbackBatchInput struct {
	Items   []string `json:"items" validate:"required,min=1,dive,required"`
	Source  string   `json:"source,omitempty" validate:"omitempty,min=1,max=200" example:"survey-2026-08"`
	Persist bool     `json:"persist,omitempty"`
}

// FeedbackBatchOutput is the batch analysis response.
// BatchID is set only when the batch was persisted
type FeedbackBatchOutput struct {
	BatchID     string     `json:"batch_id,omitempty" example:"6f1e1d2c-5a0b-4c3d-9e8f-7a6b5c4d3e2f"`
	Predictions []Enriched `json:"predictions"`
}
