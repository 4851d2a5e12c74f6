// Package domain defines the report shapes produced by the trends service
package domain

// EmotionShare is one emotion's share of a batch, used for ranked listings
type EmotionShare struct {
	Emotion string  `json:"emotion" example:"frustration"`
	Percent float64 `json:"percent" example:"30"`
}

// Confidence holds the per-task average confidence over a batch
type Confidence struct {
	Sentiment float64 `json:"sentiment" example:"0.81"`
	Emotion   float64 `json:"emotion" example:"0.77"`
}

// RiskItem is one feedback item surfaced by risk or opportunity triage
type RiskItem struct {
	Text              string  `json:"text"`
	Emotion           string  `json:"emotion" example:"anger"`
	EmotionConfidence float64 `json:"emotion_confidence" example:"0.9"`
	Sentiment         string  `json:"sentiment" example:"negative"`
}

// SarcasticItem is one feedback item surfaced by the sarcasm filter
type SarcasticItem struct {
	Text              string  `json:"text"`
	Emotion           string  `json:"emotion" example:"frustration"`
	Sentiment         string  `json:"sentiment" example:"negative"`
	SarcasmConfidence float64 `json:"sarcasm_confidence" example:"0.825"`
}

// Summary is the full aggregate report over one batch.
// Distributions are keyed by observed labels only and sum to 100 within
// floating tolerance; an empty batch yields zero counts, empty maps, and
// "unknown" dominant values
type Summary struct {
	TotalFeedback     int    `json:"total_feedback" example:"10"`
	DominantSentiment string `json:"dominant_sentiment" example:"negative"`
	DominantEmotion   string `json:"dominant_emotion" example:"frustration"`

	SentimentBreakdown map[string]float64 `json:"sentiment_breakdown"`
	TopEmotions        []EmotionShare     `json:"top_3_emotions"`

	EmotionGroupDistribution map[string]float64 `json:"emotion_group_distribution"`
	MixedEmotionRate         float64            `json:"mixed_emotion_rate" example:"20"`

	SarcasmRate                 float64            `json:"sarcasm_rate" example:"10"`
	SarcasmSentimentCorrelation map[string]float64 `json:"sarcasm_sentiment_correlation"`

	AverageConfidence  Confidence                `json:"average_confidence"`
	IntensityBreakdown map[string]map[string]int `json:"intensity_breakdown"`

	HighRiskCount            int `json:"high_risk_count" example:"3"`
	PositiveOpportunityCount int `json:"positive_opportunity_count" example:"2"`
	UrgentAttentionNeeded    int `json:"urgent_attention_needed" example:"4"`

	PriorityBreakdown map[string]int `json:"priority_breakdown"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}
