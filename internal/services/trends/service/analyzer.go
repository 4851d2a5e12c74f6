// Package service implements the trends aggregation workflows
package service

import (
	"moodring/internal/core/taxonomy"
	andom "moodring/internal/services/analysis/domain"
	"moodring/internal/services/trends/domain"
)

// Analyzer computes aggregate views over one ordered batch of enriched
// predictions. Every query walks the full slice; there is no incremental
// state, so an Analyzer is safe to share once constructed
type Analyzer struct {
	preds []andom.Enriched
	tax   *taxonomy.Table
	th    taxonomy.Thresholds
}

// NewAnalyzer constructs an Analyzer over preds, which it does not copy
// and which must not be mutated afterwards
func NewAnalyzer(preds []andom.Enriched, tax *taxonomy.Table, th taxonomy.Thresholds) *Analyzer {
	return &Analyzer{preds: preds, tax: tax, th: th}
}

// labelCount tallies values preserving first-seen order so percentage maps
// and tie-breaks stay deterministic for a given input order
type labelCount struct {
	order  []string
	counts map[string]int
}

func newLabelCount() *labelCount {
	return &labelCount{counts: make(map[string]int)}
}

func (lc *labelCount) add(label string) {
	if _, seen := lc.counts[label]; !seen {
		lc.order = append(lc.order, label)
	}
	lc.counts[label]++
}

// top returns the first-encountered label with the maximum count
func (lc *labelCount) top() (string, bool) {
	best, bestN := "", -1
	for _, l := range lc.order {
		if lc.counts[l] > bestN {
			best, bestN = l, lc.counts[l]
		}
	}
	return best, bestN >= 0
}

func (lc *labelCount) percentages(total int) map[string]float64 {
	out := make(map[string]float64, len(lc.order))
	for _, l := range lc.order {
		out[l] = float64(lc.counts[l]) / float64(total) * 100
	}
	return out
}

// SentimentDistribution maps each observed sentiment to its percentage
func (a *Analyzer) SentimentDistribution() map[string]float64 {
	return a.distribution(func(p andom.Enriched) string { return p.Sentiment })
}

// EmotionDistribution maps each observed emotion to its percentage
func (a *Analyzer) EmotionDistribution() map[string]float64 {
	return a.distribution(func(p andom.Enriched) string { return p.Emotion })
}

func (a *Analyzer) distribution(key func(andom.Enriched) string) map[string]float64 {
	if len(a.preds) == 0 {
		return map[string]float64{}
	}
	lc := newLabelCount()
	for _, p := range a.preds {
		lc.add(key(p))
	}
	return lc.percentages(len(a.preds))
}

// DominantEmotion returns the most frequent emotion, ties going to the
// first encountered; "unknown" on an empty batch
func (a *Analyzer) DominantEmotion() string {
	lc := newLabelCount()
	for _, p := range a.preds {
		lc.add(p.Emotion)
	}
	if top, ok := lc.top(); ok {
		return top
	}
	return taxonomy.Unknown
}

// AverageConfidence returns the mean sentiment and emotion confidence
func (a *Analyzer) AverageConfidence() domain.Confidence {
	if len(a.preds) == 0 {
		return domain.Confidence{}
	}
	var s, e float64
	for _, p := range a.preds {
		s += p.SentimentConfidence
		e += p.EmotionConfidence
	}
	n := float64(len(a.preds))
	return domain.Confidence{Sentiment: s / n, Emotion: e / n}
}

// IntensityBreakdown counts intensity bands per task
func (a *Analyzer) IntensityBreakdown() map[string]map[string]int {
	sent := make(map[string]int)
	emo := make(map[string]int)
	for _, p := range a.preds {
		sent[p.SentimentIntensity]++
		emo[p.EmotionIntensity]++
	}
	return map[string]map[string]int{"sentiment": sent, "emotion": emo}
}

// EmotionGroupDistribution maps each emotion group to its percentage of the
// batch; emotions outside the taxonomy land in the "unknown" bucket
func (a *Analyzer) EmotionGroupDistribution() map[string]float64 {
	return a.distribution(func(p andom.Enriched) string { return a.tax.Group(p.Emotion) })
}

// MixedEmotionRate is the percentage of items flagged as mixed emotion
func (a *Analyzer) MixedEmotionRate() float64 {
	return a.rate(func(p andom.Enriched) bool { return p.IsMixedEmotion })
}

// SarcasmRate is the percentage of items with sarcasm detected. Records
// without sarcasm fields carry the zero value and simply do not count
func (a *Analyzer) SarcasmRate() float64 {
	return a.rate(func(p andom.Enriched) bool { return p.SarcasmDetected })
}

func (a *Analyzer) rate(flag func(andom.Enriched) bool) float64 {
	if len(a.preds) == 0 {
		return 0.0
	}
	n := 0
	for _, p := range a.preds {
		if flag(p) {
			n++
		}
	}
	return float64(n) / float64(len(a.preds)) * 100
}

// SarcasmSentimentCorrelation returns, per sentiment, the percentage of that
// sentiment's items with sarcasm detected. Sentiments with no items read 0.0
func (a *Analyzer) SarcasmSentimentCorrelation() map[string]float64 {
	if len(a.preds) == 0 {
		return map[string]float64{}
	}
	out := make(map[string]float64, 3)
	for _, sentiment := range []string{"positive", "negative", "neutral"} {
		total, sarcastic := 0, 0
		for _, p := range a.preds {
			if p.Sentiment != sentiment {
				continue
			}
			total++
			if p.SarcasmDetected {
				sarcastic++
			}
		}
		if total > 0 {
			out[sentiment] = float64(sarcastic) / float64(total) * 100
		} else {
			out[sentiment] = 0.0
		}
	}
	return out
}

// HighRiskFeedback returns items whose emotion is in the curated high-risk
// set with confidence strictly above threshold, in original order
func (a *Analyzer) HighRiskFeedback(threshold float64) []domain.RiskItem {
	return a.triage(threshold, taxonomy.IsHighRisk)
}

// PositiveOpportunities returns items whose emotion is in the curated
// opportunity set with confidence strictly above threshold, in original order
func (a *Analyzer) PositiveOpportunities(threshold float64) []domain.RiskItem {
	return a.triage(threshold, taxonomy.IsOpportunity)
}

func (a *Analyzer) triage(threshold float64, member func(string) bool) []domain.RiskItem {
	out := make([]domain.RiskItem, 0)
	for _, p := range a.preds {
		if member(p.Emotion) && p.EmotionConfidence > threshold {
			out = append(out, domain.RiskItem{
				Text:              p.Text,
				Emotion:           p.Emotion,
				EmotionConfidence: p.EmotionConfidence,
				Sentiment:         p.Sentiment,
			})
		}
	}
	return out
}

// SarcasticFeedback returns items with sarcasm detected at or above
// threshold, in original order
func (a *Analyzer) SarcasticFeedback(threshold float64) []domain.SarcasticItem {
	out := make([]domain.SarcasticItem, 0)
	for _, p := range a.preds {
		if p.SarcasmDetected && p.SarcasmConfidence >= threshold {
			out = append(out, domain.SarcasticItem{
				Text:              p.Text,
				Emotion:           p.Emotion,
				Sentiment:         p.Sentiment,
				SarcasmConfidence: p.SarcasmConfidence,
			})
		}
	}
	return out
}

// PriorityBreakdown counts items per business-insight priority
func (a *Analyzer) PriorityBreakdown() map[string]int {
	return a.breakdown(func(p andom.Enriched) string { return p.BusinessInsight.Priority })
}

// CategoryBreakdown counts items per business-insight category
func (a *Analyzer) CategoryBreakdown() map[string]int {
	return a.breakdown(func(p andom.Enriched) string { return p.BusinessInsight.Category })
}

func (a *Analyzer) breakdown(key func(andom.Enriched) string) map[string]int {
	out := make(map[string]int)
	for _, p := range a.preds {
		k := key(p)
		if k == "" {
			k = "Unknown"
		}
		out[k]++
	}
	return out
}

// Summary bundles every aggregate into one report
func (a *Analyzer) Summary() domain.Summary {
	sentDist := a.SentimentDistribution()

	dominantSentiment := taxonomy.Unknown
	if len(a.preds) > 0 {
		lc := newLabelCount()
		for _, p := range a.preds {
			lc.add(p.Sentiment)
		}
		dominantSentiment, _ = lc.top()
	}

	priorities := a.PriorityBreakdown()

	return domain.Summary{
		TotalFeedback:               len(a.preds),
		DominantSentiment:           dominantSentiment,
		DominantEmotion:             a.DominantEmotion(),
		SentimentBreakdown:          sentDist,
		TopEmotions:                 a.topEmotions(3),
		EmotionGroupDistribution:    a.EmotionGroupDistribution(),
		MixedEmotionRate:            a.MixedEmotionRate(),
		SarcasmRate:                 a.SarcasmRate(),
		SarcasmSentimentCorrelation: a.SarcasmSentimentCorrelation(),
		AverageConfidence:           a.AverageConfidence(),
		IntensityBreakdown:          a.IntensityBreakdown(),
		HighRiskCount:               len(a.HighRiskFeedback(a.th.HighRisk)),
		PositiveOpportunityCount:    len(a.PositiveOpportunities(a.th.PositiveOpportunity)),
		UrgentAttentionNeeded:       priorities["Critical"] + priorities["High"],
		PriorityBreakdown:           priorities,
		CategoryBreakdown:           a.CategoryBreakdown(),
	}
}

// topEmotions ranks observed emotions by share descending, count ties
// resolved by first-seen order
func (a *Analyzer) topEmotions(n int) []domain.EmotionShare {
	lc := newLabelCount()
	for _, p := range a.preds {
		lc.add(p.Emotion)
	}

	ranked := make([]domain.EmotionShare, 0, len(lc.order))
	remaining := append([]string(nil), lc.order...)
	for len(remaining) > 0 && len(ranked) < n {
		bestIdx := 0
		for i, l := range remaining {
			if lc.counts[l] > lc.counts[remaining[bestIdx]] {
				bestIdx = i
			}
		}
		l := remaining[bestIdx]
		ranked = append(ranked, domain.EmotionShare{
			Emotion: l,
			Percent: float64(lc.counts[l]) / float64(len(a.preds)) * 100,
		})
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return ranked
}
