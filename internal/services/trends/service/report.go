package service

import (
	"fmt"
	"strings"

	"moodring/internal/services/trends/domain"
)

// TrendText renders the batch summary as the fixed multi-line report shown
// in dashboards and the batch CLI
func (a *Analyzer) TrendText() string {
	return RenderTrendText(a.Summary())
}

// RenderTrendText renders an already-computed summary. Line order is fixed:
// header, overall sentiment, top emotions, mixed/sarcasm rates, emotion
// groups, business actions
func RenderTrendText(s domain.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 **Batch Analysis Summary** (%d feedbacks)\n\n", s.TotalFeedback)
	fmt.Fprintf(&b, "**Overall Sentiment**: %s dominant\n\n", title(s.DominantSentiment))

	b.WriteString("**Top 3 Emotions**:\n")
	for _, e := range s.TopEmotions {
		fmt.Fprintf(&b, "  - %s: %.1f%%\n", title(e.Emotion), e.Percent)
	}

	fmt.Fprintf(&b, "\n**Mixed Emotions**: %.1f%% of feedback\n", s.MixedEmotionRate)

	if s.SarcasmRate > 0 {
		fmt.Fprintf(&b, "**Sarcasm Detected**: %.1f%% of feedback\n", s.SarcasmRate)
		fmt.Fprintf(&b, "  - Sarcasm in negative feedback: %.1f%%\n",
			s.SarcasmSentimentCorrelation["negative"])
	}

	b.WriteString("\n**Emotion Groups**:\n")
	for _, group := range []string{"positive", "negative", "neutral_cognitive", "unknown"} {
		if pct, ok := s.EmotionGroupDistribution[group]; ok {
			fmt.Fprintf(&b, "  - %s: %.1f%%\n", titleWords(group), pct)
		}
	}

	b.WriteString("\n**Business Actions**:\n")
	fmt.Fprintf(&b, "  - ⚠️ High Risk: %d items\n", s.HighRiskCount)
	fmt.Fprintf(&b, "  - ✅ Positive Opportunities: %d items\n", s.PositiveOpportunityCount)
	fmt.Fprintf(&b, "  - 🚨 Urgent Attention: %d items", s.UrgentAttentionNeeded)

	return b.String()
}

// title upper-cases the first byte of an ASCII label
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleWords turns a snake_case group name into spaced title case,
// e.g. "neutral_cognitive" -> "Neutral Cognitive"
func titleWords(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		words[i] = title(w)
	}
	return strings.Join(words, " ")
}
