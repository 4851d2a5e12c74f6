package service

import (
	"fmt"
	"strings"

	"moodring/internal/core/sarcasm"
	"moodring/internal/services/analysis/domain"
)

// buildExplanation renders the natural-language explanation for one prediction.
// Sentence order is fixed: detection summary, keyword evidence, sarcasm block
// or sentiment/emotion alignment
func (s *Service) buildExplanation(
	text, sentiment, emotion string,
	emoConf float64,
	emoTokens []domain.TokenWeight,
	sarc sarcasm.Result,
	originalSentiment string,
) string {
	parts := make([]string, 0, 5)

	confDesc := "lower confidence"
	switch {
	case emoConf > s.th.IntensityHigh:
		confDesc = "high confidence"
	case emoConf > s.th.IntensityMedium:
		confDesc = "moderate confidence"
	}
	parts = append(parts, fmt.Sprintf("The model detected %s with %s (%s).",
		strings.ToUpper(emotion), confDesc, pct2(emoConf)))

	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range s.pack.Keywords[emotion] {
		if strings.Contains(lower, kw) {
			matched = append(matched, "'"+kw+"'")
		}
	}
	if len(matched) > 0 {
		if len(matched) > 3 {
			matched = matched[:3]
		}
		parts = append(parts, fmt.Sprintf("This is indicated by %s-related expressions such as %s.",
			emotion, strings.Join(matched, ", ")))
	} else if len(emoTokens) > 0 {
		quoted := make([]string, 0, 3)
		for i, tk := range emoTokens {
			if i == 3 {
				break
			}
			quoted = append(quoted, "'"+tk.Token+"'")
		}
		parts = append(parts, "Key indicators include: "+strings.Join(quoted, ", ")+".")
	}

	if sarc.IsSarcastic {
		desc := "Moderate"
		if sarc.Confidence > s.th.SarcasmOverride {
			desc = "Strong"
		}
		parts = append(parts, fmt.Sprintf("⚠️ %s sarcasm detected (%s).", desc, pct1(sarc.Confidence)))

		if len(sarc.Indicators) > 0 {
			ind := sarc.Indicators
			if len(ind) > 2 {
				ind = ind[:2]
			}
			parts = append(parts, "Sarcasm signals: "+strings.Join(ind, ", ")+".")
		}

		if originalSentiment != "" && originalSentiment != sentiment {
			parts = append(parts, fmt.Sprintf(
				"Although surface-level analysis suggested %s sentiment, sarcasm detection re-evaluated this as %s due to ironic language use.",
				originalSentiment, sentiment))
		} else {
			parts = append(parts, fmt.Sprintf(
				"The %s sentiment interpretation accounts for the detected sarcasm, recognizing that positive words may be used ironically to express negativity.",
				sentiment))
		}
	} else if s.pack.Taxonomy.Group(emotion) == sentiment {
		parts = append(parts, fmt.Sprintf("The %s sentiment aligns with the %s emotion.", sentiment, emotion))
	}

	return strings.Join(parts, " ")
}

func pct2(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
func pct1(v float64) string { return fmt.Sprintf("%.1f%%", v*100) }
