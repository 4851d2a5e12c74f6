package service

import (
	"context"
	"strings"
	"testing"

	"moodring/internal/core/lexicon"
	"moodring/internal/core/taxonomy"
	perr "moodring/internal/platform/errors"
	"moodring/internal/services/analysis/domain"
)

// fakeClassifier returns preset outputs per task
type fakeClassifier struct {
	sentiment domain.ClassifierOutput
	emotion   domain.ClassifierOutput
}

func (f *fakeClassifier) Classify(_ context.Context, task domain.Task, _ string) (domain.ClassifierOutput, error) {
	if task == domain.TaskSentiment {
		return f.sentiment, nil
	}
	return f.emotion, nil
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	p, err := lexicon.Load()
	if err != nil {
		t.Fatalf("lexicon.Load(): %v", err)
	}
	return New(&fakeClassifier{}, nil, p, taxonomy.DefaultThresholds(), Config{Workers: 2})
}

func sentimentOut(label string, pos, neg, neu float64) domain.ClassifierOutput {
	return domain.ClassifierOutput{
		Label:         label,
		Classes:       []string{"positive", "negative", "neutral"},
		Probabilities: []float64{pos, neg, neu},
	}
}

func emotionOut(label string, probs map[string]float64) domain.ClassifierOutput {
	classes := make([]string, 0, len(probs))
	ps := make([]float64, 0, len(probs))
	// deterministic order: label first, rest in fixed list order
	order := []string{"anger", "frustration", "joy", "gratitude", "neutral", "sadness"}
	for _, c := range order {
		if p, ok := probs[c]; ok {
			classes = append(classes, c)
			ps = append(ps, p)
		}
	}
	return domain.ClassifierOutput{Label: label, Classes: classes, Probabilities: ps}
}

func TestEnrichOutputs_SarcasmOverridesPositiveSentiment(t *testing.T) {
	s := newTestService(t)

	text := "Great job! You've managed to mess up my order three times in a row."
	out, err := s.EnrichOutputs(context.Background(), text, "great job mess order three times row",
		sentimentOut("positive", 0.8, 0.1, 0.1),
		emotionOut("anger", map[string]float64{"anger": 0.7, "frustration": 0.2, "joy": 0.1}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}

	if !out.SarcasmDetected {
		t.Fatal("expected sarcasm detection")
	}
	if out.SarcasmConfidence <= 0.7 {
		t.Fatalf("expected confidence > 0.7, got %v", out.SarcasmConfidence)
	}
	if out.Sentiment != "negative" {
		t.Fatalf("expected sentiment override to negative, got %q", out.Sentiment)
	}
	if !strings.Contains(out.Explanation, "re-evaluated this as negative") {
		t.Fatalf("explanation missing override note: %q", out.Explanation)
	}
}

func TestEnrichOutputs_OverrideIsOneDirectional(t *testing.T) {
	s := newTestService(t)

	// same sarcastic text, but classifier already says negative
	text := "Great job! Thanks a lot, just perfect."
	out, err := s.EnrichOutputs(context.Background(), text, "great job thanks lot perfect",
		sentimentOut("negative", 0.1, 0.8, 0.1),
		emotionOut("anger", map[string]float64{"anger": 0.7, "frustration": 0.2, "joy": 0.1}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if out.Sentiment != "negative" {
		t.Fatalf("negative sentiment must never flip, got %q", out.Sentiment)
	}

	// neutral sentiment is not overridden either
	out, err = s.EnrichOutputs(context.Background(), text, "great job thanks lot perfect",
		sentimentOut("neutral", 0.1, 0.1, 0.8),
		emotionOut("anger", map[string]float64{"anger": 0.7, "frustration": 0.2, "joy": 0.1}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if out.Sentiment != "neutral" {
		t.Fatalf("neutral sentiment must never flip, got %q", out.Sentiment)
	}
}

func TestEnrichOutputs_NoOverrideForUnlistedEmotion(t *testing.T) {
	s := newTestService(t)

	// sadness is negative but outside the override allowlist
	out, err := s.EnrichOutputs(context.Background(), "Great job! Thanks a lot.", "great job thanks lot",
		sentimentOut("positive", 0.8, 0.1, 0.1),
		emotionOut("sadness", map[string]float64{"sadness": 0.7, "anger": 0.2, "joy": 0.1}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if !out.SarcasmDetected {
		t.Fatal("expected sarcasm detection")
	}
	if out.Sentiment != "positive" {
		t.Fatalf("sentiment must stay positive for unlisted emotion, got %q", out.Sentiment)
	}
	if !strings.Contains(out.Explanation, "accounts for the detected sarcasm") {
		t.Fatalf("explanation missing accounts-for note: %q", out.Explanation)
	}
}

func TestEnrichOutputs_GenuineEnthusiasmHasNoSignals(t *testing.T) {
	s := newTestService(t)

	out, err := s.EnrichOutputs(context.Background(), "Thank you so much! This is amazing!", "thank much amazing",
		sentimentOut("positive", 0.9, 0.05, 0.05),
		emotionOut("joy", map[string]float64{"joy": 0.8, "gratitude": 0.1, "anger": 0.1}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if out.SarcasmDetected {
		t.Fatalf("expected no sarcasm, got confidence %v", out.SarcasmConfidence)
	}
	if out.SarcasmConfidence != 0.0 {
		t.Fatalf("expected zero confidence, got %v", out.SarcasmConfidence)
	}
	if !strings.Contains(out.Explanation, "The positive sentiment aligns with the joy emotion.") {
		t.Fatalf("explanation missing congruence note: %q", out.Explanation)
	}
}

func TestEnrichOutputs_MixedEmotionEquivalence(t *testing.T) {
	s := newTestService(t)

	// gap 0.04 < 0.15: mixed with both secondary fields
	out, err := s.EnrichOutputs(context.Background(), "good service overall", "good service overall",
		sentimentOut("positive", 0.7, 0.2, 0.1),
		emotionOut("joy", map[string]float64{"joy": 0.52, "gratitude": 0.48}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if !out.IsMixedEmotion {
		t.Fatal("expected mixed emotion for 0.04 gap")
	}
	if out.SecondaryEmotion == nil || *out.SecondaryEmotion != "gratitude" {
		t.Fatalf("expected secondary gratitude, got %v", out.SecondaryEmotion)
	}
	if out.SecondaryConfidence == nil || *out.SecondaryConfidence != 0.48 {
		t.Fatalf("expected secondary confidence 0.48, got %v", out.SecondaryConfidence)
	}

	// gap 0.40 >= 0.15: not mixed, both fields null
	out, err = s.EnrichOutputs(context.Background(), "good service overall", "good service overall",
		sentimentOut("positive", 0.7, 0.2, 0.1),
		emotionOut("joy", map[string]float64{"joy": 0.7, "gratitude": 0.3}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if out.IsMixedEmotion || out.SecondaryEmotion != nil || out.SecondaryConfidence != nil {
		t.Fatalf("expected no mixed state, got %+v", out)
	}
}

func TestEnrichOutputs_IntensityBands(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		conf float64
		want string
	}{
		{0.54, "low"},
		{0.55, "medium"},
		{0.74, "medium"},
		{0.75, "high"},
		{1.0, "high"},
	}
	for _, tc := range tests {
		rest := (1 - tc.conf) / 2
		out, err := s.EnrichOutputs(context.Background(), "okay", "okay",
			sentimentOut("positive", tc.conf, rest, rest),
			emotionOut("neutral", map[string]float64{"neutral": tc.conf, "joy": rest, "anger": rest}),
		)
		if err != nil {
			t.Fatalf("conf %v: %v", tc.conf, err)
		}
		if out.SentimentIntensity != tc.want {
			t.Fatalf("sentiment conf %v: want %q, got %q", tc.conf, tc.want, out.SentimentIntensity)
		}
		if out.EmotionIntensity != tc.want {
			t.Fatalf("emotion conf %v: want %q, got %q", tc.conf, tc.want, out.EmotionIntensity)
		}
	}
}

func TestEnrichOutputs_RejectsMalformedOutputs(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	okSent := sentimentOut("positive", 0.8, 0.1, 0.1)
	okEmo := emotionOut("joy", map[string]float64{"joy": 0.8, "anger": 0.2})

	tests := []struct {
		name string
		sent domain.ClassifierOutput
		emo  domain.ClassifierOutput
	}{
		{
			name: "no classes",
			sent: domain.ClassifierOutput{Label: "positive"},
			emo:  okEmo,
		},
		{
			name: "length mismatch",
			sent: domain.ClassifierOutput{Label: "positive", Classes: []string{"positive", "negative"}, Probabilities: []float64{1}},
			emo:  okEmo,
		},
		{
			name: "label not present",
			sent: domain.ClassifierOutput{Label: "happy", Classes: []string{"positive", "negative"}, Probabilities: []float64{0.6, 0.4}},
			emo:  okEmo,
		},
		{
			name: "label not the max",
			sent: okSent,
			emo:  domain.ClassifierOutput{Label: "joy", Classes: []string{"joy", "anger"}, Probabilities: []float64{0.3, 0.7}},
		},
		{
			name: "probabilities do not sum to one",
			sent: domain.ClassifierOutput{Label: "positive", Classes: []string{"positive", "negative"}, Probabilities: []float64{0.6, 0.6}},
			emo:  okEmo,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.EnrichOutputs(ctx, "text", "text", tc.sent, tc.emo)
			if err == nil {
				t.Fatal("expected a contract-violation error")
			}
			if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
				t.Fatalf("expected invalid argument, got %v", perr.CodeOf(err))
			}
		})
	}
}

func TestEnrichOutputs_KeywordExplanation(t *testing.T) {
	s := newTestService(t)

	// "angry" and "furious" are anger keywords; scan hits the analysis text
	out, err := s.EnrichOutputs(context.Background(), "I am angry and furious about this.", "angry furious",
		sentimentOut("negative", 0.1, 0.8, 0.1),
		emotionOut("anger", map[string]float64{"anger": 0.8, "joy": 0.2}),
	)
	if err != nil {
		t.Fatalf("EnrichOutputs: %v", err)
	}
	if !strings.Contains(out.Explanation, "The model detected ANGER with high confidence (80.00%).") {
		t.Fatalf("explanation missing detection summary: %q", out.Explanation)
	}
	if !strings.Contains(out.Explanation, "anger-related expressions") {
		t.Fatalf("explanation missing keyword evidence: %q", out.Explanation)
	}
	if !strings.Contains(out.Explanation, "'angry'") {
		t.Fatalf("explanation missing matched keyword: %q", out.Explanation)
	}
}

func TestEnrichBatch_PreservesOrder(t *testing.T) {
	p, err := lexicon.Load()
	if err != nil {
		t.Fatalf("lexicon.Load(): %v", err)
	}
	cls := &fakeClassifier{
		sentiment: sentimentOut("neutral", 0.2, 0.2, 0.6),
		emotion:   emotionOut("neutral", map[string]float64{"neutral": 0.8, "joy": 0.2}),
	}
	s := New(cls, nil, p, taxonomy.DefaultThresholds(), Config{Workers: 3})

	texts := []string{"first item", "second item", "third item", "fourth item", "fifth item"}
	out, err := s.EnrichBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("EnrichBatch: %v", err)
	}
	if len(out) != len(texts) {
		t.Fatalf("expected %d results, got %d", len(texts), len(out))
	}
	for i, p := range out {
		if p.Text != texts[i] {
			t.Fatalf("result %d out of order: %q", i, p.Text)
		}
	}
}

func TestEnrich_UsesPreprocessedTextForClassification(t *testing.T) {
	p, err := lexicon.Load()
	if err != nil {
		t.Fatalf("lexicon.Load(): %v", err)
	}
	cls := &fakeClassifier{
		sentiment: sentimentOut("negative", 0.1, 0.8, 0.1),
		emotion:   emotionOut("anger", map[string]float64{"anger": 0.8, "joy": 0.2}),
	}
	s := New(cls, nil, p, taxonomy.DefaultThresholds(), Config{})

	out, err := s.Enrich(context.Background(), "This is TERRIBLE!!! https://example.com")
	if err != nil {
		t.Fatalf("Enrich: %v", err)
	}
	if strings.Contains(out.CleanText, "http") || strings.Contains(out.CleanText, "!") {
		t.Fatalf("clean text not preprocessed: %q", out.CleanText)
	}
	// the raw text still drives the punctuation heuristic
	if !out.SarcasmDetected {
		t.Fatal("expected punctuation signal from the raw text")
	}
}
