// Package service implements the analysis service
package service

import (
	"context"
	"math"
	"sort"
	"sync"

	"moodring/internal/core/cleanse"
	"moodring/internal/core/lexicon"
	"moodring/internal/core/sarcasm"
	"moodring/internal/core/taxonomy"
	perr "moodring/internal/platform/errors"
	"moodring/internal/services/analysis/domain"
)

// Config for the analysis service
type Config struct {
	Workers   int
	TopTokens int
}

// Service implements domain.EnricherPort
type Service struct {
	cls   domain.ClassifierPort
	expl  domain.ExplainerPort
	pack  *lexicon.Pack
	th    taxonomy.Thresholds
	det   *sarcasm.Detector
	clean *cleanse.Cleaner
	cfg   Config
}

var _ domain.EnricherPort = (*Service)(nil)

// New constructs a new analysis service
func New(cls domain.ClassifierPort, expl domain.ExplainerPort, p *lexicon.Pack, th taxonomy.Thresholds, cfg Config) *Service {
	w := cfg.Workers
	if w <= 0 {
		w = 4
	}
	tt := cfg.TopTokens
	if tt <= 0 {
		tt = 3
	}
	return &Service{
		cls:   cls,
		expl:  expl,
		pack:  p,
		th:    th,
		det:   sarcasm.New(p, th),
		clean: cleanse.New(p.Stopwords),
		cfg:   Config{Workers: w, TopTokens: tt},
	}
}

// Enrich cleans text, runs both classification tasks, and derives the full record
func (s *Service) Enrich(ctx context.Context, text string) (domain.Enriched, error) {
	clean := s.clean.Preprocess(text)

	sent, err := s.cls.Classify(ctx, domain.TaskSentiment, clean)
	if err != nil {
		return domain.Enriched{}, err
	}
	emo, err := s.cls.Classify(ctx, domain.TaskEmotion, clean)
	if err != nil {
		return domain.Enriched{}, err
	}
	return s.EnrichOutputs(ctx, text, clean, sent, emo)
}

// EnrichOutputs derives the full record from caller-supplied classifier outputs.
// The sarcasm engine and keyword matching read the raw text; malformed outputs
// are rejected rather than degraded
func (s *Service) EnrichOutputs(ctx context.Context, text, clean string, sent, emo domain.ClassifierOutput) (domain.Enriched, error) {
	if err := validateOutput(domain.TaskSentiment, sent); err != nil {
		return domain.Enriched{}, err
	}
	if err := validateOutput(domain.TaskEmotion, emo); err != nil {
		return domain.Enriched{}, err
	}

	sentConf := labelProb(sent)
	emoConf := labelProb(emo)

	ranked := rankByProb(emo)
	if ranked[0].label != emo.Label {
		return domain.Enriched{}, perr.InvalidArgf(
			"analysis: emotion label %q does not top the probability ranking (%q does)",
			emo.Label, ranked[0].label)
	}

	var secondary *string
	var secondaryConf *float64
	mixed := false
	if len(ranked) > 1 && ranked[0].prob-ranked[1].prob < s.th.MixedEmotionGap {
		mixed = true
		sec, sc := ranked[1].label, ranked[1].prob
		secondary, secondaryConf = &sec, &sc
	}

	sarc := s.det.Detect(text, sent.Label, emo.Label)

	// high-confidence sarcasm on surface-positive text flips the sentiment
	// when the emotion already points the other way
	sentiment := sent.Label
	if sarc.IsSarcastic && sarc.Confidence > s.th.SarcasmOverride &&
		sentiment == "positive" && taxonomy.IsOverridable(emo.Label) {
		sentiment = "negative"
	}
	original := ""
	if sentiment != sent.Label {
		original = sent.Label
	}

	var toks []domain.TokenWeight
	if s.expl != nil {
		var err error
		toks, err = s.expl.TopTokens(ctx, domain.TaskEmotion, clean, s.cfg.TopTokens)
		if err != nil {
			return domain.Enriched{}, err
		}
	}

	indicators := sarc.Indicators
	if indicators == nil {
		indicators = []string{}
	}

	return domain.Enriched{
		Text:                text,
		CleanText:           clean,
		Sentiment:           sentiment,
		SentimentConfidence: sentConf,
		SentimentIntensity:  s.th.Intensity(sentConf),
		Emotion:             emo.Label,
		EmotionConfidence:   emoConf,
		EmotionIntensity:    s.th.Intensity(emoConf),
		SecondaryEmotion:    secondary,
		SecondaryConfidence: secondaryConf,
		IsMixedEmotion:      mixed,
		SarcasmDetected:     sarc.IsSarcastic,
		SarcasmConfidence:   sarc.Confidence,
		SarcasmIndicators:   indicators,
		BusinessInsight:     s.pack.Taxonomy.Insight(emo.Label),
		Explanation:         s.buildExplanation(text, sentiment, emo.Label, emoConf, toks, sarc, original),
	}, nil
}

// EnrichBatch runs Enrich over texts concurrently, preserving input order
func (s *Service) EnrichBatch(ctx context.Context, texts []string) ([]domain.Enriched, error) {
	out := make([]domain.Enriched, len(texts))
	errs := make([]error, len(texts))

	sem := make(chan struct{}, s.cfg.Workers)
	wg := sync.WaitGroup{}

	for i := range texts {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer func() { <-sem; wg.Done() }()
			out[i], errs[i] = s.Enrich(ctx, texts[i])
		}(i)
	}
	wg.Wait()

	for i := range errs {
		if errs[i] != nil {
			return nil, perr.Wrapf(errs[i], perr.CodeOf(errs[i]), "analysis: item %d", i)
		}
	}
	return out, nil
}

func validateOutput(task domain.Task, out domain.ClassifierOutput) error {
	if len(out.Classes) == 0 {
		return perr.InvalidArgf("analysis: %s output has no classes", task)
	}
	if len(out.Classes) != len(out.Probabilities) {
		return perr.InvalidArgf("analysis: %s output has %d classes but %d probabilities",
			task, len(out.Classes), len(out.Probabilities))
	}

	var sum float64
	labelIdx := -1
	max := 0.0
	for i, p := range out.Probabilities {
		if p < 0 || p > 1 {
			return perr.InvalidArgf("analysis: %s probability %v out of range", task, p)
		}
		sum += p
		if p > max {
			max = p
		}
		if labelIdx < 0 && out.Classes[i] == out.Label {
			labelIdx = i
		}
	}
	if labelIdx < 0 {
		return perr.InvalidArgf("analysis: %s label %q not among classes", task, out.Label)
	}
	if math.Abs(sum-1) > 1e-6 {
		return perr.InvalidArgf("analysis: %s probabilities sum to %v", task, sum)
	}
	if out.Probabilities[labelIdx] < max-1e-9 {
		return perr.InvalidArgf("analysis: %s label %q probability %v is below the maximum %v",
			task, out.Label, out.Probabilities[labelIdx], max)
	}
	return nil
}

func labelProb(out domain.ClassifierOutput) float64 {
	for i, c := range out.Classes {
		if c == out.Label {
			return out.Probabilities[i]
		}
	}
	return 0
}

type rankedClass struct {
	label string
	prob  float64
}

// rankByProb sorts classes by probability descending, stable on class order
func rankByProb(out domain.ClassifierOutput) []rankedClass {
	ranked := make([]rankedClass, len(out.Classes))
	for i := range out.Classes {
		ranked[i] = rankedClass{label: out.Classes[i], prob: out.Probabilities[i]}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].prob > ranked[b].prob })
	return ranked
}
