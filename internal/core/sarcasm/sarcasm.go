// Package sarcasm implements rule-based sarcasm detection over customer
// feedback text: phrase cues, contrast between positive wording and negative
// context, punctuation runs, quoted positives, and polarity mismatch
package sarcasm

import (
	"fmt"
	"strings"

	"moodring/internal/core/lexicon"
	"moodring/internal/core/taxonomy"
)

// SignalKind tags the heuristic that produced a Signal
type SignalKind string

const (
	// KindPhrase is a known sarcastic expression match
	KindPhrase SignalKind = "phrase"
	// KindContrast is positive wording inside negative context
	KindContrast SignalKind = "contrast"
	// KindPunctuation is an excessive punctuation run
	KindPunctuation SignalKind = "punctuation"
	// KindQuotedPositive is a positive word wrapped in quotes
	KindQuotedPositive SignalKind = "quoted_positive"
	// KindPolarityMismatch is positive sentiment paired with a negative emotion
	KindPolarityMismatch SignalKind = "polarity_mismatch"
)

// Signal is one heuristic's verdict. Score 0 means the heuristic stayed silent
type Signal struct {
	Kind       SignalKind
	Score      float64
	Indicators []string
}

// Result is the fused detection outcome
type Result struct {
	IsSarcastic bool     `json:"is_sarcastic"`
	Confidence  float64  `json:"confidence"`
	Indicators  []string `json:"indicators"`
	Explanation string   `json:"explanation"`
}

// Detector runs the heuristic set over raw text. Construct one per process
// and share it: the compiled pack is read-only, Detect is a pure function
type Detector struct {
	p  *lexicon.Pack
	th taxonomy.Thresholds
}

// New constructs a Detector over a compiled lexicon pack
func New(p *lexicon.Pack, th taxonomy.Thresholds) *Detector {
	return &Detector{p: p, th: th}
}

// Detect analyzes text for sarcasm. Sentiment and emotion are the upstream
// classifier labels; pass empty strings when they are not available, which
// disables the polarity-mismatch signal only
func (d *Detector) Detect(text, sentiment, emotion string) Result {
	signals := d.Signals(text, sentiment, emotion)

	var scores []float64
	var indicators []string
	for _, sg := range signals {
		if sg.Score <= 0 {
			continue
		}
		scores = append(scores, sg.Score)
		indicators = append(indicators, sg.Indicators...)
	}

	var confidence float64
	var sarcastic bool
	if len(scores) > 0 {
		var sum float64
		for _, s := range scores {
			sum += s
		}
		base := sum / float64(len(scores))
		// multi-signal corroboration bonus, capped at 0.30
		bonus := 0.15 * float64(len(scores)-1)
		if bonus > 0.30 {
			bonus = 0.30
		}
		confidence = base + bonus
		if confidence > 0.95 {
			confidence = 0.95
		}
		sarcastic = confidence > d.th.SarcasmFlag
	}

	return Result{
		IsSarcastic: sarcastic,
		Confidence:  confidence,
		Indicators:  indicators,
		Explanation: explain(indicators, sarcastic),
	}
}

// Signals runs every heuristic in fixed order (phrase, contrast, punctuation,
// quoted, mismatch) and returns all five signals, fired or not
func (d *Detector) Signals(text, sentiment, emotion string) []Signal {
	lower := strings.ToLower(text)
	return []Signal{
		d.phraseSignal(lower),
		d.contrastSignal(lower),
		d.punctuationSignal(text),
		d.quotedPositiveSignal(lower),
		d.mismatchSignal(sentiment, emotion),
	}
}

// explain renders the human-readable detection summary
func explain(indicators []string, sarcastic bool) string {
	if !sarcastic {
		return "No sarcasm detected. Text appears straightforward."
	}
	if len(indicators) == 0 {
		return "Low sarcasm signals detected."
	}
	parts := []string{"Sarcasm detected based on:"}
	for i, ind := range indicators {
		if i == 3 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, capitalize(ind)))
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first byte; indicator strings are ASCII lowercase
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
