package sarcasm

import (
	"fmt"
	"regexp"
	"strings"

	"moodring/internal/core/taxonomy"
)

// structural patterns are fixed, not lexicon data
var (
	multiExclaim  = regexp.MustCompile(`!{2,}`)
	multiQuestion = regexp.MustCompile(`\?{2,}`)
	mixedPunct    = regexp.MustCompile(`[!?]{3,}`)
	quotedWord    = regexp.MustCompile(`["'](\w+)["']`)
)

// phraseSignal matches known sarcastic expressions, one indicator per phrase
func (d *Detector) phraseSignal(lower string) Signal {
	var inds []string
	for _, re := range d.p.PhrasePatterns {
		if m := re.FindString(lower); m != "" {
			inds = append(inds, fmt.Sprintf("sarcastic phrase: '%s'", m))
		}
	}
	if len(inds) == 0 {
		return Signal{Kind: KindPhrase}
	}
	return Signal{Kind: KindPhrase, Score: d.th.SignalPhrase, Indicators: inds}
}

// contrastSignal fires when positive surface words share the text with
// negative context words, and independently when an intensifier directly
// precedes a positive word. One net score (the max), up to two indicators
func (d *Detector) contrastSignal(lower string) Signal {
	var pos, neg []string
	for i, re := range d.p.PositivePatterns {
		if re.MatchString(lower) {
			pos = append(pos, d.p.Positive[i])
		}
	}
	for i, re := range d.p.NegativePatterns {
		if re.MatchString(lower) {
			neg = append(neg, d.p.Negative[i])
		}
	}

	// first pair in intensifier-major order wins; only the first is reported
	var pair string
	for _, ip := range d.p.Intensified {
		if ip.Pattern.MatchString(lower) {
			pair = ip.Pair
			break
		}
	}

	sg := Signal{Kind: KindContrast}
	if len(pos) > 0 && len(neg) > 0 {
		sg.Score = d.th.SignalContrast
		sg.Indicators = append(sg.Indicators, fmt.Sprintf(
			"contrast: positive words (%s) with negative context (%s)",
			strings.Join(firstN(pos, 2), ", "),
			strings.Join(firstN(neg, 2), ", "),
		))
	}
	if pair != "" {
		if d.th.SignalIntensified > sg.Score {
			sg.Score = d.th.SignalIntensified
		}
		sg.Indicators = append(sg.Indicators, fmt.Sprintf("intensified positive: '%s'", pair))
	}
	return sg
}

// punctuationSignal flags exclamation/question runs on the raw text
func (d *Detector) punctuationSignal(text string) Signal {
	var inds []string
	if multiExclaim.MatchString(text) {
		inds = append(inds, "excessive exclamation marks")
	}
	if multiQuestion.MatchString(text) {
		inds = append(inds, "excessive question marks")
	}
	if mixedPunct.MatchString(text) {
		inds = append(inds, "mixed excessive punctuation")
	}
	if len(inds) == 0 {
		return Signal{Kind: KindPunctuation}
	}
	return Signal{Kind: KindPunctuation, Score: d.th.SignalPunctuation, Indicators: inds}
}

// quotedPositiveSignal flags positive words wrapped in quotation marks,
// e.g. the "great" service
func (d *Detector) quotedPositiveSignal(lower string) Signal {
	var inds []string
	for _, m := range quotedWord.FindAllStringSubmatch(lower, -1) {
		if d.p.IsPositive(m[1]) {
			inds = append(inds, fmt.Sprintf("quoted positive word: '%s'", m[1]))
		}
	}
	if len(inds) == 0 {
		return Signal{Kind: KindQuotedPositive}
	}
	return Signal{Kind: KindQuotedPositive, Score: d.th.SignalQuoted, Indicators: inds}
}

// mismatchSignal fires on positive sentiment paired with a negative emotion.
// Needs both labels; stays silent when either is missing
func (d *Detector) mismatchSignal(sentiment, emotion string) Signal {
	if sentiment == "" || emotion == "" {
		return Signal{Kind: KindPolarityMismatch}
	}
	if sentiment == "positive" && taxonomy.IsMismatchNegative(emotion) {
		return Signal{
			Kind:  KindPolarityMismatch,
			Score: d.th.SignalMismatch,
			Indicators: []string{
				fmt.Sprintf("polarity mismatch: positive sentiment with %s emotion", emotion),
			},
		}
	}
	return Signal{Kind: KindPolarityMismatch}
}

func firstN(xs []string, n int) []string {
	if len(xs) <= n {
		return xs
	}
	return xs[:n]
}
