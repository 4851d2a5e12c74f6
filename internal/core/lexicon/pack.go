// Package lexicon loads and compiles the lexical tables from the embedded
// lexicon.json: sarcasm cue lists, the emotion taxonomy, business insights,
// per-emotion keywords, and the stopword list
package lexicon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"moodring/internal/core/taxonomy"
)

//go:embed lexicon.json
var embedded []byte

type rawGroup struct {
	Name     string   `json:"name"`
	Emotions []string `json:"emotions"`
}

type rawPack struct {
	Version          int                         `json:"version"`
	Meta             map[string]any              `json:"meta"`
	SarcasticPhrases []string                    `json:"sarcastic_phrases"`
	NegativeContext  []string                    `json:"negative_context"`
	PositiveSurface  []string                    `json:"positive_surface"`
	Intensifiers     []string                    `json:"intensifiers"`
	EmotionGroups    []rawGroup                  `json:"emotion_groups"`
	BusinessInsights map[string]taxonomy.Insight `json:"business_insights"`
	EmotionKeywords  map[string][]string         `json:"emotion_keywords"`
	Stopwords        []string                    `json:"stopwords"`
}

// IntensifiedPattern is one compiled intensifier+positive pairing.
// Pair order follows the source lists: intensifiers outer, positives inner
type IntensifiedPattern struct {
	Pair    string // e.g. "so helpful"
	Pattern *regexp.Regexp
}

// Pack is the compiled lexicon. Built once by Load; read-only afterward and
// safe for unsynchronized concurrent use
type Pack struct {
	Version int
	Meta    map[string]any

	// Sarcastic phrase cues, 1:1 with PhrasePatterns
	Phrases        []string
	PhrasePatterns []*regexp.Regexp

	// Positive surface words, 1:1 with PositivePatterns
	Positive         []string
	PositivePatterns []*regexp.Regexp

	// Negative context words, 1:1 with NegativePatterns
	Negative         []string
	NegativePatterns []*regexp.Regexp

	// Intensifier tokens and the compiled intensifier+positive cross product
	Intensifiers []string
	Intensified  []IntensifiedPattern

	// Per-emotion keyword lists for explanations and the baseline classifier
	Keywords map[string][]string

	// Stopword set for the cleaning pipeline
	Stopwords map[string]struct{}

	// Taxonomy resolves groups and business insights
	Taxonomy *taxonomy.Table

	positiveSet map[string]struct{}
}

// Load parses, validates, and compiles the embedded lexicon.json
func Load() (*Pack, error) {
	var rp rawPack
	if err := json.Unmarshal(embedded, &rp); err != nil {
		return nil, fmt.Errorf("lexicon: parse lexicon.json: %w", err)
	}
	if rp.Version != 1 {
		return nil, fmt.Errorf("lexicon: unsupported lexicon.json version %d (want 1)", rp.Version)
	}

	p := &Pack{
		Version:     rp.Version,
		Meta:        rp.Meta,
		Keywords:    make(map[string][]string, len(rp.EmotionKeywords)),
		Stopwords:   make(map[string]struct{}, len(rp.Stopwords)),
		positiveSet: make(map[string]struct{}, len(rp.PositiveSurface)),
	}

	var err error
	if p.Phrases, p.PhrasePatterns, err = compileTerms("sarcastic_phrases", rp.SarcasticPhrases); err != nil {
		return nil, err
	}
	if p.Positive, p.PositivePatterns, err = compileTerms("positive_surface", rp.PositiveSurface); err != nil {
		return nil, err
	}
	if p.Negative, p.NegativePatterns, err = compileTerms("negative_context", rp.NegativeContext); err != nil {
		return nil, err
	}

	for _, w := range p.Positive {
		p.positiveSet[w] = struct{}{}
	}
	for _, w := range p.Negative {
		if _, clash := p.positiveSet[w]; clash {
			return nil, fmt.Errorf("lexicon: %q is in both positive_surface and negative_context", w)
		}
	}

	// Intensifier cross product keeps source order: intensifiers outer loop,
	// positives inner. The first matching pair is the one reported downstream
	p.Intensifiers = lowerAll(rp.Intensifiers)
	if len(p.Intensifiers) == 0 {
		return nil, fmt.Errorf("lexicon: intensifiers list is empty")
	}
	p.Intensified = make([]IntensifiedPattern, 0, len(p.Intensifiers)*len(p.Positive))
	for _, in := range p.Intensifiers {
		for _, pos := range p.Positive {
			expr := `\b` + regexp.QuoteMeta(in) + `\s+` + regexp.QuoteMeta(pos) + `\b`
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, fmt.Errorf("lexicon: compile %q: %w", expr, err)
			}
			p.Intensified = append(p.Intensified, IntensifiedPattern{
				Pair:    in + " " + pos,
				Pattern: re,
			})
		}
	}

	groups := make([]taxonomy.Group, 0, len(rp.EmotionGroups))
	for _, g := range rp.EmotionGroups {
		groups = append(groups, taxonomy.Group{Name: g.Name, Emotions: g.Emotions})
	}
	if p.Taxonomy, err = taxonomy.NewTable(groups, rp.BusinessInsights); err != nil {
		return nil, fmt.Errorf("lexicon: %w", err)
	}

	for emo, kws := range rp.EmotionKeywords {
		emo = strings.ToLower(strings.TrimSpace(emo))
		if len(kws) == 0 {
			return nil, fmt.Errorf("lexicon: emotion_keywords[%s] is empty", emo)
		}
		p.Keywords[emo] = lowerAll(kws)
	}
	for _, emo := range p.Taxonomy.Emotions() {
		if _, ok := p.Keywords[emo]; !ok {
			return nil, fmt.Errorf("lexicon: emotion %q has no keyword list", emo)
		}
	}

	for _, s := range rp.Stopwords {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			p.Stopwords[s] = struct{}{}
		}
	}
	if len(p.Stopwords) == 0 {
		return nil, fmt.Errorf("lexicon: stopwords list is empty")
	}

	return p, nil
}

// MustLoad is Load or panic, for wiring paths where a broken embedded
// lexicon is unrecoverable
func MustLoad() *Pack {
	p, err := Load()
	if err != nil {
		panic(err)
	}
	return p
}

// IsPositive reports whether word is in the positive surface lexicon.
// The word must already be lowercased
func (p *Pack) IsPositive(word string) bool {
	_, ok := p.positiveSet[word]
	return ok
}

// compileTerms lowercases, dedupes nothing, and compiles one word-boundary
// pattern per term. Terms match against lowercased text only
func compileTerms(field string, terms []string) ([]string, []*regexp.Regexp, error) {
	if len(terms) == 0 {
		return nil, nil, fmt.Errorf("lexicon: %s list is empty", field)
	}
	out := make([]string, 0, len(terms))
	res := make([]*regexp.Regexp, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			return nil, nil, fmt.Errorf("lexicon: %s contains an empty term", field)
		}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(t) + `\b`)
		if err != nil {
			return nil, nil, fmt.Errorf("lexicon: compile %s term %q: %w", field, t, err)
		}
		out = append(out, t)
		res = append(res, re)
	}
	return out, res, nil
}

func lowerAll(xs []string) []string {
	out := make([]string, 0, len(xs))
	for _, x := range xs {
		x = strings.ToLower(strings.TrimSpace(x))
		if x != "" {
			out = append(out, x)
		}
	}
	return out
}
