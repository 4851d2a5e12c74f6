// Package classifier provides the baseline lexicon-backed classifier behind the
// analysis ports. Scores are additive keyword hits with Laplace smoothing, so
// the output is a proper probability vector whose argmax is the reported label.
// Anything satisfying the analysis ports can replace it
package classifier

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"moodring/internal/core/cleanse"
	"moodring/internal/core/lexicon"
	perr "moodring/internal/platform/errors"
	"moodring/internal/services/analysis/domain"
)

// laplace is the additive smoothing constant; neutralBias is the extra weight
// on the neutral class so zero-evidence text reads as neutral while a single
// keyword hit anywhere still outranks it
const (
	laplace     = 1.0
	neutralBias = 0.5
)

const neutralLabel = "neutral"

// sentiment classes in sorted order, stable across calls
var sentimentClasses = []string{"negative", "neutral", "positive"}

type termPattern struct {
	display string // original lexicon keyword, for explanation output
	re      *regexp.Regexp
}

// Scorer implements domain.ClassifierPort and domain.ExplainerPort
type Scorer struct {
	classes []string      // emotion classes in taxonomy order
	terms   [][]termPattern
	negCtx  []termPattern // negative-context boosters for the sentiment task

	posIdx []int // class indexes per emotion group
	negIdx []int
	neuIdx []int
}

var (
	_ domain.ClassifierPort = (*Scorer)(nil)
	_ domain.ExplainerPort  = (*Scorer)(nil)
)

// New builds a Scorer from the lexicon pack. Keywords are preprocessed with
// the pack's stopword list so they match the preprocessed text the ports
// receive; keywords that reduce to nothing ("what", "if only") are dropped
func New(p *lexicon.Pack) (*Scorer, error) {
	cl := cleanse.New(p.Stopwords)
	classes := p.Taxonomy.Emotions()

	s := &Scorer{
		classes: classes,
		terms:   make([][]termPattern, len(classes)),
	}

	for i, class := range classes {
		pats, err := compileForms(cl, p.Keywords[class])
		if err != nil {
			return nil, err
		}
		s.terms[i] = pats

		switch p.Taxonomy.Group(class) {
		case "positive":
			s.posIdx = append(s.posIdx, i)
		case "negative":
			s.negIdx = append(s.negIdx, i)
		case "neutral_cognitive":
			s.neuIdx = append(s.neuIdx, i)
		default:
			return nil, perr.InvalidArgf("classifier: emotion %q in unsupported group %q", class, p.Taxonomy.Group(class))
		}
	}

	negCtx, err := compileForms(cl, p.Negative)
	if err != nil {
		return nil, err
	}
	s.negCtx = negCtx

	return s, nil
}

// MustNew is New that panics on error
func MustNew(p *lexicon.Pack) *Scorer {
	s, err := New(p)
	if err != nil {
		panic(err)
	}
	return s
}

func compileForms(cl *cleanse.Cleaner, terms []string) ([]termPattern, error) {
	out := make([]termPattern, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		form := cl.Preprocess(term)
		if form == "" {
			continue
		}
		if _, dup := seen[form]; dup {
			continue
		}
		seen[form] = struct{}{}
		re, err := regexp.Compile(`\b` + regexp.QuoteMeta(form) + `\b`)
		if err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "classifier: keyword %q", term)
		}
		out = append(out, termPattern{display: term, re: re})
	}
	return out, nil
}

// Classify satisfies domain.ClassifierPort
func (s *Scorer) Classify(_ context.Context, task domain.Task, cleaned string) (domain.ClassifierOutput, error) {
	switch task {
	case domain.TaskEmotion:
		return s.classifyEmotion(cleaned), nil
	case domain.TaskSentiment:
		return s.classifySentiment(cleaned), nil
	default:
		return domain.ClassifierOutput{}, perr.InvalidArgf("classifier: unknown task %q", task)
	}
}

func (s *Scorer) classifyEmotion(cleaned string) domain.ClassifierOutput {
	raw := s.emotionScores(cleaned)

	weights := make([]float64, len(raw))
	for i, sc := range raw {
		weights[i] = sc + laplace
		if s.classes[i] == neutralLabel {
			weights[i] += neutralBias
		}
	}
	probs, top := normalize(weights)

	return domain.ClassifierOutput{
		Label:         s.classes[top],
		Classes:       s.classes,
		Probabilities: probs,
	}
}

func (s *Scorer) classifySentiment(cleaned string) domain.ClassifierOutput {
	raw := s.emotionScores(cleaned)

	var pos, neg, neu float64
	for _, i := range s.posIdx {
		pos += raw[i]
	}
	for _, i := range s.negIdx {
		neg += raw[i]
	}
	for _, i := range s.neuIdx {
		neu += raw[i]
	}
	neg += countAll(s.negCtx, cleaned)

	// index-aligned with sentimentClasses
	weights := []float64{neg + laplace, neu + laplace + neutralBias, pos + laplace}
	probs, top := normalize(weights)

	return domain.ClassifierOutput{
		Label:         sentimentClasses[top],
		Classes:       sentimentClasses,
		Probabilities: probs,
	}
}

// emotionScores returns the raw additive keyword-hit score per emotion class
func (s *Scorer) emotionScores(cleaned string) []float64 {
	raw := make([]float64, len(s.classes))
	if strings.TrimSpace(cleaned) == "" {
		return raw
	}
	for i := range s.terms {
		for _, pat := range s.terms[i] {
			raw[i] += float64(len(pat.re.FindAllStringIndex(cleaned, -1)))
		}
	}
	return raw
}

func countAll(pats []termPattern, cleaned string) float64 {
	var n float64
	for _, pat := range pats {
		n += float64(len(pat.re.FindAllStringIndex(cleaned, -1)))
	}
	return n
}

// normalize turns weights into probabilities and returns the first max index
func normalize(weights []float64) ([]float64, int) {
	var total float64
	for _, w := range weights {
		total += w
	}
	probs := make([]float64, len(weights))
	top := 0
	for i, w := range weights {
		probs[i] = w / total
		if w > weights[top] {
			top = i
		}
	}
	return probs, top
}

// TopTokens satisfies domain.ExplainerPort. Weights are keyword hit counts,
// negated for the negative sentiment class, ordered by magnitude
func (s *Scorer) TopTokens(_ context.Context, task domain.Task, cleaned string, n int) ([]domain.TokenWeight, error) {
	if n <= 0 {
		n = 6
	}

	var matched []domain.TokenWeight
	switch task {
	case domain.TaskEmotion:
		out := s.classifyEmotion(cleaned)
		for i, class := range s.classes {
			if class == out.Label {
				matched = collectTokens(nil, s.terms[i], cleaned, 1)
				break
			}
		}
	case domain.TaskSentiment:
		out := s.classifySentiment(cleaned)
		switch out.Label {
		case "positive":
			for _, i := range s.posIdx {
				matched = collectTokens(matched, s.terms[i], cleaned, 1)
			}
		case "negative":
			for _, i := range s.negIdx {
				matched = collectTokens(matched, s.terms[i], cleaned, -1)
			}
			matched = collectTokens(matched, s.negCtx, cleaned, -1)
		default:
			for _, i := range s.neuIdx {
				matched = collectTokens(matched, s.terms[i], cleaned, 1)
			}
		}
	default:
		return nil, perr.InvalidArgf("classifier: unknown task %q", task)
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return abs(matched[a].Weight) > abs(matched[b].Weight)
	})
	if len(matched) > n {
		matched = matched[:n]
	}
	return matched, nil
}

// collectTokens appends hit counts for pats, merging repeated display tokens
// in first-seen order
func collectTokens(acc []domain.TokenWeight, pats []termPattern, cleaned string, sign float64) []domain.TokenWeight {
	for _, pat := range pats {
		cnt := len(pat.re.FindAllStringIndex(cleaned, -1))
		if cnt == 0 {
			continue
		}
		w := sign * float64(cnt)
		merged := false
		for j := range acc {
			if acc[j].Token == pat.display {
				acc[j].Weight += w
				merged = true
				break
			}
		}
		if !merged {
			acc = append(acc, domain.TokenWeight{Token: pat.display, Weight: w})
		}
	}
	return acc
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
