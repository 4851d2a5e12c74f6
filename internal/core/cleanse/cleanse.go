// Package cleanse provides the deterministic text cleaner used by the classifier
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Case folding
// 3 Strip URLs
// 4 Strip HTML tags
// 5 Strip emoji and stray control characters
// 6 Strip ASCII punctuation
// 7 Collapse whitespace to single spaces and trim
package cleanse

import (
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

var (
	urlRE  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	htmlRE = regexp.MustCompile(`<.*?>`)
)

// emojiTable covers the emoticon, pictograph, transport, and flag blocks.
// Ranges must stay sorted ascending.
var emojiTable = &unicode.RangeTable{
	R32: []unicode.Range32{
		{Lo: 0x1F1E0, Hi: 0x1F1FF, Stride: 1}, // flags
		{Lo: 0x1F300, Hi: 0x1F5FF, Stride: 1}, // symbols and pictographs
		{Lo: 0x1F600, Hi: 0x1F64F, Stride: 1}, // emoticons
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1}, // transport and map symbols
	},
}

// pools of fresh transformers, one per pipeline stage
var foldPool = sync.Pool{
	New: func() any {
		return transform.Transformer(cases.Fold())
	},
}

var stripPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			runes.Remove(runes.In(emojiTable)),
			runes.Remove(runes.Predicate(isDroppedControl)),
		)
	},
}

// isDroppedControl reports control runes that never belong in stored feedback.
// Tab, CR, and LF survive here; the whitespace collapse handles them.
func isDroppedControl(r rune) bool {
	return unicode.IsControl(r) && r != '\t' && r != '\n' && r != '\r'
}

// Clean returns the cleaned form of s following the pipeline described above.
// URL and tag stripping run on the folded text so uppercase links are caught
func Clean(s string) string {
	if s == "" {
		return ""
	}

	// 1 repair UTF-8 drop invalid bytes
	s = strings.ToValidUTF8(s, "")

	// 2 case fold via pooled transformer then reset and return it
	s = applyPooled(&foldPool, s)

	// 3-4 regex substitutions on the folded text
	s = urlRE.ReplaceAllString(s, "")
	s = htmlRE.ReplaceAllString(s, " ")

	// 5 strip emoji and control runes
	s = applyPooled(&stripPool, s)

	// 6 strip ASCII punctuation
	s = stripPunct(s)

	// 7 collapse whitespace and trim
	return collapseSpaces(s)
}

func applyPooled(pool *sync.Pool, s string) string {
	tr := pool.Get().(transform.Transformer)
	out, _, _ := transform.String(tr, s)
	tr.Reset()
	pool.Put(tr)
	return out
}

// stripPunct deletes the 32 ASCII punctuation characters outright.
// Deletion joins the surrounding runs, so "don't" becomes "dont"
func stripPunct(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isASCIIPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCIIPunct(r rune) bool {
	switch {
	case r >= '!' && r <= '/':
		return true
	case r >= ':' && r <= '@':
		return true
	case r >= '[' && r <= '`':
		return true
	case r >= '{' && r <= '~':
		return true
	}
	return false
}

// collapseSpaces converts whitespace runs, newlines included, to a single
// ASCII space and trims the edges
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}

// Cleaner couples the pipeline with a stopword list for token-level work.
// Safe for concurrent use
type Cleaner struct {
	stop map[string]struct{}
}

// New constructs a Cleaner. A nil stopword set disables stopword removal
func New(stop map[string]struct{}) *Cleaner {
	return &Cleaner{stop: stop}
}

// Clean runs the character pipeline only
func (c *Cleaner) Clean(s string) string { return Clean(s) }

// Tokens cleans s, splits on whitespace, and drops stopword tokens.
// Matching is exact: the stopword list keeps its apostrophes, so the
// punctuation-stripped "dont" passes through while "don" would not
func (c *Cleaner) Tokens(s string) []string {
	fields := strings.Fields(Clean(s))
	if len(c.stop) == 0 {
		return fields
	}
	out := fields[:0]
	for _, tok := range fields {
		if _, drop := c.stop[tok]; drop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Preprocess returns the cleaned, stopword-filtered text rejoined on single spaces
func (c *Cleaner) Preprocess(s string) string {
	return strings.Join(c.Tokens(s), " ")
}
