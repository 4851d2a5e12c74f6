// Package taxonomy defines the emotion taxonomy shared by the enrichment
// pipeline, the sarcasm engine, and the trend aggregator: intensity bands,
// group membership, business insight resolution, and the tuning thresholds
package taxonomy

import (
	"fmt"
	"strings"
)

// Unknown is the sentinel bucket for labels outside the taxonomy
const Unknown = "unknown"

// Insight is an actionable business recommendation resolved from an emotion
type Insight struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Category string `json:"category"`
}

// fallbackInsight is returned for emotions with no table entry
var fallbackInsight = Insight{
	Action:   "Monitor and follow standard procedures",
	Priority: "Low",
	Category: "Unknown",
}

// Group is an ordered emotion group as declared in the lexicon pack
type Group struct {
	Name     string
	Emotions []string
}

// Table resolves emotions to groups and business insights.
// Built once from the lexicon pack; read-only afterward
type Table struct {
	groups   []Group
	groupOf  map[string]string
	insights map[string]Insight
	emotions []string // declaration order across groups, the canonical class order
}

// NewTable builds a Table from ordered groups and the insight map.
// Every grouped emotion must have an insight entry and vice versa
func NewTable(groups []Group, insights map[string]Insight) (*Table, error) {
	t := &Table{
		groupOf:  make(map[string]string, 24),
		insights: make(map[string]Insight, len(insights)),
	}
	for _, g := range groups {
		name := strings.ToLower(strings.TrimSpace(g.Name))
		if name == "" {
			return nil, fmt.Errorf("taxonomy: empty group name")
		}
		norm := Group{Name: name}
		for _, e := range g.Emotions {
			e = strings.ToLower(strings.TrimSpace(e))
			if e == "" {
				continue
			}
			if _, dup := t.groupOf[e]; dup {
				return nil, fmt.Errorf("taxonomy: emotion %q appears in more than one group", e)
			}
			t.groupOf[e] = name
			t.emotions = append(t.emotions, e)
			norm.Emotions = append(norm.Emotions, e)
		}
		t.groups = append(t.groups, norm)
	}
	if len(t.emotions) == 0 {
		return nil, fmt.Errorf("taxonomy: groups declare no emotions")
	}
	for k, v := range insights {
		k = strings.ToLower(strings.TrimSpace(k))
		if _, ok := t.groupOf[k]; !ok {
			return nil, fmt.Errorf("taxonomy: insight for ungrouped emotion %q", k)
		}
		t.insights[k] = v
	}
	for _, e := range t.emotions {
		if _, ok := t.insights[e]; !ok {
			return nil, fmt.Errorf("taxonomy: emotion %q has no insight entry", e)
		}
	}
	return t, nil
}

// Group returns the group name for an emotion, or Unknown
func (t *Table) Group(emotion string) string {
	if g, ok := t.groupOf[strings.ToLower(emotion)]; ok {
		return g
	}
	return Unknown
}

// Insight returns the business insight for an emotion. Labels outside the
// table resolve to the monitor/Low/Unknown fallback, never an error
func (t *Table) Insight(emotion string) Insight {
	if in, ok := t.insights[strings.ToLower(emotion)]; ok {
		return in
	}
	return fallbackInsight
}

// Emotions returns all emotions in canonical (declaration) order
func (t *Table) Emotions() []string { return t.emotions }

// GroupNames returns the declared group names in order
func (t *Table) GroupNames() []string {
	out := make([]string, len(t.groups))
	for i, g := range t.groups {
		out[i] = g.Name
	}
	return out
}
