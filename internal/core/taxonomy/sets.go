package taxonomy

import "strings"

// Curated emotion sets consumed by risk triage, opportunity surfacing, the
// sentiment override, and the polarity-mismatch signal. Each is narrower than
// the full negative/positive group; membership is fixed, not derived
var (
	highRisk    = stringSet("anger", "frustration", "disappointment", "regret")
	opportunity = stringSet("joy", "satisfaction", "gratitude", "trust", "excitement")
	overridable = stringSet("anger", "frustration", "annoyance", "disappointment")

	// mismatchNegative is the negative group minus confusion
	mismatchNegative = stringSet(
		"anger", "frustration", "disappointment", "sadness",
		"fear", "anxiety", "annoyance", "regret",
	)
)

func stringSet(xs ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}

func inSet(s map[string]struct{}, emotion string) bool {
	_, ok := s[strings.ToLower(emotion)]
	return ok
}

// IsHighRisk reports whether emotion belongs to the high-risk triage set
func IsHighRisk(emotion string) bool { return inSet(highRisk, emotion) }

// IsOpportunity reports whether emotion belongs to the positive-opportunity set
func IsOpportunity(emotion string) bool { return inSet(opportunity, emotion) }

// IsOverridable reports whether a sarcasm override may flip positive
// sentiment for this emotion
func IsOverridable(emotion string) bool { return inSet(overridable, emotion) }

// IsMismatchNegative reports whether emotion counts as negative for the
// polarity-mismatch sarcasm signal
func IsMismatchNegative(emotion string) bool { return inSet(mismatchNegative, emotion) }
