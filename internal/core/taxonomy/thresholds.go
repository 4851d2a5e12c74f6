package taxonomy

// Thresholds carries every tunable cutoff used by the enrichment pipeline,
// the sarcasm engine, and the trend aggregator. Start from DefaultThresholds
// and override per field when tuning
type Thresholds struct {
	// Intensity band lower bounds (low is everything below IntensityMedium)
	IntensityMedium float64
	IntensityHigh   float64

	// MixedEmotionGap is the largest top-two probability gap still flagged mixed
	MixedEmotionGap float64

	// Sarcasm decision cutoffs
	SarcasmFlag     float64 // confidence above this marks text sarcastic
	SarcasmOverride float64 // confidence above this may flip positive sentiment

	// Per-signal base scores for the sarcasm heuristics
	SignalPhrase      float64
	SignalContrast    float64
	SignalIntensified float64
	SignalPunctuation float64
	SignalQuoted      float64
	SignalMismatch    float64

	// Aggregator cutoffs
	HighRisk            float64
	PositiveOpportunity float64
	SarcasticFeedback   float64
}

// DefaultThresholds returns the shipped policy table
func DefaultThresholds() Thresholds {
	return Thresholds{
		IntensityMedium:     0.55,
		IntensityHigh:       0.75,
		MixedEmotionGap:     0.15,
		SarcasmFlag:         0.5,
		SarcasmOverride:     0.7,
		SignalPhrase:        0.75,
		SignalContrast:      0.70,
		SignalIntensified:   0.65,
		SignalPunctuation:   0.55,
		SignalQuoted:        0.70,
		SignalMismatch:      0.60,
		HighRisk:            0.75,
		PositiveOpportunity: 0.75,
		SarcasticFeedback:   0.5,
	}
}

// Intensity maps a confidence onto its band: low, medium, or high.
// Total over all inputs; the top band is open-ended
func (t Thresholds) Intensity(conf float64) string {
	switch {
	case conf < t.IntensityMedium:
		return "low"
	case conf < t.IntensityHigh:
		return "medium"
	default:
		return "high"
	}
}

// Intensity maps a confidence onto the default bands
func Intensity(conf float64) string { return DefaultThresholds().Intensity(conf) }
