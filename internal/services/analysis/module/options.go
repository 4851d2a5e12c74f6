package module

import (
	"moodring/internal/core/taxonomy"
	"moodring/internal/platform/config"
)

// Options configure the analysis module
type Options struct {
	Workers   int // concurrent enrichments per batch
	BatchMax  int // largest accepted batch over HTTP
	TopTokens int // explanation fallback token count

	Thresholds taxonomy.Thresholds
}

// FromConfig reads module options from CORE_ANALYSIS_*. Threshold overrides
// exist for tuning; the defaults are the shipped policy table
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ANALYSIS_")

	th := taxonomy.DefaultThresholds()
	th.IntensityMedium = c.MayFloat64("INTENSITY_MEDIUM", th.IntensityMedium)
	th.IntensityHigh = c.MayFloat64("INTENSITY_HIGH", th.IntensityHigh)
	th.MixedEmotionGap = c.MayFloat64("MIXED_GAP", th.MixedEmotionGap)
	th.SarcasmFlag = c.MayFloat64("SARCASM_FLAG", th.SarcasmFlag)
	th.SarcasmOverride = c.MayFloat64("SARCASM_OVERRIDE", th.SarcasmOverride)

	return Options{
		Workers:    c.MayInt("WORKERS", 4),
		BatchMax:   c.MayInt("BATCH_MAX", 500),
		TopTokens:  c.MayInt("TOP_TOKENS", 3),
		Thresholds: th,
	}
}
