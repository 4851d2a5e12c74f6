package module

import "moodring/internal/platform/config"

// Options configure the archive module
type Options struct {
	ListLimit   int
	TxTimeoutMs int
}

// FromConfig reads module options from CORE_ARCHIVE_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_ARCHIVE_")
	return Options{
		ListLimit:   c.MayInt("LIST_LIMIT", 100),
		TxTimeoutMs: c.MayInt("TX_TIMEOUT_MS", 5000),
	}
}
