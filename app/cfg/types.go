package cfg

import "time"

type Cfg struct {
	// WordPress configuration
	APIURL   string
	Username string
	Password string

	// Sync configuration
	FeedsFile  string
	MaxAgeDays int
	LedgerPath string
	DryRun     bool

	// HTTP configuration
	Timeout   time.Duration
	UserAgent string

	// Logging
	Debug   bool
	LogFile string
	Version string
}
