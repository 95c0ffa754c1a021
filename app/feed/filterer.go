package feed

import (
	"time"
)

type Filterer struct {
	maxAgeDays int
}

func NewFilterer(maxAgeDays int) *Filterer {
	return &Filterer{maxAgeDays: maxAgeDays}
}

// Run keeps the items published within the configured window and returns them
// oldest-first, so posts reach the CMS in chronological order. Feeds list
// newest-first; the received order is simply reversed.
func (f *Filterer) Run(items []Item, now time.Time) ([]Item, int) {
	recent := make([]Item, 0, len(items))
	skipped := 0

	for i := len(items) - 1; i >= 0; i-- {
		if !IsRecent(items[i].PublishedAt, f.maxAgeDays, now) {
			skipped++
			continue
		}
		recent = append(recent, items[i])
	}

	return recent, skipped
}

// IsRecent reports whether pubDate lies at most maxAgeDays days before now.
// Items without a date are never recent.
func IsRecent(pubDate *time.Time, maxAgeDays int, now time.Time) bool {
	if pubDate == nil {
		return false
	}
	return now.Sub(*pubDate) <= time.Duration(maxAgeDays)*24*time.Hour
}
