package feed

import (
	"time"
)

// Feed processing types

type Item struct {
	GUID        string
	Title       string
	Content     string     // description, falling back to content:encoded
	PublishedAt *time.Time // nil when the feed has no parseable date
	Media       []MediaContent
	ImageURL    string // itunes:image href
}

// MediaContent is one media:content entry of an item.
type MediaContent struct {
	URL       string
	Type      string
	PlayerURL string // url attribute of the nested media:player
}

// Episode is an item transformed into publishable post fields.
type Episode struct {
	GUID        string
	Title       string
	Body        string
	Excerpt     string
	PlayerURL   string
	PublishedAt time.Time
}

// Configuration types

type Config struct {
	Name           string `yaml:"name"`
	URL            string `yaml:"url"`
	CategoryID     int    `yaml:"category_id"`
	CategoryIDs    []int  `yaml:"category_ids"`
	FeaturedMedia  int    `yaml:"featured_media_id"`
	UseSourceMedia bool   `yaml:"use_source_media"`
}

type catalogFile struct {
	Feeds []Config `yaml:"feeds"`
}
