package database

import (
	"time"
)

type PublishedEpisode struct {
	FeedName    string
	GUID        string
	Title       string
	PostID      int
	PostLink    string
	PublishedAt time.Time
	CreatedAt   time.Time
}
