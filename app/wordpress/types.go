// Package wordpress is a minimal client for the WordPress REST API endpoints
// used to publish podcast episodes.
package wordpress

import "fmt"

const StatusPublish = "publish"

// Post is the payload of POST /wp/v2/posts.
type Post struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	Excerpt       string  `json:"excerpt"`
	Categories    []int   `json:"categories"`
	Status        string  `json:"status"`
	Date          string  `json:"date"`
	DateGMT       string  `json:"date_gmt"`
	FeaturedMedia int     `json:"featured_media"`
	ACF           PostACF `json:"acf"`
}

// PostACF holds the custom fields of an episode post.
type PostACF struct {
	Disabled    bool    `json:"disabled"`
	EpisodeGUID *string `json:"episode_guid"`
}

// CreatedPost is the part of the post creation response we use.
type CreatedPost struct {
	ID   int    `json:"id"`
	Link string `json:"link"`
}

// APIError is returned when the CMS answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("WordPress API error: %s: %s", e.Status, e.Body)
}

type mediaResponse struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}
