package tasks

import (
	"context"
	"net/http"

	"github.com/lysyi3m/podcast-press/app/database"
	"github.com/lysyi3m/podcast-press/app/wordpress"
)

// HTTPClient fetches feed documents.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Publisher creates posts and media in the CMS.
type Publisher interface {
	CreatePost(ctx context.Context, post wordpress.Post) (*wordpress.CreatedPost, error)
	UploadMedia(ctx context.Context, imageURL string) (int, error)
}

// Ledger remembers published episodes. It is optional.
type Ledger interface {
	FindPublished(feedName, guid string) (*database.PublishedEpisode, error)
	MarkPublished(episode database.PublishedEpisode) error
}
