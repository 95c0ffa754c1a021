package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/podcast-press/app/database"
	"github.com/lysyi3m/podcast-press/app/feed"
	"github.com/lysyi3m/podcast-press/app/wordpress"
)

const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Dependencies are shared by every SyncFeedTask of a run.
type Dependencies struct {
	HTTPClient  HTTPClient
	Parser      *feed.Parser
	Filterer    *feed.Filterer
	Transformer *feed.Transformer
	Publisher   Publisher
	Ledger      Ledger // nil disables deduplication
	UserAgent   string
	DryRun      bool
	Now         func() time.Time
}

type itemOutcome int

const (
	outcomePublished itemOutcome = iota
	outcomeUnpublishable
	outcomeDuplicate
	outcomeDryRun
	outcomeFailed
)

// SyncFeedTask imports the recent episodes of one feed.
type SyncFeedTask struct {
	Task
	FeedConfig feed.Config
	deps       Dependencies
}

func NewSyncFeedTask(feedConfig feed.Config, deps Dependencies) *SyncFeedTask {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &SyncFeedTask{
		Task:       NewTask(TaskTypeSyncFeed, feedConfig.Name),
		FeedConfig: feedConfig,
		deps:       deps,
	}
}

func (t *SyncFeedTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	data, err := t.fetchFeed(ctx, t.FeedConfig.URL)
	if err != nil {
		return fmt.Errorf("failed to fetch feed %s: %w", t.FeedConfig.URL, err)
	}

	items, err := t.deps.Parser.Run(data)
	if err != nil {
		return fmt.Errorf("failed to parse feed %s: %w", t.FeedConfig.URL, err)
	}

	recent, skipped := t.deps.Filterer.Run(items, t.deps.Now())

	counts := make(map[itemOutcome]int)
	for _, item := range recent {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		slog.Info("Importing episode", "feed", t.FeedName, "title", item.Title)
		counts[t.publishItem(ctx, item)]++
	}

	if skipped > 0 {
		slog.Info("Skipped old items", "feed", t.FeedName, "count", skipped)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"feed", t.FeedName,
		"duration", t.GetDuration(),
		"total", len(items),
		"old", skipped,
		"published", counts[outcomePublished],
		"unpublishable", counts[outcomeUnpublishable],
		"duplicates", counts[outcomeDuplicate],
		"dry_run", counts[outcomeDryRun],
		"errors", counts[outcomeFailed])

	return nil
}

func (t *SyncFeedTask) publishItem(ctx context.Context, item feed.Item) itemOutcome {
	episode, err := t.deps.Transformer.Run(item)
	if err != nil {
		slog.Warn("Episode skipped", "feed", t.FeedName, "title", item.Title, "reason", err)
		return outcomeUnpublishable
	}

	if t.deps.Ledger != nil && episode.GUID != "" {
		published, err := t.deps.Ledger.FindPublished(t.FeedName, episode.GUID)
		if err != nil {
			slog.Error("Failed to check publish ledger", "feed", t.FeedName, "guid", episode.GUID, "error", err)
			return outcomeFailed
		}
		if published != nil {
			slog.Info("Episode already published", "feed", t.FeedName, "guid", episode.GUID,
				"link", published.PostLink, "recorded_at", published.CreatedAt)
			return outcomeDuplicate
		}
	}

	post := BuildPost(episode, t.FeedConfig.Categories(), t.featuredMedia(ctx, item))

	if t.deps.DryRun {
		payload, err := wordpress.EncodePost(post)
		if err != nil {
			slog.Error("Failed to encode dry run payload", "feed", t.FeedName, "title", episode.Title, "error", err)
			return outcomeFailed
		}
		slog.Info("Dry run, post not created", "feed", t.FeedName, "payload", string(payload))
		return outcomeDryRun
	}

	created, err := t.deps.Publisher.CreatePost(ctx, post)
	if err != nil {
		var apiErr *wordpress.APIError
		if errors.As(err, &apiErr) {
			slog.Error("Failed to create post", "feed", t.FeedName, "title", episode.Title,
				"status", apiErr.Status, "body", apiErr.Body)
		} else {
			slog.Error("Failed to create post", "feed", t.FeedName, "title", episode.Title, "error", err)
		}
		return outcomeFailed
	}

	slog.Info("Published", "feed", t.FeedName, "link", created.Link)

	if t.deps.Ledger != nil && episode.GUID != "" {
		err := t.deps.Ledger.MarkPublished(database.PublishedEpisode{
			FeedName:    t.FeedName,
			GUID:        episode.GUID,
			Title:       episode.Title,
			PostID:      created.ID,
			PostLink:    created.Link,
			PublishedAt: episode.PublishedAt,
		})
		if err != nil {
			slog.Error("Failed to record published episode", "feed", t.FeedName, "guid", episode.GUID, "error", err)
		}
	}

	return outcomePublished
}

// featuredMedia uploads the item's own image when the feed asks for it and
// falls back to the feed's default media id on any failure.
func (t *SyncFeedTask) featuredMedia(ctx context.Context, item feed.Item) int {
	mediaID := t.FeedConfig.FeaturedMedia
	if !t.FeedConfig.UseSourceMedia || item.ImageURL == "" {
		return mediaID
	}
	if t.deps.DryRun {
		slog.Info("Dry run, source image not uploaded", "feed", t.FeedName, "url", item.ImageURL)
		return mediaID
	}

	slog.Info("Uploading source image", "feed", t.FeedName, "url", item.ImageURL)
	uploadedID, err := t.deps.Publisher.UploadMedia(ctx, item.ImageURL)
	if err != nil {
		slog.Error("Failed to upload image", "feed", t.FeedName, "url", item.ImageURL, "error", err)
		return mediaID
	}
	return uploadedID
}

func (t *SyncFeedTask) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if t.deps.UserAgent != "" {
		req.Header.Set("User-Agent", t.deps.UserAgent)
	}

	resp, err := t.deps.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

// BuildPost assembles the CMS payload of an episode.
func BuildPost(episode *feed.Episode, categories []int, featuredMedia int) wordpress.Post {
	date := episode.PublishedAt.UTC().Format(isoMillis)

	var guid *string
	if episode.GUID != "" {
		guid = &episode.GUID
	}

	return wordpress.Post{
		Title:         episode.Title,
		Content:       episode.Body,
		Excerpt:       episode.Excerpt,
		Categories:    categories,
		Status:        wordpress.StatusPublish,
		Date:          date,
		DateGMT:       date,
		FeaturedMedia: featuredMedia,
		ACF: wordpress.PostACF{
			Disabled:    false,
			EpisodeGUID: guid,
		},
	}
}
