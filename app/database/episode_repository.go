package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// EpisodeRepository records which episodes have been published.
type EpisodeRepository struct {
	db *DB
}

func NewEpisodeRepository(db *DB) *EpisodeRepository {
	return &EpisodeRepository{db: db}
}

// FindPublished returns the recorded episode, or nil when it was never published.
func (r *EpisodeRepository) FindPublished(feedName, guid string) (*PublishedEpisode, error) {
	var episode PublishedEpisode
	err := r.db.QueryRow(`
		SELECT feed_name, guid, title, post_id, post_link, published_at, created_at
		FROM published_episodes
		WHERE feed_name = ? AND guid = ?
	`, feedName, guid).Scan(&episode.FeedName, &episode.GUID, &episode.Title, &episode.PostID,
		&episode.PostLink, &episode.PublishedAt, &episode.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find published episode: %w", err)
	}
	return &episode, nil
}

func (r *EpisodeRepository) MarkPublished(episode PublishedEpisode) error {
	_, err := r.db.Exec(`
		INSERT INTO published_episodes (feed_name, guid, title, post_id, post_link, published_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (feed_name, guid) DO UPDATE SET
			title = excluded.title,
			post_id = excluded.post_id,
			post_link = excluded.post_link,
			published_at = excluded.published_at
	`, episode.FeedName, episode.GUID, episode.Title, episode.PostID, episode.PostLink,
		episode.PublishedAt.UTC(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark episode published: %w", err)
	}
	return nil
}
