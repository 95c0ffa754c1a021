package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"
)

type Parser struct {
	gofeedParser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run parses feed data into items, keeping the order of the document.
func (p *Parser) Run(data []byte) ([]Item, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := make([]Item, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		items = append(items, p.normalizeItem(item))
	}

	return items, nil
}

func (p *Parser) normalizeItem(item *gofeed.Item) Item {
	normalized := Item{
		GUID:        item.GUID,
		Title:       item.Title,
		Content:     cmp.Or(item.Description, item.Content),
		PublishedAt: item.PublishedParsed,
		Media:       p.extractMedia(item.Extensions),
	}

	if item.ITunesExt != nil {
		normalized.ImageURL = strings.TrimSpace(item.ITunesExt.Image)
	}

	return normalized
}

// extractMedia collects the item's direct media:content elements.
func (p *Parser) extractMedia(extensions ext.Extensions) []MediaContent {
	contents := extensions["media"]["content"]
	if len(contents) == 0 {
		return nil
	}

	media := make([]MediaContent, 0, len(contents))
	for _, content := range contents {
		entry := MediaContent{
			URL:  content.Attrs["url"],
			Type: content.Attrs["type"],
		}
		if players := content.Children["player"]; len(players) > 0 {
			entry.PlayerURL = players[0].Attrs["url"]
		}
		media = append(media, entry)
	}

	return media
}
