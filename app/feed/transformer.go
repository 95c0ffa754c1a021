package feed

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/samber/lo"
)

const (
	audioMIMEType   = "audio/mpeg"
	excerptMaxRunes = 200
)

var ErrNoPlayerURL = errors.New("no player URL found")

var (
	tagPattern    = regexp.MustCompile(`<[^>]*>`)
	entityPattern = regexp.MustCompile(`&(?:amp|quot|apos|lt|gt|ndash|mdash|hellip|copy|reg|trade|nbsp);`)
)

var entityReplacements = map[string]string{
	"&amp;":    "&",
	"&quot;":   `"`,
	"&apos;":   "'",
	"&lt;":     "<",
	"&gt;":     ">",
	"&ndash;":  "–",
	"&mdash;":  "—",
	"&hellip;": "…",
	"&copy;":   "©",
	"&reg;":    "®",
	"&trade;":  "™",
	"&nbsp;":   " ",
}

type Transformer struct {
	now func() time.Time
}

func NewTransformer(now func() time.Time) *Transformer {
	if now == nil {
		now = time.Now
	}
	return &Transformer{now: now}
}

// Run builds the post fields of an item. Items without an audio/mpeg player
// cannot be published and yield ErrNoPlayerURL.
func (t *Transformer) Run(item Item) (*Episode, error) {
	playerURL := PlayerURL(item)
	if playerURL == "" {
		return nil, fmt.Errorf("%w for %q", ErrNoPlayerURL, item.Title)
	}

	publishedAt := t.now()
	if item.PublishedAt != nil {
		publishedAt = *item.PublishedAt
	}

	return &Episode{
		GUID:        strings.TrimSpace(item.GUID),
		Title:       item.Title,
		Body:        Body(item.Content, playerURL),
		Excerpt:     Excerpt(item.Content, item.Title),
		PlayerURL:   playerURL,
		PublishedAt: publishedAt.UTC(),
	}, nil
}

// PlayerURL returns the player of the item's first audio/mpeg media entry.
func PlayerURL(item Item) string {
	audio, ok := lo.Find(item.Media, func(m MediaContent) bool {
		return m.Type == audioMIMEType
	})
	if !ok {
		return ""
	}
	return audio.PlayerURL
}

func Body(content, playerURL string) string {
	return fmt.Sprintf(`<p>%s</p><iframe src="%s" width="100%%" height="180" frameborder="0" allow="autoplay; clipboard-write" allowfullscreen></iframe>`,
		content, playerURL)
}

// Excerpt is the first 200 characters of the stripped content, or the title
// when the content strips to nothing.
func Excerpt(content, title string) string {
	text := []rune(StripHTML(content))
	if len(text) > excerptMaxRunes {
		text = text[:excerptMaxRunes]
	}
	if len(text) == 0 {
		return title
	}
	return string(text)
}

// StripHTML removes markup tags and decodes a fixed set of named entities.
// Other entities are left as they are.
func StripHTML(html string) string {
	if html == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(html, "")
	return entityPattern.ReplaceAllStringFunc(text, func(entity string) string {
		return entityReplacements[entity]
	})
}
