package feed

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed feeds.yml
var defaultCatalog []byte

// Categories resolves the post categories: the explicit list when present,
// otherwise the single category, otherwise none.
func (c *Config) Categories() []int {
	if len(c.CategoryIDs) > 0 {
		return slices.Clone(c.CategoryIDs)
	}
	if c.CategoryID != 0 {
		return []int{c.CategoryID}
	}
	return []int{}
}

// LoadConfigs returns the feed catalog from path, or the built-in catalog when
// path is empty.
func LoadConfigs(path string) ([]Config, error) {
	if path == "" {
		return ParseConfigs(defaultCatalog)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	configs, err := ParseConfigs(data)
	if err != nil {
		return nil, fmt.Errorf("error loading %s: %w", path, err)
	}
	return configs, nil
}

func ParseConfigs(data []byte) ([]Config, error) {
	var catalog catalogFile
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	names := make(map[string]bool, len(catalog.Feeds))
	for i := range catalog.Feeds {
		feedConfig := &catalog.Feeds[i]
		if err := validateConfig(feedConfig); err != nil {
			return nil, fmt.Errorf("invalid feed at index %d: %w", i, err)
		}
		if names[feedConfig.Name] {
			return nil, fmt.Errorf("duplicate feed name %q", feedConfig.Name)
		}
		names[feedConfig.Name] = true
	}

	return catalog.Feeds, nil
}

func validateConfig(feedConfig *Config) error {
	if feedConfig == nil {
		return fmt.Errorf("feedConfig is nil")
	}

	requiredFeedFields := map[string]string{
		"feed name": feedConfig.Name,
		"feed URL":  feedConfig.URL,
	}

	for fieldName, fieldValue := range requiredFeedFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	nonNegativeFields := map[string]int{
		"category id":       feedConfig.CategoryID,
		"featured media id": feedConfig.FeaturedMedia,
	}

	for fieldName, fieldValue := range nonNegativeFields {
		if fieldValue < 0 {
			return fmt.Errorf("%s must be non-negative", fieldName)
		}
	}

	for i, id := range feedConfig.CategoryIDs {
		if id <= 0 {
			return fmt.Errorf("category id at index %d must be positive", i)
		}
	}

	return nil
}
