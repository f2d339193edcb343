package docsite

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Features []seedFeature `yaml:"features"`
}

type seedFeature struct {
	Slug        string `yaml:"slug"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	Draft       bool   `yaml:"draft"`
}

// LoadFeatureSeed parses a YAML feature list. Features keep file order as
// their position; a missing slug is derived from the title.
func LoadFeatureSeed(path string) ([]Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("docsite: read feature seed %s: %w", path, err)
	}
	return ParseFeatureSeed(data)
}

// ParseFeatureSeed is LoadFeatureSeed for in-memory data.
func ParseFeatureSeed(data []byte) ([]Feature, error) {
	var raw seedFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("docsite: parse feature seed: %w", err)
	}
	features := make([]Feature, 0, len(raw.Features))
	seen := make(map[string]struct{}, len(raw.Features))
	for i, sf := range raw.Features {
		title := strings.TrimSpace(sf.Title)
		if title == "" {
			return nil, fmt.Errorf("docsite: feature seed entry %d: title is required", i)
		}
		slug := strings.TrimSpace(sf.Slug)
		if slug == "" {
			slug = Slugify(title)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("docsite: feature seed entry %d: duplicate slug %q", i, slug)
		}
		seen[slug] = struct{}{}
		features = append(features, Feature{
			Slug:        slug,
			Title:       title,
			Description: strings.TrimSpace(sf.Description),
			Image:       strings.TrimSpace(sf.Image),
			Position:    i,
			Published:   !sf.Draft,
		})
	}
	return features, nil
}

// SeedFeatures writes features into s unless s already holds any. It reports
// how many features were written.
func SeedFeatures(s *FeatureStore, features []Feature) (int, error) {
	n, err := s.CountFeatures()
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, f := range features {
		if err := s.SaveFeature(f); err != nil {
			return 0, fmt.Errorf("docsite: seed feature %q: %w", f.Slug, err)
		}
	}
	return len(features), nil
}
