package pricing

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileProvider loads a negotiated rate card from YAML. Keys missing from the
// file keep their default values.
type FileProvider struct {
	path  string
	cache *PriceCache
}

func NewFileProvider(path string, ttl time.Duration) *FileProvider {
	return &FileProvider{
		path:  path,
		cache: NewPriceCache(ttl),
	}
}

func (f *FileProvider) Name() string {
	return "file"
}

func (f *FileProvider) GetRateCard(ctx context.Context, region string) (*RateCard, error) {
	if cached := f.cache.Get(f.path); cached != nil {
		return cached, nil
	}

	card, err := LoadRateCard(f.path)
	if err != nil {
		return nil, err
	}
	if region != "" {
		card.Region = region
	}

	f.cache.Set(f.path, card)
	return card, nil
}

// LoadRateCard reads a YAML rate card layered over DefaultRateCard
func LoadRateCard(path string) (*RateCard, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rate card: %w", err)
	}
	return ParseRateCard(data)
}

// ParseRateCard decodes YAML over the defaults and validates the result
func ParseRateCard(data []byte) (*RateCard, error) {
	card := DefaultRateCard()
	if err := yaml.Unmarshal(data, card); err != nil {
		return nil, fmt.Errorf("failed to parse rate card: %w", err)
	}
	card.Source = "file"
	if err := card.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate card: %w", err)
	}
	return card, nil
}
