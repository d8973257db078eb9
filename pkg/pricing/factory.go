package pricing

import (
	"fmt"
	"time"
)

// NewProvider creates a pricing provider from config
func NewProvider(config *Config) (Provider, error) {
	provider := config.Provider
	if provider == "" {
		if config.RateCardPath != "" {
			provider = "file"
		} else {
			provider = "default"
		}
	}

	ttl := time.Duration(config.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = time.Hour
	}

	switch provider {
	case "default":
		return NewDefaultProvider(), nil
	case "file":
		if config.RateCardPath == "" {
			return nil, fmt.Errorf("file provider requires a rate card path")
		}
		return NewFileProvider(config.RateCardPath, ttl), nil
	case "azure":
		var base Provider = NewDefaultProvider()
		if config.RateCardPath != "" {
			base = NewFileProvider(config.RateCardPath, ttl)
		}
		return NewAzureProvider(config.Region, base), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
