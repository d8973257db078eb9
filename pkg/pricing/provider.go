package pricing

import (
	"context"
)

// Provider supplies the unit costs the cost model multiplies against.
// Providers are resolved before computation; the engine itself never does I/O.
type Provider interface {
	GetRateCard(ctx context.Context, region string) (*RateCard, error)
	Name() string
}

type Config struct {
	Provider     string // default, file, azure
	Region       string
	RateCardPath string
	CacheTTL     int // seconds
}
