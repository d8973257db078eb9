package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/pricing"
	"github.com/opscart/avd-business-case/pkg/roi"
)

// Config holds application configuration
type Config struct {
	// Finance
	DiscountRate  float64
	HorizonYears  int
	NPVConvention string // annual, continuous

	// Pricing
	PricingProvider string // default, file, azure
	Region          string
	RateCardPath    string
	PriceCacheTTL   int // seconds

	// Timeline
	WeightTablePath string

	// Output
	OutputDir        string
	Formats          []string
	BatchConcurrency int
	MetricsFile      string

	// Storage
	StorageEnabled bool
	DatabaseURL    string

	// Logging
	LogLevel  string
	LogFormat string // text, json
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DiscountRate:     getEnvFloat("DISCOUNT_RATE", roi.DefaultDiscountRate),
		HorizonYears:     getEnvInt("HORIZON_YEARS", roi.DefaultHorizonYears),
		NPVConvention:    getEnv("NPV_CONVENTION", string(models.NPVAnnual)),
		PricingProvider:  getEnv("PRICING_PROVIDER", ""),
		Region:           getEnv("AZURE_REGION", "eastus"),
		RateCardPath:     getEnv("RATE_CARD_PATH", ""),
		PriceCacheTTL:    getEnvInt("PRICE_CACHE_TTL", 3600),
		WeightTablePath:  getEnv("WEIGHT_TABLE_PATH", ""),
		OutputDir:        getEnv("OUTPUT_DIR", "reports"),
		Formats:          getEnvList("REPORT_FORMATS", []string{"xlsx", "pdf"}),
		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 4),
		MetricsFile:      getEnv("METRICS_FILE", ""),
		StorageEnabled:   getEnvBool("STORAGE_ENABLED", false),
		DatabaseURL:      getEnv("DATABASE_URL", "host=localhost port=5432 user=avduser password=devpassword dbname=businesscase sslmode=disable"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}
}

// UseConservativePreset discounts harder over a shorter horizon
func (c *Config) UseConservativePreset() {
	c.DiscountRate = 0.10
	c.HorizonYears = 3
	c.NPVConvention = string(models.NPVAnnual)
}

// UseAggressivePreset credits value over the longest common horizon
func (c *Config) UseAggressivePreset() {
	c.DiscountRate = 0.06
	c.HorizonYears = 5
	c.NPVConvention = string(models.NPVContinuous)
}

// ApplyPreset selects a named preset; "" leaves the config unchanged
func (c *Config) ApplyPreset(name string) error {
	switch strings.ToLower(name) {
	case "":
	case "conservative":
		c.UseConservativePreset()
	case "aggressive":
		c.UseAggressivePreset()
	default:
		return fmt.Errorf("unknown preset %q (want conservative or aggressive)", name)
	}
	return nil
}

// Convention returns the parsed NPV convention
func (c *Config) Convention() (models.NPVConvention, error) {
	return roi.ParseConvention(c.NPVConvention)
}

// PricingConfig maps the pricing keys onto the provider factory's config
func (c *Config) PricingConfig() *pricing.Config {
	return &pricing.Config{
		Provider:     c.PricingProvider,
		Region:       c.Region,
		RateCardPath: c.RateCardPath,
		CacheTTL:     c.PriceCacheTTL,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1"
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// Validate checks if configuration is valid
func (c *Config) Validate() error {
	if c.DiscountRate < 0 || c.DiscountRate >= 1 {
		return fmt.Errorf("discount rate must be in [0, 1), got %.4f", c.DiscountRate)
	}
	if c.HorizonYears < 1 || c.HorizonYears > 10 {
		return fmt.Errorf("horizon must be 1-10 years, got %d", c.HorizonYears)
	}
	if _, err := c.Convention(); err != nil {
		return err
	}
	if c.BatchConcurrency < 1 {
		return fmt.Errorf("batch concurrency must be at least 1, got %d", c.BatchConcurrency)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one report format is required")
	}
	if c.StorageEnabled && c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set when storage is enabled")
	}
	if c.PricingProvider == "file" && c.RateCardPath == "" {
		return fmt.Errorf("RATE_CARD_PATH must be set for the file pricing provider")
	}
	return nil
}
