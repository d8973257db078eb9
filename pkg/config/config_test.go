package config

import (
	"testing"

	"github.com/opscart/avd-business-case/pkg/models"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"DISCOUNT_RATE", "HORIZON_YEARS", "NPV_CONVENTION", "REPORT_FORMATS", "BATCH_CONCURRENCY", "STORAGE_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	if cfg.DiscountRate != 0.08 {
		t.Errorf("Expected default discount rate 0.08, got %.2f", cfg.DiscountRate)
	}
	if cfg.HorizonYears != 5 {
		t.Errorf("Expected default horizon 5, got %d", cfg.HorizonYears)
	}
	if cfg.NPVConvention != "annual" {
		t.Errorf("Expected annual convention, got %s", cfg.NPVConvention)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[0] != "xlsx" || cfg.Formats[1] != "pdf" {
		t.Errorf("Expected [xlsx pdf], got %v", cfg.Formats)
	}
	if cfg.BatchConcurrency != 4 {
		t.Errorf("Expected batch concurrency 4, got %d", cfg.BatchConcurrency)
	}
	if cfg.StorageEnabled {
		t.Error("Expected storage disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigFromEnvironment(t *testing.T) {
	t.Setenv("DISCOUNT_RATE", "0.12")
	t.Setenv("HORIZON_YEARS", "3")
	t.Setenv("NPV_CONVENTION", "continuous")
	t.Setenv("REPORT_FORMATS", "pdf, md ,")
	t.Setenv("STORAGE_ENABLED", "1")
	t.Setenv("RATE_CARD_PATH", "cards/negotiated.yaml")

	cfg := NewConfig()

	if cfg.DiscountRate != 0.12 {
		t.Errorf("Expected discount rate 0.12 from env, got %.2f", cfg.DiscountRate)
	}
	if cfg.HorizonYears != 3 {
		t.Errorf("Expected horizon 3 from env, got %d", cfg.HorizonYears)
	}
	conv, err := cfg.Convention()
	if err != nil || conv != models.NPVContinuous {
		t.Errorf("Expected continuous convention, got %v (%v)", conv, err)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[1] != "md" {
		t.Errorf("Expected [pdf md], got %v", cfg.Formats)
	}
	if !cfg.StorageEnabled {
		t.Error("Expected storage enabled from env")
	}
	if pc := cfg.PricingConfig(); pc.RateCardPath != "cards/negotiated.yaml" || pc.CacheTTL != 3600 {
		t.Errorf("Expected pricing config from env, got %+v", pc)
	}
}

func TestInvalidNumberFallsBackToDefault(t *testing.T) {
	t.Setenv("HORIZON_YEARS", "five")
	t.Setenv("DISCOUNT_RATE", "eight percent")

	cfg := NewConfig()
	if cfg.HorizonYears != 5 || cfg.DiscountRate != 0.08 {
		t.Errorf("Expected defaults for unparseable values, got %d / %.2f", cfg.HorizonYears, cfg.DiscountRate)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset      string
		wantRate    float64
		wantHorizon int
		wantConv    string
	}{
		{"conservative", 0.10, 3, "annual"},
		{"aggressive", 0.06, 5, "continuous"},
	}

	for _, tt := range tests {
		t.Run(tt.preset, func(t *testing.T) {
			cfg := NewConfig()
			if err := cfg.ApplyPreset(tt.preset); err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if cfg.DiscountRate != tt.wantRate {
				t.Errorf("Expected rate %.2f, got %.2f", tt.wantRate, cfg.DiscountRate)
			}
			if cfg.HorizonYears != tt.wantHorizon {
				t.Errorf("Expected horizon %d, got %d", tt.wantHorizon, cfg.HorizonYears)
			}
			if cfg.NPVConvention != tt.wantConv {
				t.Errorf("Expected convention %s, got %s", tt.wantConv, cfg.NPVConvention)
			}
		})
	}

	if err := NewConfig().ApplyPreset("reckless"); err == nil {
		t.Error("Expected error for unknown preset")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"zero rate", func(c *Config) { c.DiscountRate = 0 }, false},
		{"negative rate", func(c *Config) { c.DiscountRate = -0.01 }, true},
		{"rate of 100%", func(c *Config) { c.DiscountRate = 1 }, true},
		{"zero horizon", func(c *Config) { c.HorizonYears = 0 }, true},
		{"long horizon", func(c *Config) { c.HorizonYears = 11 }, true},
		{"bad convention", func(c *Config) { c.NPVConvention = "monthly" }, true},
		{"no concurrency", func(c *Config) { c.BatchConcurrency = 0 }, true},
		{"no formats", func(c *Config) { c.Formats = nil }, true},
		{"storage without url", func(c *Config) { c.StorageEnabled = true; c.DatabaseURL = "" }, true},
		{"file provider without path", func(c *Config) { c.PricingProvider = "file"; c.RateCardPath = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				DiscountRate:     0.08,
				HorizonYears:     5,
				NPVConvention:    "annual",
				Formats:          []string{"pdf"},
				BatchConcurrency: 2,
				DatabaseURL:      "postgres://localhost/bc",
			}
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}
