package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/opscart/avd-business-case/pkg/config"
	"github.com/opscart/avd-business-case/pkg/logger"
)

var (
	// Global flags
	envFile      string
	preset       string
	logLevel     string
	logFormat    string
	rateCardPath string
	weightsPath  string
	provider     string
	region       string
	metricsFile  string

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "business-case",
		Short: "Azure Virtual Desktop business case generator",
		Long: `Compute current vs future AVD costs, ROI, payback and an implementation
timeline from a customer profile, and render them as workbook, PDF,
HTML, markdown or CSV reports.`,
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "Environment file to load before reading configuration")
	pf.StringVar(&preset, "preset", "", "Financial preset: conservative, aggressive")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	pf.StringVar(&logFormat, "log-format", "", "Log format: text, json (default from LOG_FORMAT)")
	pf.StringVar(&rateCardPath, "rate-card", "", "YAML rate card overriding list prices")
	pf.StringVar(&weightsPath, "weights", "", "YAML timeline weight table")
	pf.StringVar(&provider, "provider", "", "Pricing provider: default, file, azure")
	pf.StringVar(&region, "region", "", "Azure region for pricing (e.g., eastus)")
	pf.StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile on exit")

	rootCmd.AddCommand(newGenerateCmd(), newBatchCmd(), newHistoryCmd(), newWeightsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig resolves .env, environment, presets and flags, in that order
func loadConfig(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg = config.NewConfig()
	if err := cfg.ApplyPreset(preset); err != nil {
		return err
	}

	overrides := []struct {
		flag  string
		value string
		dest  *string
	}{
		{"log-level", logLevel, &cfg.LogLevel},
		{"log-format", logFormat, &cfg.LogFormat},
		{"rate-card", rateCardPath, &cfg.RateCardPath},
		{"weights", weightsPath, &cfg.WeightTablePath},
		{"provider", provider, &cfg.PricingProvider},
		{"region", region, &cfg.Region},
		{"metrics-file", metricsFile, &cfg.MetricsFile},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dest = o.value
		}
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	slog.Debug("configuration loaded",
		"discount_rate", cfg.DiscountRate,
		"horizon_years", cfg.HorizonYears,
		"convention", cfg.NPVConvention,
		"provider", cfg.PricingProvider)
	return nil
}
