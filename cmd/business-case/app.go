package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/opscart/avd-business-case/pkg/config"
	"github.com/opscart/avd-business-case/pkg/engine"
	"github.com/opscart/avd-business-case/pkg/metrics"
	"github.com/opscart/avd-business-case/pkg/models"
	"github.com/opscart/avd-business-case/pkg/pricing"
	"github.com/opscart/avd-business-case/pkg/profile"
	"github.com/opscart/avd-business-case/pkg/projection"
	"github.com/opscart/avd-business-case/pkg/reporter"
	"github.com/opscart/avd-business-case/pkg/storage"
	"github.com/opscart/avd-business-case/pkg/timeline"
)

// app wires configuration into the engine, reporter and archive
type app struct {
	cfg      *config.Config
	engine   *engine.Engine
	reporter *reporter.Reporter
	metrics  *metrics.Recorder
	store    storage.Store
	logger   *slog.Logger
	formats  []reporter.ReportFormat
	outDir   string

	// qualifyNames adds the profile file name to report names, set for
	// batches where several profiles may share a company
	qualifyNames bool
	namesMu      sync.Mutex
	claimed      map[string]bool
}

// generated is the outcome of one profile
type generated struct {
	Projection projection.Projection
	Files      []string
	Run        *models.ReportRun
}

func newApp(ctx context.Context, cfg *config.Config, formats []string, outDir string, asOf *time.Time) (*app, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	parsed := make([]reporter.ReportFormat, 0, len(formats))
	for _, f := range formats {
		rf, err := reporter.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, rf)
	}
	if len(parsed) == 0 {
		return nil, fmt.Errorf("at least one report format is required")
	}

	prov, err := pricing.NewProvider(cfg.PricingConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to create pricing provider: %w", err)
	}
	card, err := prov.GetRateCard(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to load rate card from %s: %w", prov.Name(), err)
	}

	weights := timeline.DefaultWeightTable()
	if cfg.WeightTablePath != "" {
		if weights, err = timeline.LoadWeightTable(cfg.WeightTablePath); err != nil {
			return nil, err
		}
	}

	convention, err := cfg.Convention()
	if err != nil {
		return nil, err
	}

	log := slog.Default()
	rec := metrics.NewRecorder()
	opts := engine.Options{
		RateCard:     card,
		Weights:      weights,
		HorizonYears: cfg.HorizonYears,
		DiscountRate: cfg.DiscountRate,
		Convention:   convention,
		Metrics:      rec,
		Logger:       log,
	}
	if asOf != nil {
		fixed := *asOf
		opts.Now = func() time.Time { return fixed }
	}

	log.Info("pricing resolved",
		"provider", prov.Name(),
		"source", card.Source,
		"version", card.Version,
		"region", card.Region)

	return &app{
		cfg:      cfg,
		engine:   engine.New(opts),
		reporter: reporter.New(log, rec),
		metrics:  rec,
		logger:   log,
		formats:  parsed,
		outDir:   outDir,
	}, nil
}

// openStore connects the run archive when requested
func (a *app) openStore(ctx context.Context) error {
	s, err := storage.NewPostgresStore(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.store = s
	return nil
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close storage", "error", err)
		}
	}
	if err := a.metrics.WriteFile(a.cfg.MetricsFile); err != nil {
		a.logger.Warn("failed to write metrics file", "path", a.cfg.MetricsFile, "error", err)
	}
}

// generate runs one profile file through compute, projection and every
// requested format
func (a *app) generate(ctx context.Context, path string) (*generated, error) {
	p, err := profile.Load(path)
	if err != nil {
		return nil, err
	}

	bc, err := a.engine.Compute(p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	proj := projection.Build(bc)

	if err := os.MkdirAll(a.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	run := models.NewReportRun(bc)
	run.Placeholders = proj.Placeholders()
	out := &generated{Projection: proj, Run: run}

	base := a.reportBase(p.CompanyName, path)

	for _, format := range a.formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := filepath.Join(a.outDir, base+"-business-case"+format.Extension())
		res, err := a.writeReport(proj, format, file)
		if err != nil {
			return nil, err
		}
		run.Formats = append(run.Formats, string(format))
		run.DrawFailures += res.DrawFailures
		out.Files = append(out.Files, file)
	}

	if a.store != nil {
		if err := a.store.SaveRun(ctx, run); err != nil {
			a.logger.Warn("failed to archive run", "company", run.CompanyName, "error", err)
		}
	}

	a.logger.Info("business case generated",
		"company", run.CompanyName,
		"files", len(out.Files),
		"placeholders", run.Placeholders,
		"draw_failures", run.DrawFailures)
	return out, nil
}

// writeReport writes through a temp file so a failed render leaves no
// partial report behind
func (a *app) writeReport(p projection.Projection, format reporter.ReportFormat, path string) (reporter.Result, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".report-*")
	if err != nil {
		return reporter.Result{}, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	res, err := a.reporter.Generate(p, format, tmp)
	if closeErr := tmp.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		return res, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return res, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return res, nil
}

// reportBase picks the file name stem for a profile's reports and claims it
// so no two profiles of one run write to the same path
func (a *app) reportBase(company, path string) string {
	stem := slugify(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	base := slugify(company)
	switch {
	case base == "":
		base = stem
	case a.qualifyNames && stem != "" && stem != base:
		base += "-" + stem
	}
	if base == "" {
		base = "profile"
	}

	a.namesMu.Lock()
	defer a.namesMu.Unlock()
	if a.claimed == nil {
		a.claimed = make(map[string]bool)
	}
	name := base
	for n := 2; a.claimed[name]; n++ {
		name = fmt.Sprintf("%s-%d", base, n)
	}
	a.claimed[name] = true
	return name
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
