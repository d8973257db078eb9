package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/opscart/avd-business-case/pkg/engine"
	"github.com/opscart/avd-business-case/pkg/output"
	"github.com/opscart/avd-business-case/pkg/profile"
)

// generation flags shared by generate and batch
type generateFlags struct {
	formats     []string
	outDir      string
	output      string
	save        bool
	asOf        string
	concurrency int
}

func (f *generateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVarP(&f.formats, "format", "f", nil, "Report formats: xlsx, pdf, html, markdown, csv (default from REPORT_FORMATS)")
	cmd.Flags().StringVarP(&f.outDir, "out", "d", "", "Output directory (default from OUTPUT_DIR)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "text", "Terminal output: text, json")
	cmd.Flags().BoolVar(&f.save, "save", false, "Archive the run in the database")
	cmd.Flags().StringVar(&f.asOf, "as-of", "", "Date weeks-to-go-live is measured from (YYYY-MM-DD, default today)")
}

func (f *generateFlags) build(ctx context.Context) (*app, output.Handler, error) {
	formats := f.formats
	if len(formats) == 0 {
		formats = cfg.Formats
	}
	outDir := f.outDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	var asOf *time.Time
	if f.asOf != "" {
		t, err := time.Parse(profile.DateLayout, f.asOf)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid --as-of %q: want YYYY-MM-DD", f.asOf)
		}
		asOf = &t
	}

	handler, err := output.NewHandler(f.output, os.Stdout)
	if err != nil {
		return nil, nil, err
	}

	a, err := newApp(ctx, cfg, formats, outDir, asOf)
	if err != nil {
		return nil, nil, err
	}
	if f.save || cfg.StorageEnabled {
		if err := a.openStore(ctx); err != nil {
			a.close()
			return nil, nil, err
		}
	}
	return a, handler, nil
}

func newGenerateCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "generate <profile>",
		Short: "Generate a business case from one profile file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, handler, err := flags.build(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			out, err := a.generate(ctx, args[0])
			if err != nil {
				return explain(err)
			}
			return handler.DisplaySummary(ctx, out.Projection, out.Files)
		},
	}
	flags.register(cmd)
	return cmd
}

func newBatchCmd() *cobra.Command {
	var flags generateFlags
	cmd := &cobra.Command{
		Use:   "batch <directory>",
		Short: "Generate business cases for every profile in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			paths, err := profile.Discover(args[0])
			if err != nil {
				return err
			}
			if len(paths) == 0 {
				return fmt.Errorf("no profiles found in %s", args[0])
			}

			a, handler, err := flags.build(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			limit := flags.concurrency
			if limit <= 0 {
				limit = cfg.BatchConcurrency
			}
			results, errs := a.generateAll(ctx, paths, limit)

			for _, out := range results {
				if out == nil {
					continue
				}
				if err := handler.DisplaySummary(ctx, out.Projection, out.Files); err != nil {
					return err
				}
			}
			if err := errors.Join(errs...); err != nil {
				return fmt.Errorf("%d of %d profiles failed:\n%w", len(errs), len(paths), err)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.concurrency, "concurrency", "c", 0, "Profiles generated in parallel (default from BATCH_CONCURRENCY)")
	return cmd
}

// generateAll runs profiles with bounded parallelism. A failing profile
// does not stop the others; results keep input order.
func (a *app) generateAll(ctx context.Context, paths []string, limit int) ([]*generated, []error) {
	results := make([]*generated, len(paths))
	failures := make([]error, len(paths))
	a.qualifyNames = true

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			out, err := a.generate(ctx, path)
			if err != nil {
				a.logger.Error("profile failed", "path", path, "error", err)
				failures[i] = explain(err)
				return nil
			}
			results[i] = out
			return nil
		})
	}
	_ = g.Wait()

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return results, errs
}

// explain turns structural profile errors into user-facing messages
func explain(err error) error {
	var perr *engine.ProfileError
	if errors.As(err, &perr) {
		return fmt.Errorf("profile rejected: %w", err)
	}
	if errors.Is(err, engine.ErrNoProfile) {
		return fmt.Errorf("no profile supplied: %w", err)
	}
	return err
}
