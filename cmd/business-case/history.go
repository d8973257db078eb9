package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/opscart/avd-business-case/pkg/output"
	"github.com/opscart/avd-business-case/pkg/storage"
)

func newHistoryCmd() *cobra.Command {
	var (
		limit  int
		days   int
		format string
	)
	cmd := &cobra.Command{
		Use:   "history [company]",
		Short: "View archived business case runs",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			company := ""
			if len(args) == 1 {
				company = args[0]
			}

			handler, err := output.NewHandler(format, os.Stdout)
			if err != nil {
				return err
			}

			store, err := storage.NewPostgresStore(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(ctx, company, limit)
			if err != nil {
				return err
			}

			if company == "" {
				return handler.DisplayHistory(ctx, runs, nil)
			}
			stats, err := store.GetRunStats(ctx, company, days)
			if err != nil {
				return err
			}
			return handler.DisplayHistory(ctx, runs, stats)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "Number of runs to show")
	cmd.Flags().IntVar(&days, "days", 30, "Window for per-company statistics")
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format: text, json")
	return cmd
}
