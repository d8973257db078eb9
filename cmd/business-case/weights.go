package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opscart/avd-business-case/pkg/timeline"
)

func newWeightsCmd() *cobra.Command {
	var validate string
	cmd := &cobra.Command{
		Use:   "weights",
		Short: "Print the timeline weight table, or validate one",
		Long: `Without flags, prints the effective weight table (built-in, or the file
named by --weights / WEIGHT_TABLE_PATH) as YAML, ready to edit.
With --validate, loads the given file and reports whether it is usable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if validate != "" {
				table, err := timeline.LoadWeightTable(validate)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ %s: weight table v%s is valid\n", validate, table.Version)
				return nil
			}

			table := timeline.DefaultWeightTable()
			if cfg.WeightTablePath != "" {
				var err error
				if table, err = timeline.LoadWeightTable(cfg.WeightTablePath); err != nil {
					return err
				}
			}
			return writeWeights(cmd.OutOrStdout(), table)
		},
	}
	cmd.Flags().StringVar(&validate, "validate", "", "Weight table file to validate")
	return cmd
}

func writeWeights(w io.Writer, table *timeline.WeightTable) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(table); err != nil {
		return fmt.Errorf("failed to encode weight table: %w", err)
	}
	return enc.Close()
}
