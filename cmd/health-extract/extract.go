// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/health-extract/internal/extract"
	"github.com/pdiddy/health-extract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract <export.xml>",
	Short: "Write one CSV file per record type",
	Long: `Extract parses an Apple Health export.xml and writes one CSV file per
discovered record type into the output directory. Record types are named
after their short HealthKit identifier (HKQuantityTypeIdentifierStepCount
becomes StepCount.csv). Workout and ActivitySummary entries each get a
single file.

With --sqlite the same rows are also loaded into a SQLite database, one
table per record type. A summary of tag, field and record-type counts is
printed when the run completes.`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := extractConfig(args[0])

	summary, err := extract.Run(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), summary.String())
	return nil
}

// extractConfig resolves flags, environment and config file into an
// ExtractionConfig. Flags take precedence.
func extractConfig(input string) types.ExtractionConfig {
	return types.ExtractionConfig{
		InputPath:   input,
		OutputDir:   viper.GetString("output"),
		SQLitePath:  viper.GetString("sqlite"),
		SummaryFile: viper.GetString("summary_file"),
	}
}

func init() {
	extractCmd.Flags().StringP("output", "o", types.DefaultOutputDir, "output directory for the CSV files")
	extractCmd.Flags().String("sqlite", "", "also load rows into this SQLite database")
	extractCmd.Flags().String("summary-file", "", "write the run summary to this file (.yaml or .json)")

	_ = viper.BindPFlag("output", extractCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("sqlite", extractCmd.Flags().Lookup("sqlite"))
	_ = viper.BindPFlag("summary_file", extractCmd.Flags().Lookup("summary-file"))

	rootCmd.AddCommand(extractCmd)
}
