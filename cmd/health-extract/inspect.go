// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/health-extract/internal/extract"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <export.xml>",
	Short: "Print tag, field and record-type counts without writing files",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := extract.Inspect(cmd.Context(), args[0], logger)
		if err != nil {
			return err
		}

		jsonOutput, _ := cmd.Flags().GetBool("json")
		if jsonOutput {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		fmt.Fprint(cmd.OutOrStdout(), summary.String())
		return nil
	},
}

func init() {
	inspectCmd.Flags().Bool("json", false, "output the summary as JSON")

	rootCmd.AddCommand(inspectCmd)
}
