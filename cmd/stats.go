package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates a GitHub user's yearly activity and outputs it as JSON",
	Long: `Aggregates activity since January 1st (UTC) of the current year for a GitHub user
and prints the report, including the computed stats, as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := fetchReport(cmd)
		if err != nil {
			return fmt.Errorf("failed to aggregate stats: %w", err)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(rc.report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results to JSON: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	_ = statsCmd.MarkFlagRequired("user")
}
