package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/github-wrapped/internal/export"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports a user's yearly stats to an XLSX workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := fetchReport(cmd)
		if err != nil {
			return fmt.Errorf("failed to aggregate stats: %w", err)
		}

		out, _ := cmd.Flags().GetString("output")
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", out, err)
		}
		if err := export.WriteXLSX(f, rc.report); err != nil {
			_ = f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		rc.log.WithField("path", out).Info("Workbook written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	exportCmd.Flags().StringP("output", "o", "stats.xlsx", "Output file")
	_ = exportCmd.MarkFlagRequired("user")
}
