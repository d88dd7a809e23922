package cmd

import (
	"fmt"
	"os"

	"github.com/naka-gawa/github-wrapped/internal/render"
	"github.com/spf13/cobra"
)

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Renders a user's yearly stats as an SVG card",
	RunE: func(cmd *cobra.Command, args []string) error {
		rc, err := fetchReport(cmd)
		if err != nil {
			return fmt.Errorf("failed to aggregate stats: %w", err)
		}

		themeName, _ := cmd.Flags().GetString("theme")
		if themeName == "" {
			themeName = rc.cfg.Theme
		}
		svg, err := render.RenderSVG(rc.report, render.ThemeByName(themeName))
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "-" {
			_, err = cmd.OutOrStdout().Write(svg)
			return err
		}
		if err := os.WriteFile(out, svg, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		rc.log.WithField("path", out).Info("Card written")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cardCmd)
	cardCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	cardCmd.Flags().StringP("output", "o", "card.svg", `Output file, or "-" for stdout`)
	cardCmd.Flags().String("theme", "", "Card theme (dark or light); defaults to UI_THEME")
	_ = cardCmd.MarkFlagRequired("user")
}
