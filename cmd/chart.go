package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/naka-gawa/loc-chart/internal/chart"
	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/naka-gawa/loc-chart/internal/usecase"
	"github.com/spf13/cobra"
)

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Render a user's chart to a file",
	Long:  `Aggregates the contributions of a GitHub user and writes the SVG chart to a file or standard output.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}
		logger := newLogger(cmd)

		user, _ := cmd.Flags().GetString("user")
		orgs, _ := cmd.Flags().GetString("orgs")
		out, _ := cmd.Flags().GetString("out")
		mode, _ := cmd.Flags().GetString("mode")
		theme, _ := cmd.Flags().GetString("theme")
		months, _ := cmd.Flags().GetInt("months")
		title, _ := cmd.Flags().GetString("title")
		hideBorder, _ := cmd.Flags().GetBool("hide-border")

		opts := domain.RenderOptions{
			Theme:       theme,
			HideBorder:  hideBorder,
			CustomTitle: title,
			Months:      months,
			Mode:        domain.ParseChartMode(mode),
		}

		pipeline, err := newPipeline(logger)
		if err != nil {
			return err
		}
		renderer := chart.NewRenderer()

		var image []byte
		series, err := pipeline.Run(context.Background(), user, usecase.ParseOrgList(orgs))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate stats: %v\n", err)
			image = renderer.RenderError("Missing parameter", err.Error(), opts)
		} else {
			image = renderer.Render(user, series, opts)
		}

		if out == "" || out == "-" {
			_, err = os.Stdout.Write(image)
			return err
		}
		if err := os.WriteFile(out, image, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartCmd.Flags().StringP("user", "u", "", "Target GitHub user name (required)")
	chartCmd.Flags().StringP("orgs", "o", "", "Comma-separated organizations whose repositories are included")
	chartCmd.Flags().String("out", "", "Output file (default standard output)")
	chartCmd.Flags().String("mode", string(domain.CumulativeMode), "Chart mode: cumulative or monthly")
	chartCmd.Flags().String("theme", "default", "Theme name")
	chartCmd.Flags().Int("months", 0, "Only show the last N months")
	chartCmd.Flags().String("title", "", "Custom chart title")
	chartCmd.Flags().Bool("hide-border", false, "Hide the card border")
	_ = chartCmd.MarkFlagRequired("user")
}
