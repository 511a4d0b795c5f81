// Package cmd provides the command-line interface for the burnchart tool.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mterada1228/release-burnup-chart/internal/burndown"
	"github.com/mterada1228/release-burnup-chart/internal/config"
	"github.com/mterada1228/release-burnup-chart/internal/jira"
	"github.com/mterada1228/release-burnup-chart/internal/logging"
	"github.com/mterada1228/release-burnup-chart/internal/mermaid"
	"github.com/mterada1228/release-burnup-chart/internal/report"
	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// chartCmd generates the release burndown chart for a fix version.
var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Generate a release burndown chart as Mermaid markup",
	Long: `Generate a release burndown chart for a JIRA fix version.

The command fetches every ticket of the configured project and fix
version, buckets their story points over the chart window and renders
three lines as Mermaid xychart-beta markup:

1. Ideal: a straight line from the total story points down to zero
2. Release remaining: total points minus the points completed by each date
3. Dev remaining: points from the initial scope still open at each date

When sprint history is available the chart also carries average,
optimistic and pessimistic forecast lines with an 80% confidence band,
and the command prints the estimated completion date at each pace.

The markup is written to the output file and echoed to stdout.

Example:
  JIRA_PROJECT_KEY=PROJ JIRA_VERSION_NAME="Release 1.0" burnchart chart`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		if err := config.ValidateChartConfig(cfg); err != nil {
			return err
		}

		logging.Info("generating burndown chart",
			"project", cfg.Jira.ProjectKey,
			"version", cfg.Jira.VersionName,
			"start", cfg.Chart.StartDate.Format("2006-01-02"),
			"end", cfg.Chart.EndDate.Format("2006-01-02"),
			"interval_days", cfg.Chart.IntervalDays)

		client, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		ctx := cmd.Context()
		if err := client.ResolvePointFields(ctx); err != nil {
			return err
		}

		tickets, err := client.SearchTickets(ctx, cfg.Jira.ProjectKey, cfg.Jira.VersionName)
		if err != nil {
			return err
		}

		window := burndown.Window{
			Start:        cfg.Chart.StartDate,
			End:          cfg.Chart.EndDate,
			IntervalDays: cfg.Chart.IntervalDays,
		}
		rule := burndown.Rule{DoneStatuses: cfg.Jira.DoneStatuses}

		series, err := burndown.Compute(tickets, window, rule)
		if err != nil {
			return err
		}

		// Sprint statistics improve the forecast but their absence never
		// blocks the chart.
		stats, err := client.ProjectVelocity(ctx, cfg.Jira.ProjectKey)
		if err != nil {
			logging.Warn("sprint velocity unavailable, deriving velocity from the chart",
				"error", err)
			stats = models.VelocityStats{}
		}

		projection := burndown.Forecast(series, stats, cfg.Jira.VelocityMultiplier(), time.Now())
		logProgress(series, projection)

		chartSeries := []mermaid.Series{
			{Label: "Ideal", Values: projection.Ideal},
			{Label: "Release remaining", Values: projection.Release},
			{Label: "Dev remaining", Values: projection.Dev},
		}
		if len(projection.Average) > 0 {
			chartSeries = append(chartSeries,
				mermaid.Series{Label: "Forecast (average)", Values: projection.Average},
				mermaid.Series{Label: "Forecast (optimistic)", Values: projection.Optimistic},
				mermaid.Series{Label: "Forecast (pessimistic)", Values: projection.Pessimistic},
			)
		}

		markup, err := mermaid.Render(chartTitle(cfg), projection.Dates, series.TotalPoints, chartSeries)
		if err != nil {
			return err
		}

		if err := report.NewWriter(cfg.Chart.OutputFile, os.Stdout).Write(markup); err != nil {
			return err
		}

		printForecastSummary(cfg, projection)
		fmt.Printf("chart saved to %s\n", cfg.Chart.OutputFile)
		return nil
	},
}

// chartTitle returns the configured title, or one derived from the fix
// version.
func chartTitle(cfg *config.Config) string {
	if cfg.Chart.Title != "" {
		return cfg.Chart.Title
	}
	return fmt.Sprintf("%s release burndown", cfg.Jira.VersionName)
}

// logProgress reports how far the release has burned down as of the last
// bucket with actual data.
func logProgress(series burndown.Series, p burndown.Projection) {
	if p.ActualLen == 0 {
		logging.Info("chart window starts in the future, no progress to report")
		return
	}

	completed := series.TotalPoints - p.Remaining
	percent := 0.0
	if series.TotalPoints > 0 {
		percent = completed / series.TotalPoints * 100
	}
	logging.Info("current progress",
		"completed_points", completed,
		"total_points", series.TotalPoints,
		"percent", fmt.Sprintf("%.1f", percent),
		"velocity_per_interval", p.AveragePace.Velocity,
		"velocity_from_boards", p.FromBoards)
}

// printForecastSummary writes the completion estimates below the chart.
func printForecastSummary(cfg *config.Config, p burndown.Projection) {
	if p.ActualLen == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Release forecast")
	if target := cfg.Chart.TargetReleaseDate; !target.IsZero() {
		fmt.Printf("  Target release date: %s (80%% target: %s)\n",
			target.Format("2006-01-02"),
			eightyPercentDate(cfg.Chart.StartDate, target).Format("2006-01-02"))
	} else {
		fmt.Println("  Target release date: not set")
	}
	fmt.Printf("  Remaining points: %.2f\n", p.Remaining)
	fmt.Printf("  Average pace:     %s\n", describePace(p.AveragePace, p.Remaining))
	fmt.Printf("  Optimistic pace:  %s\n", describePace(p.OptimisticPace, p.Remaining))
	fmt.Printf("  Pessimistic pace: %s\n", describePace(p.PessimisticPace, p.Remaining))
	fmt.Println()
}

// describePace renders one completion estimate line.
func describePace(pace burndown.Pace, remaining float64) string {
	if remaining <= 0 {
		return "already complete"
	}
	if !pace.Feasible {
		return "velocity too low to forecast"
	}
	return fmt.Sprintf("%.1f periods (~%.0f days), done by %s",
		pace.Periods, pace.Days, pace.Completion.Format("2006-01-02"))
}

// eightyPercentDate returns the date 80% of the way from start to the
// target release date.
func eightyPercentDate(start, target time.Time) time.Time {
	days := int(target.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, int(float64(days)*0.8))
}
