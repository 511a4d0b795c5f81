package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mterada1228/release-burnup-chart/internal/config"
	"github.com/mterada1228/release-burnup-chart/internal/jira"
	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// velocityCmd summarizes the sprint velocity of the configured project.
var velocityCmd = &cobra.Command{
	Use:   "velocity",
	Short: "Show sprint velocity statistics for the project",
	Long: `Show sprint velocity statistics for the configured project.

The command resolves the project's agile boards, reads the completed
story points of the closed sprints and prints the average velocity, its
standard deviation and the average sprint length. The same statistics
drive the forecast lines of the chart command.

Example:
  JIRA_PROJECT_KEY=PROJ burnchart velocity`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}
		if err := config.ValidateProjectConfig(cfg); err != nil {
			return err
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		stats, err := client.ProjectVelocity(cmd.Context(), cfg.Jira.ProjectKey)
		if err != nil {
			return err
		}
		if stats.Samples == 0 {
			return fmt.Errorf("%w: no closed sprint reported completed points for project %q",
				models.ErrNotFound, cfg.Jira.ProjectKey)
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"Metric", "Value"})
		tw.AppendRow(table.Row{"Project", cfg.Jira.ProjectKey})
		tw.AppendRow(table.Row{"Sprints sampled", stats.Samples})
		tw.AppendRow(table.Row{"Points per sprint", fmt.Sprintf("%.2f", stats.PointsPerSprint)})
		tw.AppendRow(table.Row{"Std deviation", fmt.Sprintf("%.2f", stats.StdDev)})
		tw.AppendRow(table.Row{"Sprint length (days)", fmt.Sprintf("%.1f", stats.SprintDays)})
		tw.Render()
		return nil
	},
}
