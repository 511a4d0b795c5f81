package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/mterada1228/release-burnup-chart/internal/config"
	"github.com/mterada1228/release-burnup-chart/internal/fields"
	"github.com/mterada1228/release-burnup-chart/internal/jira"
)

// fieldsCmd lists the field definitions of the configured JIRA instance.
// Story point estimates live in custom fields whose IDs differ between
// instances; this command is how users find the right one to configure.
var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List JIRA field definitions",
	Long: `List the field definitions of the configured JIRA instance.

Story point estimates live in custom fields whose IDs vary between
instances (customfield_10016 is common but not universal). Use this
command to find the field backing your estimates, then configure it via
JIRA_STORY_POINT_FIELD, either by ID or by display name.

Example:
  burnchart fields --custom-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		customOnly, err := cmd.Flags().GetBool("custom-only")
		if err != nil {
			return err
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %v", err)
		}

		client, err := jira.NewClient(cfg)
		if err != nil {
			return fmt.Errorf("failed to initialize jira client: %v", err)
		}

		defs, err := client.ListFields(cmd.Context())
		if err != nil {
			return err
		}

		registry := fields.NewRegistry(defs)
		list := registry.All()
		if customOnly {
			list = registry.Custom()
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(os.Stdout)
		tw.AppendHeader(table.Row{"ID", "Name", "Type", "Custom"})
		for _, f := range list {
			tw.AppendRow(table.Row{f.ID, f.Name, f.Type, f.Custom})
		}
		tw.Render()
		return nil
	},
}

func init() {
	fieldsCmd.Flags().Bool("custom-only", false, "Show only custom fields")
}
