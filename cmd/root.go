package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "burnchart",
	Short: "Generate release burndown charts from JIRA",
	Long: `Burnchart pulls the tickets of a JIRA fix version and renders a release
burndown chart as Mermaid xychart-beta markup, ready to paste anywhere
Mermaid renders (Notion, GitLab, ...).

Configuration comes from environment variables, optionally loaded from
a .env file in the working directory. Run 'burnchart fields' to discover
the custom field holding your story point estimates.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(velocityCmd)
}
