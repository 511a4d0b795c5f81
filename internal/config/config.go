// Package config provides centralized configuration management for the application.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// dateLayout is the format accepted for all date-valued variables.
const dateLayout = "2006-01-02"

// Defaults applied when the corresponding environment variable is unset.
const (
	defaultStoryPointField = "customfield_10016"
	defaultDoneStatuses    = "Done,Closed,Resolved,完了,クローズ"
	defaultAdjustment      = 100.0
	defaultIntervalDays    = 7
	defaultWindowDays      = 90
	defaultOutputFile      = "mermaid_chart.txt"
)

// Config holds all configuration parameters for the application.
type Config struct {
	Jira  JiraConfig
	Chart ChartConfig
}

// JiraConfig holds connection and query settings for the JIRA API.
type JiraConfig struct {
	URL      string
	Username string
	Token    string

	ProjectKey  string
	VersionName string

	// StoryPointField names the field holding the estimate, either a field
	// ID such as "customfield_10016" or a display name resolved against
	// the field registry.
	StoryPointField string

	// FallbackPointField is consulted when StoryPointField is empty on a
	// ticket. An empty value disables the fallback.
	FallbackPointField string

	// DoneStatuses are the status names treated as completed.
	DoneStatuses []string

	// VelocityAdjustment scales the forecast velocity, in percent.
	VelocityAdjustment float64
}

// ChartConfig holds the chart window and output settings.
type ChartConfig struct {
	StartDate    time.Time
	EndDate      time.Time
	IntervalDays int

	// TargetReleaseDate is optional; the zero value means unset.
	TargetReleaseDate time.Time

	OutputFile string
	Title      string
}

// VelocityMultiplier converts the percent adjustment into a factor.
func (j JiraConfig) VelocityMultiplier() float64 {
	return j.VelocityAdjustment / 100
}

// LoadConfig initializes and loads configuration from a .env file (when
// present) and environment variables. Variables already set in the
// environment always win over .env entries.
func LoadConfig() (*Config, error) {
	// godotenv never overrides variables that are already set; a missing
	// .env file is not an error.
	_ = godotenv.Load()

	// Initialize Viper for environment variables
	v := viper.New()
	v.SetEnvPrefix("")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Map specific environment variables
	v.BindEnv("jira.url", "JIRA_URL")
	v.BindEnv("jira.username", "JIRA_USERNAME")
	v.BindEnv("jira.token", "JIRA_TOKEN")
	v.BindEnv("jira.project_key", "JIRA_PROJECT_KEY")
	v.BindEnv("jira.version_name", "JIRA_VERSION_NAME")
	v.BindEnv("jira.story_point_field", "JIRA_STORY_POINT_FIELD")
	v.BindEnv("jira.fallback_point_field", "JIRA_FALLBACK_POINT_FIELD")
	v.BindEnv("jira.done_statuses", "JIRA_DONE_STATUSES")
	v.BindEnv("jira.velocity_adjustment", "JIRA_VELOCITY_ADJUSTMENT")
	v.BindEnv("chart.start_date", "JIRA_START_DATE")
	v.BindEnv("chart.end_date", "JIRA_END_DATE")
	v.BindEnv("chart.interval_days", "JIRA_INTERVAL_DAYS")
	v.BindEnv("chart.target_release_date", "JIRA_TARGET_RELEASE_DATE")
	v.BindEnv("chart.output_file", "CHART_OUTPUT_FILE")
	v.BindEnv("chart.title", "CHART_TITLE")

	v.SetDefault("jira.story_point_field", defaultStoryPointField)
	v.SetDefault("jira.done_statuses", defaultDoneStatuses)
	v.SetDefault("chart.output_file", defaultOutputFile)

	var invalidVars []string

	today := dateOf(time.Now())
	startDate, err := parseDate(v.GetString("chart.start_date"), today.AddDate(0, 0, -defaultWindowDays))
	if err != nil {
		invalidVars = append(invalidVars, "JIRA_START_DATE")
	}
	endDate, err := parseDate(v.GetString("chart.end_date"), today.AddDate(0, 0, defaultWindowDays))
	if err != nil {
		invalidVars = append(invalidVars, "JIRA_END_DATE")
	}
	targetDate, err := parseDate(v.GetString("chart.target_release_date"), time.Time{})
	if err != nil {
		invalidVars = append(invalidVars, "JIRA_TARGET_RELEASE_DATE")
	}

	intervalDays, err := parseInt(v.GetString("chart.interval_days"), defaultIntervalDays)
	if err != nil {
		invalidVars = append(invalidVars, "JIRA_INTERVAL_DAYS")
	}
	adjustment, err := parseFloat(v.GetString("jira.velocity_adjustment"), defaultAdjustment)
	if err != nil {
		invalidVars = append(invalidVars, "JIRA_VELOCITY_ADJUSTMENT")
	}

	doneStatuses := splitList(v.GetString("jira.done_statuses"))
	if len(doneStatuses) == 0 {
		doneStatuses = splitList(defaultDoneStatuses)
	}

	if len(invalidVars) > 0 {
		return nil, fmt.Errorf("%w: invalid environment variables: %v", models.ErrConfiguration, invalidVars)
	}

	// Create config structure
	config := &Config{
		Jira: JiraConfig{
			URL:                strings.TrimRight(v.GetString("jira.url"), "/"),
			Username:           v.GetString("jira.username"),
			Token:              v.GetString("jira.token"),
			ProjectKey:         v.GetString("jira.project_key"),
			VersionName:        v.GetString("jira.version_name"),
			StoryPointField:    v.GetString("jira.story_point_field"),
			FallbackPointField: v.GetString("jira.fallback_point_field"),
			DoneStatuses:       doneStatuses,
			VelocityAdjustment: adjustment,
		},
		Chart: ChartConfig{
			StartDate:         startDate,
			EndDate:           endDate,
			IntervalDays:      intervalDays,
			TargetReleaseDate: targetDate,
			OutputFile:        v.GetString("chart.output_file"),
			Title:             v.GetString("chart.title"),
		},
	}

	return config, nil
}

// ValidateConnectionConfig ensures the settings every JIRA call needs are
// present. The username stays optional: without one the client switches
// from basic auth to a bearer token.
func ValidateConnectionConfig(config *Config) error {
	var missingVars []string

	if config.Jira.URL == "" {
		missingVars = append(missingVars, "JIRA_URL")
	}
	if config.Jira.Token == "" {
		missingVars = append(missingVars, "JIRA_TOKEN")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("%w: missing required environment variables: %v", models.ErrConfiguration, missingVars)
	}

	return nil
}

// ValidateProjectConfig ensures a project key is configured on top of the
// connection settings, for commands that resolve agile boards.
func ValidateProjectConfig(config *Config) error {
	if err := ValidateConnectionConfig(config); err != nil {
		return err
	}

	if config.Jira.ProjectKey == "" {
		return fmt.Errorf("%w: missing required environment variables: [JIRA_PROJECT_KEY]", models.ErrConfiguration)
	}

	return nil
}

// ValidateChartConfig ensures everything the chart command depends on is
// present and coherent, before any network call is made.
func ValidateChartConfig(config *Config) error {
	if err := ValidateConnectionConfig(config); err != nil {
		return err
	}

	var missingVars []string

	if config.Jira.ProjectKey == "" {
		missingVars = append(missingVars, "JIRA_PROJECT_KEY")
	}
	if config.Jira.VersionName == "" {
		missingVars = append(missingVars, "JIRA_VERSION_NAME")
	}

	if len(missingVars) > 0 {
		return fmt.Errorf("%w: missing required environment variables: %v", models.ErrConfiguration, missingVars)
	}

	if config.Chart.EndDate.Before(config.Chart.StartDate) {
		return fmt.Errorf("%w: JIRA_END_DATE %s is before JIRA_START_DATE %s",
			models.ErrConfiguration,
			config.Chart.EndDate.Format(dateLayout),
			config.Chart.StartDate.Format(dateLayout))
	}
	if config.Chart.IntervalDays < 1 {
		return fmt.Errorf("%w: JIRA_INTERVAL_DAYS must be at least 1, got %d",
			models.ErrConfiguration, config.Chart.IntervalDays)
	}
	if config.Jira.VelocityAdjustment <= 0 {
		return fmt.Errorf("%w: JIRA_VELOCITY_ADJUSTMENT must be positive, got %v",
			models.ErrConfiguration, config.Jira.VelocityAdjustment)
	}

	return nil
}

// parseDate interprets value as a YYYY-MM-DD date, returning fallback when
// value is empty.
func parseDate(value string, fallback time.Time) (time.Time, error) {
	if value == "" {
		return fallback, nil
	}
	return time.Parse(dateLayout, value)
}

// parseInt interprets value as an integer, returning fallback when value
// is empty.
func parseInt(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.Atoi(value)
}

// parseFloat interprets value as a float, returning fallback when value
// is empty.
func parseFloat(value string, fallback float64) (float64, error) {
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(value, 64)
}

// splitList parses a comma-separated value into trimmed, non-empty items.
func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// dateOf truncates a timestamp to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
