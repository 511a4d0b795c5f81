package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mterada1228/release-burnup-chart/internal/burndown"
	"github.com/mterada1228/release-burnup-chart/internal/config"
)

func TestChartTitle(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want string
	}{
		{
			name: "Configured title wins",
			cfg: &config.Config{
				Jira:  config.JiraConfig{VersionName: "Release 1.0"},
				Chart: config.ChartConfig{Title: "Q1 burndown"},
			},
			want: "Q1 burndown",
		},
		{
			name: "Derived from the version",
			cfg: &config.Config{
				Jira: config.JiraConfig{VersionName: "Release 1.0"},
			},
			want: "Release 1.0 release burndown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, chartTitle(tt.cfg))
		})
	}
}

func TestDescribePace(t *testing.T) {
	completion := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		pace      burndown.Pace
		remaining float64
		want      string
	}{
		{
			name:      "Nothing remaining",
			pace:      burndown.Pace{},
			remaining: 0,
			want:      "already complete",
		},
		{
			name:      "Zero velocity",
			pace:      burndown.Pace{Velocity: 0},
			remaining: 12,
			want:      "velocity too low to forecast",
		},
		{
			name: "Feasible pace",
			pace: burndown.Pace{
				Velocity:   5,
				Periods:    2.5,
				Days:       17.5,
				Completion: completion,
				Feasible:   true,
			},
			remaining: 12.5,
			want:      "2.5 periods (~18 days), done by 2024-02-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, describePace(tt.pace, tt.remaining))
		})
	}
}

func TestEightyPercentDate(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		target time.Time
		want   time.Time
	}{
		{
			name:   "Round span",
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			target: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			want:   time.Date(2024, 2, 18, 0, 0, 0, 0, time.UTC),
		},
		{
			name:   "Fractional share truncates",
			start:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			target: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC),
			want:   time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eightyPercentDate(tt.start, tt.target))
		})
	}
}
