package burndown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// date builds a midnight-UTC timestamp for test fixtures.
func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := date(year, month, day)
	return &d
}

func points(v float64) *float64 {
	return &v
}

func TestRuleCompleted(t *testing.T) {
	doneSet := []string{"Done", "Closed", "Resolved", "完了", "クローズ"}
	asOf := date(2024, 1, 15)

	tests := []struct {
		name   string
		rule   Rule
		ticket models.Ticket
		want   bool
	}{
		{
			name:   "Status in done set",
			rule:   Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{Key: "PROJ-1", Status: "Done"},
			want:   true,
		},
		{
			name:   "Japanese done status",
			rule:   Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{Key: "PROJ-2", Status: "完了"},
			want:   true,
		},
		{
			name:   "Case mismatch without IgnoreCase",
			rule:   Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{Key: "PROJ-3", Status: "done"},
			want:   false,
		},
		{
			name:   "Case mismatch with IgnoreCase",
			rule:   Rule{DoneStatuses: doneSet, IgnoreCase: true},
			ticket: models.Ticket{Key: "PROJ-4", Status: "DONE"},
			want:   true,
		},
		{
			name: "Resolved before the date",
			rule: Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{
				Key:      "PROJ-5",
				Status:   "In Progress",
				Resolved: datePtr(2024, 1, 10),
			},
			want: true,
		},
		{
			name: "Resolved later the same day",
			rule: Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{
				Key:    "PROJ-6",
				Status: "In Progress",
				Resolved: func() *time.Time {
					d := time.Date(2024, 1, 15, 23, 30, 0, 0, time.UTC)
					return &d
				}(),
			},
			want: true,
		},
		{
			name: "Resolved after the date",
			rule: Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{
				Key:      "PROJ-7",
				Status:   "In Progress",
				Resolved: datePtr(2024, 1, 20),
			},
			want: false,
		},
		{
			name:   "Open and unresolved",
			rule:   Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{Key: "PROJ-8", Status: "To Do"},
			want:   false,
		},
		{
			name: "Missing story points do not matter",
			rule: Rule{DoneStatuses: doneSet},
			ticket: models.Ticket{
				Key:      "PROJ-9",
				Status:   "Done",
				Resolved: datePtr(2024, 1, 10),
			},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rule.Completed(tt.ticket, asOf)
			assert.Equal(t, tt.want, got)
			// Classification is pure; a second call must agree.
			assert.Equal(t, got, tt.rule.Completed(tt.ticket, asOf))
		})
	}
}
