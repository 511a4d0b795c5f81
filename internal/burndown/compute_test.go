package burndown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

func defaultRule() Rule {
	return Rule{DoneStatuses: []string{"Done", "Closed", "Resolved", "完了", "クローズ"}}
}

func TestComputeWindowValidation(t *testing.T) {
	tests := []struct {
		name   string
		window Window
	}{
		{
			name: "Zero interval",
			window: Window{
				Start:        date(2024, 1, 1),
				End:          date(2024, 1, 15),
				IntervalDays: 0,
			},
		},
		{
			name: "End before start",
			window: Window{
				Start:        date(2024, 1, 15),
				End:          date(2024, 1, 1),
				IntervalDays: 7,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(nil, tt.window, defaultRule())
			require.Error(t, err)
			assert.ErrorIs(t, err, models.ErrConfiguration)
		})
	}
}

func TestComputeBuckets(t *testing.T) {
	tests := []struct {
		name   string
		window Window
		want   []time.Time
	}{
		{
			name: "Interval divides the window",
			window: Window{
				Start:        date(2024, 1, 1),
				End:          date(2024, 1, 15),
				IntervalDays: 7,
			},
			want: []time.Time{date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15)},
		},
		{
			name: "Final bucket clamped to the end",
			window: Window{
				Start:        date(2024, 1, 1),
				End:          date(2024, 1, 16),
				IntervalDays: 7,
			},
			want: []time.Time{
				date(2024, 1, 1), date(2024, 1, 8), date(2024, 1, 15), date(2024, 1, 16),
			},
		},
		{
			name: "Single day window",
			window: Window{
				Start:        date(2024, 1, 1),
				End:          date(2024, 1, 1),
				IntervalDays: 7,
			},
			want: []time.Time{date(2024, 1, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compute(nil, tt.window, defaultRule())
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Dates)
			assert.Len(t, s.Ideal, len(tt.want))
			assert.Len(t, s.Release, len(tt.want))
			assert.Len(t, s.Dev, len(tt.want))
		})
	}
}

func TestComputeNoTickets(t *testing.T) {
	window := Window{
		Start:        date(2024, 1, 1),
		End:          date(2024, 1, 15),
		IntervalDays: 7,
	}

	s, err := Compute(nil, window, defaultRule())
	require.NoError(t, err)

	assert.Zero(t, s.TotalPoints)
	assert.Zero(t, s.InitialPoints)
	assert.Equal(t, []float64{0, 0, 0}, s.Ideal)
	assert.Equal(t, []float64{0, 0, 0}, s.Release)
	assert.Equal(t, []float64{0, 0, 0}, s.Dev)
}

func TestComputeSingleCompletedTicket(t *testing.T) {
	window := Window{
		Start:        date(2024, 1, 1),
		End:          date(2024, 1, 15),
		IntervalDays: 7,
	}
	tickets := []models.Ticket{
		{
			Key:         "PROJ-1",
			Status:      "Done",
			StoryPoints: points(10),
			Created:     date(2023, 12, 1),
			Resolved:    datePtr(2023, 12, 20),
		},
	}

	s, err := Compute(tickets, window, defaultRule())
	require.NoError(t, err)

	assert.Equal(t, 10.0, s.TotalPoints)
	assert.Equal(t, 10.0, s.InitialPoints)
	assert.Equal(t, []float64{10, 5, 0}, s.Ideal)
	assert.Equal(t, []float64{0, 0, 0}, s.Release)
	assert.Equal(t, []float64{0, 0, 0}, s.Dev)
}

func TestComputeSeries(t *testing.T) {
	window := Window{
		Start:        date(2024, 1, 1),
		End:          date(2024, 1, 15),
		IntervalDays: 7,
	}
	tickets := []models.Ticket{
		// In scope at start, resolved mid-window.
		{
			Key:         "PROJ-1",
			Status:      "In Progress",
			StoryPoints: points(5),
			Created:     date(2023, 12, 1),
			Resolved:    datePtr(2024, 1, 5),
		},
		// Added after start, done by status alone.
		{
			Key:         "PROJ-2",
			Status:      "Done",
			StoryPoints: points(3),
			Created:     date(2024, 1, 3),
		},
		// Added after start, still open.
		{
			Key:         "PROJ-3",
			Status:      "To Do",
			StoryPoints: points(2),
			Created:     date(2024, 1, 10),
		},
		// No story points; contributes nothing.
		{
			Key:     "PROJ-4",
			Status:  "Done",
			Created: date(2023, 12, 1),
		},
	}

	s, err := Compute(tickets, window, defaultRule())
	require.NoError(t, err)

	assert.Equal(t, 10.0, s.TotalPoints)
	assert.Equal(t, 5.0, s.InitialPoints)
	assert.Equal(t, []float64{10, 5, 0}, s.Ideal)
	// PROJ-2 counts from the first bucket, PROJ-1 from the second.
	assert.Equal(t, []float64{7, 2, 2}, s.Release)
	// More points complete than were in the initial scope; floored.
	assert.Equal(t, []float64{2, 0, 0}, s.Dev)
}

func TestComputeIdealUnevenWindow(t *testing.T) {
	window := Window{
		Start:        date(2024, 1, 1),
		End:          date(2024, 1, 16),
		IntervalDays: 7,
	}
	tickets := []models.Ticket{
		{
			Key:         "PROJ-1",
			Status:      "To Do",
			StoryPoints: points(30),
			Created:     date(2023, 12, 1),
		},
	}

	s, err := Compute(tickets, window, defaultRule())
	require.NoError(t, err)
	require.Len(t, s.Ideal, 4)

	// Linear in time, not in bucket index.
	assert.InDelta(t, 30.0, s.Ideal[0], 1e-9)
	assert.InDelta(t, 16.0, s.Ideal[1], 1e-9)
	assert.InDelta(t, 2.0, s.Ideal[2], 1e-9)
	assert.InDelta(t, 0.0, s.Ideal[3], 1e-9)

	for i := 1; i < len(s.Ideal); i++ {
		assert.LessOrEqual(t, s.Ideal[i], s.Ideal[i-1])
	}
}
