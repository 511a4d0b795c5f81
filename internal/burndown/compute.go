// Package burndown turns a flat list of tickets into the time series a
// release burndown chart plots: the ideal line, release remaining and
// development remaining story points per bucket date.
package burndown

import (
	"fmt"
	"math"
	"time"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// Window bounds the chart and sets the bucket spacing.
type Window struct {
	Start        time.Time
	End          time.Time
	IntervalDays int
}

// Series holds one value per bucket date for each burndown line.
type Series struct {
	// Window is the window the series was computed over.
	Window Window
	// Dates are the bucket dates, Start first, End last.
	Dates []time.Time
	// Ideal descends linearly from TotalPoints at Start to zero at End.
	Ideal []float64
	// Release is TotalPoints minus the points completed by each date.
	Release []float64
	// Dev is InitialPoints minus the points completed by each date,
	// floored at zero.
	Dev []float64
	// TotalPoints sums the story points of every fetched ticket.
	TotalPoints float64
	// InitialPoints sums the story points of tickets created on or
	// before Start.
	InitialPoints float64
}

// Compute buckets the tickets into the window and derives the three
// burndown series. The final bucket lands exactly on the window end even
// when the interval does not divide the window evenly.
func Compute(tickets []models.Ticket, w Window, rule Rule) (Series, error) {
	if w.IntervalDays < 1 {
		return Series{}, fmt.Errorf("%w: interval must be at least one day, got %d",
			models.ErrConfiguration, w.IntervalDays)
	}
	if w.End.Before(w.Start) {
		return Series{}, fmt.Errorf("%w: window end %s precedes start %s",
			models.ErrConfiguration,
			w.End.Format("2006-01-02"), w.Start.Format("2006-01-02"))
	}

	s := Series{Window: w, Dates: buckets(w)}

	for _, t := range tickets {
		s.TotalPoints += t.Points()
		if !t.Created.IsZero() && !dateOnly(t.Created).After(dateOnly(w.Start)) {
			s.InitialPoints += t.Points()
		}
	}

	span := w.End.Sub(w.Start)
	for _, d := range s.Dates {
		var completed float64
		for _, t := range tickets {
			if rule.Completed(t, d) {
				completed += t.Points()
			}
		}

		ideal := 0.0
		if span > 0 {
			ideal = s.TotalPoints * (w.End.Sub(d).Hours() / span.Hours())
		}
		s.Ideal = append(s.Ideal, ideal)
		s.Release = append(s.Release, s.TotalPoints-completed)
		s.Dev = append(s.Dev, math.Max(0, s.InitialPoints-completed))
	}

	return s, nil
}

// buckets returns the dates from Start stepping IntervalDays apart, with
// the last bucket clamped to End.
func buckets(w Window) []time.Time {
	var dates []time.Time
	for d := w.Start; d.Before(w.End); d = d.AddDate(0, 0, w.IntervalDays) {
		dates = append(dates, d)
	}
	return append(dates, w.End)
}
