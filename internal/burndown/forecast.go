package burndown

import (
	"math"
	"time"

	"github.com/mterada1228/release-burnup-chart/internal/logging"
	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// zValue is the normal quantile for an 80% confidence band.
const zValue = 1.282

const (
	// extensionSlack pads the axis past the predicted completion bucket
	// so the forecast lines visibly reach zero.
	extensionSlack = 2
	// fallbackExtension is the number of future buckets added when the
	// remaining work gives no completion estimate.
	fallbackExtension = 5
)

// Pace describes how long finishing the remaining work takes at one
// velocity.
type Pace struct {
	// Velocity is story points burned per interval.
	Velocity float64
	// Periods is the number of intervals needed to burn the remaining
	// points, Days the same expressed in days.
	Periods float64
	Days    float64
	// Completion is the estimated completion date.
	Completion time.Time
	// Feasible is false when no work remains or the velocity cannot
	// finish it.
	Feasible bool
}

// Projection carries the burndown series extended past the window,
// together with the average, optimistic and pessimistic forecast lines.
type Projection struct {
	Dates   []time.Time
	Ideal   []float64
	Release []float64
	Dev     []float64

	// Forecast lines follow the actual remaining values up to the last
	// bucket before now, then project downward at each pace. Empty when
	// the window holds no actual data yet.
	Average     []float64
	Optimistic  []float64
	Pessimistic []float64

	AveragePace     Pace
	OptimisticPace  Pace
	PessimisticPace Pace

	// Remaining is the release-remaining value at the last actual
	// bucket.
	Remaining float64
	// StdDev is the per-interval velocity standard deviation behind the
	// confidence band.
	StdDev float64
	// ActualLen counts the buckets on or before now.
	ActualLen int
	// FromBoards is true when the velocity came from sprint statistics
	// rather than from the chart's own history.
	FromBoards bool
}

// Forecast derives the three forecast lines from the series and, when
// the average pace predicts a completion past the window end, extends
// the axis until the lines reach zero. Board velocity statistics take
// precedence over the velocity derived from the chart's own history; a
// zero-sample stats value means no board reported data.
func Forecast(s Series, stats models.VelocityStats, multiplier float64, now time.Time) Projection {
	p := Projection{
		Dates:   append([]time.Time(nil), s.Dates...),
		Ideal:   append([]float64(nil), s.Ideal...),
		Release: append([]float64(nil), s.Release...),
		Dev:     append([]float64(nil), s.Dev...),
	}

	today := dateOnly(now)
	for _, d := range s.Dates {
		if dateOnly(d).After(today) {
			break
		}
		p.ActualLen++
	}
	if p.ActualLen == 0 {
		return p
	}
	p.Remaining = p.Release[p.ActualLen-1]

	// Velocity observed in the chart itself: non-negative per-interval
	// decrements of the remaining line.
	var samples []float64
	for i := 1; i < p.ActualLen; i++ {
		if dec := p.Release[i-1] - p.Release[i]; dec >= 0 {
			samples = append(samples, dec)
		}
	}

	var base, stdDev float64
	if len(samples) >= 2 {
		base, stdDev = meanStdDev(samples)
	} else {
		logging.Debug("not enough burndown history for a deviation estimate",
			"samples", len(samples))
	}

	if stats.Samples > 0 && stats.PointsPerSprint > 0 && stats.SprintDays > 0 {
		scale := float64(s.Window.IntervalDays) / stats.SprintDays
		base = stats.PointsPerSprint * scale
		if stats.StdDev > 0 {
			stdDev = stats.StdDev * scale
		}
		p.FromBoards = true
		logging.Debug("using board velocity",
			"points_per_interval", base,
			"std_dev_per_interval", stdDev)
	}

	avg := base * multiplier
	opt := avg + zValue*stdDev*multiplier
	pes := math.Max(0, avg-zValue*stdDev*multiplier)
	p.StdDev = stdDev

	if avg > 0 {
		var want int
		switch {
		case s.TotalPoints <= 0:
			want = len(p.Dates) + fallbackExtension
		case p.Remaining > 0:
			want = p.ActualLen + int(p.Remaining/avg) + 1 + extensionSlack
		default:
			want = p.ActualLen + fallbackExtension
		}
		for len(p.Dates) < want {
			last := p.Dates[len(p.Dates)-1]
			p.Dates = append(p.Dates, last.AddDate(0, 0, s.Window.IntervalDays))
			p.Ideal = append(p.Ideal, 0)
			p.Release = append(p.Release, p.Release[len(p.Release)-1])
			p.Dev = append(p.Dev, p.Dev[len(p.Dev)-1])
		}
	}

	for i := range p.Dates {
		if i < p.ActualLen {
			p.Average = append(p.Average, p.Release[i])
			p.Optimistic = append(p.Optimistic, p.Release[i])
			p.Pessimistic = append(p.Pessimistic, p.Release[i])
			continue
		}
		ahead := float64(i - p.ActualLen + 1)
		p.Average = append(p.Average, math.Max(0, p.Remaining-avg*ahead))
		p.Optimistic = append(p.Optimistic, math.Max(0, p.Remaining-opt*ahead))
		p.Pessimistic = append(p.Pessimistic, math.Max(0, p.Remaining-pes*ahead))
	}

	p.AveragePace = pace(avg, p.Remaining, s.Window.IntervalDays, now)
	p.OptimisticPace = pace(opt, p.Remaining, s.Window.IntervalDays, now)
	p.PessimisticPace = pace(pes, p.Remaining, s.Window.IntervalDays, now)

	return p
}

func pace(velocity, remaining float64, intervalDays int, now time.Time) Pace {
	p := Pace{Velocity: velocity}
	if velocity <= 0 || remaining <= 0 {
		return p
	}
	p.Feasible = true
	p.Periods = remaining / velocity
	p.Days = p.Periods * float64(intervalDays)
	p.Completion = now.Add(time.Duration(p.Days * 24 * float64(time.Hour)))
	return p
}

// meanStdDev returns the mean and population standard deviation of the
// samples.
func meanStdDev(values []float64) (float64, float64) {
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}
