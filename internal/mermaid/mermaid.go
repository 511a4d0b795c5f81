// Package mermaid renders time series as Mermaid xychart-beta markup.
package mermaid

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// palette colors the plotted lines. Mermaid assigns palette entries to
// lines by position, so the order here must match the order series are
// passed in.
var palette = []string{"gray", "green", "blue", "orange", "lightblue", "lightblue"}

// Series is one plotted line.
type Series struct {
	Label  string
	Values []float64
}

// Render produces xychart-beta markup for the series over the given
// dates. The y axis runs from zero to the total story points rounded
// up. Every series must carry exactly one value per date.
func Render(title string, dates []time.Time, totalPoints float64, series []Series) (string, error) {
	for _, s := range series {
		if len(s.Values) != len(dates) {
			return "", fmt.Errorf("%w: series %q has %d values for %d dates",
				models.ErrComputation, s.Label, len(s.Values), len(dates))
		}
	}

	labels := make([]string, len(dates))
	for i, d := range dates {
		labels[i] = fmt.Sprintf("%q", d.Format("01/02"))
	}

	yMax := int(math.Ceil(totalPoints))
	if yMax < 0 {
		yMax = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, `%%%%{
  init: {
    "themeVariables": {
      "xyChart": {
        "plotColorPalette": "%s"
      }
    }
  }
}%%%%
xychart-beta
    title "%s"
    x-axis "Date" [%s]
    y-axis "Story Points" 0 --> %d`,
		strings.Join(colors(len(series)), ", "), title, strings.Join(labels, ", "), yMax)

	for _, s := range series {
		values := make([]string, len(s.Values))
		for i, v := range s.Values {
			values[i] = fmt.Sprintf("%.2f", v)
		}
		fmt.Fprintf(&b, "\n    line %q [%s]", s.Label, strings.Join(values, ", "))
	}

	return b.String(), nil
}

func colors(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = palette[i%len(palette)]
	}
	return out
}
