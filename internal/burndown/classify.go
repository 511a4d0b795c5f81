package burndown

import (
	"strings"
	"time"

	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// Rule decides whether a ticket counts as finished at a given point in
// time.
type Rule struct {
	// DoneStatuses lists status names that mark a ticket as finished
	// regardless of its resolution date.
	DoneStatuses []string
	// IgnoreCase makes the status comparison case-insensitive.
	IgnoreCase bool
}

// Completed reports whether the ticket is finished as of the given date.
// A ticket counts once its status joins the done set, or once its
// resolution date falls on or before asOf. Story points play no part in
// the decision.
func (r Rule) Completed(t models.Ticket, asOf time.Time) bool {
	for _, status := range r.DoneStatuses {
		if status == t.Status || (r.IgnoreCase && strings.EqualFold(status, t.Status)) {
			return true
		}
	}
	return t.Resolved != nil && !dateOnly(*t.Resolved).After(dateOnly(asOf))
}

// dateOnly truncates a timestamp to its UTC calendar date. All chart
// comparisons happen at day granularity.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
