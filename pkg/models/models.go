// Package models defines data structures shared across the application.
package models

import (
	"time"
)

// Ticket represents a JIRA issue reduced to the fields the burndown
// calculation needs.
type Ticket struct {
	// Key is the full JIRA ticket identifier (e.g., "ABC-123")
	Key string

	// Summary is the ticket's summary field
	Summary string

	// Status is the display name of the ticket's current workflow status
	Status string

	// StoryPoints is the estimate assigned to the ticket, nil when the
	// ticket is unestimated
	StoryPoints *float64

	// Created is the timestamp when the ticket was created
	Created time.Time

	// Resolved is the timestamp when the ticket was resolved, nil while
	// the ticket has no resolution
	Resolved *time.Time
}

// Points returns the ticket's story points, treating an unestimated
// ticket as zero.
func (t Ticket) Points() float64 {
	if t.StoryPoints == nil {
		return 0
	}
	return *t.StoryPoints
}

// Field describes a JIRA field definition.
type Field struct {
	// ID is the identifier used in REST payloads (e.g., "customfield_10016")
	ID string

	// Name is the human-readable field name (e.g., "Story point estimate")
	Name string

	// Custom indicates whether the field is a custom field rather than a
	// built-in one
	Custom bool

	// Type is the schema type reported by JIRA (e.g., "number", "string")
	Type string
}

// Board represents a JIRA agile board.
type Board struct {
	// ID is the numeric board identifier used by the agile API
	ID int

	// Name is the board's display name
	Name string

	// Type is the board type (e.g., "scrum", "kanban")
	Type string
}

// Sprint represents a sprint on an agile board.
type Sprint struct {
	// ID is the numeric sprint identifier
	ID int

	// Name is the sprint's display name
	Name string

	// State is the sprint state (e.g., "closed", "active", "future")
	State string

	// StartDate and EndDate delimit the planned sprint window, and
	// CompleteDate is when the sprint was actually closed. Each can be
	// nil when JIRA has no value for it.
	StartDate    *time.Time
	EndDate      *time.Time
	CompleteDate *time.Time
}

// VelocityStats summarizes historical sprint velocity for a board.
type VelocityStats struct {
	// PointsPerSprint is the mean of completed story points across the
	// sampled sprints
	PointsPerSprint float64

	// StdDev is the population standard deviation of completed points
	StdDev float64

	// SprintDays is the mean sprint length in days
	SprintDays float64

	// Samples is the number of sprints the statistics are based on
	Samples int
}
