package jira

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"

	jira "github.com/andygrunwald/go-jira"

	"github.com/mterada1228/release-burnup-chart/internal/logging"
	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// defaultSprintDays is assumed when no closed sprint reports usable dates.
const defaultSprintDays = 14.0

// velocityChart models the greenhopper velocity payload, which has no
// typed binding in the client library.
type velocityChart struct {
	VelocityStatEntries map[string]velocityStatEntry `json:"velocityStatEntries"`
}

type velocityStatEntry struct {
	Estimated velocityStatValue `json:"estimated"`
	Completed velocityStatValue `json:"completed"`
}

type velocityStatValue struct {
	Value float64 `json:"value"`
}

// Boards lists the agile boards attached to a project.
func (c *Client) Boards(ctx context.Context, projectKey string) ([]models.Board, error) {
	opts := &jira.BoardListOptions{ProjectKeyOrID: projectKey}
	list, resp, err := c.client.Board.GetAllBoardsWithContext(ctx, opts)
	if err != nil {
		return nil, classifyAPIError("listing boards", resp, err)
	}

	boards := make([]models.Board, 0, len(list.Values))
	for _, b := range list.Values {
		boards = append(boards, models.Board{
			ID:   b.ID,
			Name: b.Name,
			Type: b.Type,
		})
	}

	if len(boards) == 0 {
		return nil, fmt.Errorf("%w: no boards found for project %q", models.ErrNotFound, projectKey)
	}

	logging.Debug("fetched project boards", "project", projectKey, "count", len(boards))
	return boards, nil
}

// ClosedSprints lists a board's closed sprints in the order the agile API
// returns them.
func (c *Client) ClosedSprints(ctx context.Context, boardID int) ([]models.Sprint, error) {
	opts := &jira.GetAllSprintsOptions{State: "closed"}
	list, resp, err := c.client.Board.GetAllSprintsWithOptionsWithContext(ctx, boardID, opts)
	if err != nil {
		return nil, classifyAPIError("listing sprints", resp, err)
	}

	sprints := make([]models.Sprint, 0, len(list.Values))
	for _, s := range list.Values {
		sprints = append(sprints, models.Sprint{
			ID:           s.ID,
			Name:         s.Name,
			State:        s.State,
			StartDate:    s.StartDate,
			EndDate:      s.EndDate,
			CompleteDate: s.CompleteDate,
		})
	}
	return sprints, nil
}

// CompletedSprintPoints fetches a board's velocity chart and returns the
// completed points of every sprint that finished work, most recent sprint
// first.
func (c *Client) CompletedSprintPoints(ctx context.Context, boardID int) ([]float64, error) {
	u := fmt.Sprintf("rest/greenhopper/1.0/rapid/charts/velocity?rapidViewId=%d", boardID)
	req, err := c.client.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building velocity request: %v", models.ErrTransient, err)
	}

	var chart velocityChart
	resp, err := c.client.Do(req, &chart)
	if err != nil {
		return nil, classifyAPIError("fetching velocity chart", resp, err)
	}

	// Sprint IDs arrive as map keys; sort them descending so the newest
	// sprint leads.
	ids := make([]int, 0, len(chart.VelocityStatEntries))
	for key := range chart.VelocityStatEntries {
		id, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ids)))

	var points []float64
	for _, id := range ids {
		entry := chart.VelocityStatEntries[strconv.Itoa(id)]
		if entry.Completed.Value > 0 {
			points = append(points, entry.Completed.Value)
		}
	}
	return points, nil
}

// ProjectVelocity derives velocity statistics from the first project board
// that reports velocity data. A result with zero samples and a nil error
// means no board had any; callers decide whether that is fatal.
func (c *Client) ProjectVelocity(ctx context.Context, projectKey string) (models.VelocityStats, error) {
	boards, err := c.Boards(ctx, projectKey)
	if err != nil {
		return models.VelocityStats{}, err
	}

	for _, board := range boards {
		points, err := c.CompletedSprintPoints(ctx, board.ID)
		if err != nil {
			logging.Warn("skipping board without velocity data",
				"board", board.Name,
				"board_id", board.ID,
				"error", err)
			continue
		}
		if len(points) == 0 {
			logging.Debug("board has no completed sprint points", "board", board.Name)
			continue
		}

		mean, stdDev := meanAndStdDev(points)

		sprints, err := c.ClosedSprints(ctx, board.ID)
		if err != nil {
			logging.Warn("failed to list closed sprints",
				"board", board.Name,
				"error", err)
		}

		stats := models.VelocityStats{
			PointsPerSprint: mean,
			StdDev:          stdDev,
			SprintDays:      averageSprintDays(sprints, len(points)),
			Samples:         len(points),
		}

		logging.Info("velocity statistics",
			"board", board.Name,
			"samples", stats.Samples,
			"points_per_sprint", stats.PointsPerSprint,
			"std_dev", stats.StdDev,
			"sprint_days", stats.SprintDays)

		return stats, nil
	}

	logging.Warn("no board reported velocity data", "project", projectKey)
	return models.VelocityStats{}, nil
}

// meanAndStdDev returns the mean and population standard deviation. With
// fewer than two samples the deviation is zero.
func meanAndStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	if len(values) < 2 {
		return mean, 0
	}

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

// averageSprintDays averages the planned length of up to limit closed
// sprints. Falls back to two weeks when no sprint reports usable dates.
func averageSprintDays(sprints []models.Sprint, limit int) float64 {
	if limit > len(sprints) {
		limit = len(sprints)
	}

	var durations []float64
	for _, sprint := range sprints[:limit] {
		if sprint.StartDate == nil || sprint.EndDate == nil {
			continue
		}
		days := math.Floor(sprint.EndDate.Sub(*sprint.StartDate).Hours() / 24)
		if days > 0 {
			durations = append(durations, days)
		}
	}

	if len(durations) == 0 {
		return defaultSprintDays
	}

	var sum float64
	for _, d := range durations {
		sum += d
	}
	return sum / float64(len(durations))
}
