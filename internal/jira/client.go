// Package jira wraps the JIRA REST API behind the operations the chart
// commands need.
package jira

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	jira "github.com/andygrunwald/go-jira"
	"golang.org/x/oauth2"

	"github.com/mterada1228/release-burnup-chart/internal/config"
	"github.com/mterada1228/release-burnup-chart/internal/fields"
	"github.com/mterada1228/release-burnup-chart/internal/logging"
	"github.com/mterada1228/release-burnup-chart/pkg/models"
)

// searchPageSize matches the REST search API's maximum page size.
const searchPageSize = 100

// Client handles interactions with the JIRA API.
type Client struct {
	client *jira.Client

	storyPointField    string
	fallbackPointField string
}

// NewClient creates a JIRA API client from configuration. With a username
// configured it authenticates with basic auth (cloud instances pair an
// email with an API token); without one the token is sent as a bearer
// token, which is how Data Center personal access tokens work.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := config.ValidateConnectionConfig(cfg); err != nil {
		return nil, err
	}

	logging.Debug("jira configuration",
		"url", cfg.Jira.URL,
		"username", cfg.Jira.Username,
		"token", logging.MaskSensitive(cfg.Jira.Token))

	var httpClient *http.Client
	if cfg.Jira.Username != "" {
		tp := jira.BasicAuthTransport{
			Username: cfg.Jira.Username,
			Password: cfg.Jira.Token,
		}
		httpClient = tp.Client()
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Jira.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = 30 * time.Second

	client, err := jira.NewClient(httpClient, cfg.Jira.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid jira url %q: %v", models.ErrConfiguration, cfg.Jira.URL, err)
	}

	return &Client{
		client:             client,
		storyPointField:    cfg.Jira.StoryPointField,
		fallbackPointField: cfg.Jira.FallbackPointField,
	}, nil
}

// SearchTickets fetches every ticket of the project's fix version,
// requesting only the fields the burndown computation needs. The search
// is paginated; all pages are drained before returning.
func (c *Client) SearchTickets(ctx context.Context, projectKey, versionName string) ([]models.Ticket, error) {
	jql := fmt.Sprintf("project = %q AND fixVersion = %q", projectKey, versionName)

	fields := []string{"summary", "status", "created", "resolutiondate", c.storyPointField}
	if c.fallbackPointField != "" {
		fields = append(fields, c.fallbackPointField)
	}

	logging.Debug("searching jira tickets", "jql", jql)

	var tickets []models.Ticket
	opts := &jira.SearchOptions{
		StartAt:    0,
		MaxResults: searchPageSize,
		Fields:     fields,
	}

	for {
		issues, resp, err := c.client.Issue.SearchWithContext(ctx, jql, opts)
		if err != nil {
			return nil, classifyAPIError("searching tickets", resp, err)
		}

		for _, issue := range issues {
			ticket, err := c.convertIssue(issue)
			if err != nil {
				return nil, err
			}
			tickets = append(tickets, ticket)
		}

		if len(issues) == 0 || opts.StartAt+len(issues) >= resp.Total {
			break
		}
		opts.StartAt += len(issues)
	}

	if len(tickets) == 0 {
		return nil, fmt.Errorf("%w: no tickets match project %q and fixVersion %q",
			models.ErrNotFound, projectKey, versionName)
	}

	logging.Info("fetched jira tickets",
		"count", len(tickets),
		"project", projectKey,
		"version", versionName)

	return tickets, nil
}

// ListFields fetches every field definition visible to the authenticated
// user.
func (c *Client) ListFields(ctx context.Context) ([]models.Field, error) {
	jiraFields, resp, err := c.client.Field.GetListWithContext(ctx)
	if err != nil {
		return nil, classifyAPIError("listing fields", resp, err)
	}

	fields := make([]models.Field, 0, len(jiraFields))
	for _, f := range jiraFields {
		fields = append(fields, models.Field{
			ID:     f.ID,
			Name:   f.Name,
			Custom: f.Custom,
			Type:   f.Schema.Type,
		})
	}

	logging.Debug("fetched jira fields", "count", len(fields))
	return fields, nil
}

// ResolvePointFields replaces configured point-field display names with
// field IDs looked up from the instance's field definitions. Values
// already in field-ID form skip the lookup, so charts configured with
// IDs cost no extra API call.
func (c *Client) ResolvePointFields(ctx context.Context) error {
	if fields.IsFieldID(c.storyPointField) &&
		(c.fallbackPointField == "" || fields.IsFieldID(c.fallbackPointField)) {
		return nil
	}

	defs, err := c.ListFields(ctx)
	if err != nil {
		return err
	}
	registry := fields.NewRegistry(defs)

	resolved, err := registry.Resolve(c.storyPointField)
	if err != nil {
		return err
	}
	c.storyPointField = resolved

	if c.fallbackPointField != "" {
		resolved, err := registry.Resolve(c.fallbackPointField)
		if err != nil {
			return err
		}
		c.fallbackPointField = resolved
	}

	logging.Debug("resolved point fields",
		"story_point_field", c.storyPointField,
		"fallback_point_field", c.fallbackPointField)
	return nil
}

// convertIssue reduces a JIRA issue to the internal ticket model.
func (c *Client) convertIssue(issue jira.Issue) (models.Ticket, error) {
	ticket := models.Ticket{
		Key: issue.Key,
	}
	if issue.Fields == nil {
		return ticket, nil
	}

	ticket.Summary = issue.Fields.Summary
	if issue.Fields.Status != nil {
		ticket.Status = issue.Fields.Status.Name
	}

	ticket.Created = time.Time(issue.Fields.Created)
	if resolved := time.Time(issue.Fields.Resolutiondate); !resolved.IsZero() {
		ticket.Resolved = &resolved
	}

	points, err := c.storyPoints(issue)
	if err != nil {
		return models.Ticket{}, err
	}
	ticket.StoryPoints = points

	return ticket, nil
}

// storyPoints extracts the estimate from the configured field, consulting
// the fallback field when the primary has no value. A nil result means
// the ticket is unestimated.
func (c *Client) storyPoints(issue jira.Issue) (*float64, error) {
	value := issue.Fields.Unknowns[c.storyPointField]
	if value == nil && c.fallbackPointField != "" {
		value = issue.Fields.Unknowns[c.fallbackPointField]
	}
	if value == nil {
		return nil, nil
	}

	points, err := toFloat(value)
	if err != nil {
		return nil, fmt.Errorf("%w: ticket %s has a non-numeric story point value %v",
			models.ErrComputation, issue.Key, value)
	}
	return &points, nil
}

// toFloat accepts the shapes JIRA serializes story points as: a JSON
// number or a numeric string.
func toFloat(value interface{}) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", value)
	}
}

// classifyAPIError maps a failed API call onto the error taxonomy. A 400
// from the search endpoint is what JIRA answers for a JQL clause naming
// an unknown project or version, so it counts as not found.
func classifyAPIError(op string, resp *jira.Response, err error) error {
	if err == nil {
		return nil
	}
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: %s (status %d)", models.ErrAuthentication, op, resp.StatusCode)
		case http.StatusBadRequest, http.StatusNotFound:
			return fmt.Errorf("%w: %s (status %d)", models.ErrNotFound, op, resp.StatusCode)
		}
		return fmt.Errorf("%w: %s (status %d): %v", models.ErrTransient, op, resp.StatusCode, err)
	}
	return fmt.Errorf("%w: %s: %v", models.ErrTransient, op, err)
}
