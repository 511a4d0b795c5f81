package models

import "errors"

// Failure classes the application distinguishes. Lower layers wrap these
// with fmt.Errorf("%w: ...") and callers test with errors.Is.
var (
	// ErrConfiguration signals missing or invalid configuration, detected
	// before any network call is made.
	ErrConfiguration = errors.New("configuration error")
	// ErrAuthentication signals rejected JIRA credentials (HTTP 401/403).
	ErrAuthentication = errors.New("authentication failed")
	// ErrNotFound signals a project, version, board, or field that does
	// not exist or matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrTransient signals a network-level failure talking to JIRA.
	ErrTransient = errors.New("transient network error")
	// ErrComputation signals fetched data that cannot be turned into chart
	// input, such as a non-numeric story point value.
	ErrComputation = errors.New("computation error")
)
