package golistview

import (
	"errors"
	"fmt"
)

// Common errors returned by controllers and views.
var (
	// ErrClosed is returned when an operation is dispatched on a closed controller.
	ErrClosed = errors.New("controller is closed")

	// ErrNilSource is returned when a controller is constructed without a data source.
	ErrNilSource = errors.New("data source is nil")

	// ErrPullToRefreshDisabled is returned by ListView.Refresh when the view was
	// configured with PullToRefreshEnabled=false.
	ErrPullToRefreshDisabled = errors.New("pull-to-refresh is disabled")
)

// FetchError wraps any failure reported by a DataSource. The controller performs
// no classification beyond this wrap: network timeouts, decode failures and
// server errors all look the same at this layer.
type FetchError struct {
	// Refresh is true when the failed fetch was issued with refresh semantics.
	Refresh bool
	Err     error
}

// Error - implements error.
func (e *FetchError) Error() string {
	if e.Refresh {
		return fmt.Sprintf("refresh fetch failed: %v", e.Err)
	}

	return fmt.Sprintf("page fetch failed: %v", e.Err)
}

// Unwrap - implements error unwrapping for errors.Is/As.
func (e *FetchError) Unwrap() error {
	return e.Err
}
