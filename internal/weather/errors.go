package weather

import (
	"errors"
	"fmt"
)

// Extraction failures. Both are terminal for the attempt; the caller's only
// recovery is a stale cache entry.
var (
	// ErrBlockNotFound means none of the fact-block lookup strategies
	// located the current-conditions container.
	ErrBlockNotFound = errors.New("Weather block not found in the page")

	// ErrMonthNotFound means the month container is absent.
	ErrMonthNotFound = errors.New("Month block not found in the page")

	// ErrNoDayEntries means the month container was present but produced
	// zero day records (placeholder rows do not count).
	ErrNoDayEntries = errors.New("No day entries found in month view")
)

// UpstreamError reports that the source page could not be fetched and no
// cached fallback existed for the key.
type UpstreamError struct {
	URL string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Failed to fetch source page: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }
