package domain

import "errors"

// Request errors.
var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrMissingField     = errors.New("missing required fields")
	ErrInvalidTimestamp = errors.New("invalid timestamp format")
)

// Decoration errors. These never reach the HTTP caller; the decorator falls
// back to the undecorated chart when it sees one of them.
var (
	ErrMarkupNotFound = errors.New("svg inner markup not found")
	ErrMalformedSVG   = errors.New("malformed svg document")
	ErrInvalidViewBox = errors.New("invalid svg viewBox")
)

// External renderer errors.
var (
	ErrChartUpstream = errors.New("chart renderer failed")
)

// Background catalog errors.
var (
	ErrCatalogUnavailable = errors.New("background catalog unavailable")
	ErrBackgroundNotFound = errors.New("background not found")
)

// Rate limiting errors.
var (
	ErrRateLimited = errors.New("rate limit exceeded")
)
