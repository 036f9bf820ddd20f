package content

import "errors"

var (
	// ErrDataUnavailable means a backing document is missing, unreadable,
	// or does not have the expected shape.
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrNotFound means no verb with the requested base form exists.
	ErrNotFound = errors.New("not found")
)
