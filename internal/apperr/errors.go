// Package apperr holds the sentinel errors shared across blogview packages.
package apperr

import "errors"

var (
	// ErrIndexUnavailable means the content index could not be fetched or parsed.
	// Views recover from it by rendering zero records.
	ErrIndexUnavailable = errors.New("content index unavailable")
	// ErrNotFound means no blog post exists at the requested path.
	ErrNotFound = errors.New("not found")
	// ErrBusy is returned when a load-more or show-more is already running on a view.
	ErrBusy = errors.New("view busy")
)
