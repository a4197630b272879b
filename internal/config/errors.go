package config

import "errors"

var (
	// ErrNoTargets is returned when no URL was given to explore.
	ErrNoTargets = errors.New("config: no target URLs")

	// ErrInvalidDepth is returned when the depth is outside the
	// supported range.
	ErrInvalidDepth = errors.New("config: depth out of range")

	// ErrConflictingFormats is returned when more than one report
	// format is requested.
	ErrConflictingFormats = errors.New("config: conflicting report formats")

	// ErrNonPositiveTimeout is returned when a timeout or the deadline
	// is zero or negative.
	ErrNonPositiveTimeout = errors.New("config: timeout must be positive")

	// ErrNonPositiveLimit is returned when a traversal limit is zero or
	// negative.
	ErrNonPositiveLimit = errors.New("config: limit must be positive")

	// ErrConfigFileNotFound is returned when an explicitly given config
	// file path does not exist.
	ErrConfigFileNotFound = errors.New("config: config file not found")
)
