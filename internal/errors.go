package internal

import "errors"

var (
	// ErrSourceUnavailable is returned when a backing file is missing or unreadable
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSchemaMismatch is returned when an expected column is absent after normalization
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrEmptyMatch is returned when a region/year filter selects no rows
	ErrEmptyMatch = errors.New("no rows matched")

	// ErrMultipleMatch is returned when a region filter selects rows from more than one area
	ErrMultipleMatch = errors.New("rows from multiple areas matched")

	// ErrUnknownRegion is returned for region names outside the supported set
	ErrUnknownRegion = errors.New("unknown region")
)
