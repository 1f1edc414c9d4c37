package assignment

import "errors"

var (
	ErrRowNotFound      = errors.New("assignment row not found")
	ErrInvalidWeekLabel = errors.New("invalid calendar week label")
	ErrInvalidHours     = errors.New("weekly hours must be between 0 and 80")

	// ErrUnresolvedEngineer marks an orphan row whose engineer reference
	// matches neither an id nor a normalized catalog name. Orphans are
	// reported to the data-quality log and excluded from aggregation.
	ErrUnresolvedEngineer = errors.New("engineer reference could not be resolved")
)
