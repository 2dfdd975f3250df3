package cohort

import "errors"

// Sentinel kinds for cohort resolution errors.
var (
	// ErrNoCohort means even the terminal relaxation tier matched zero
	// records. There is no further fallback.
	ErrNoCohort = errors.New("no cohort available")
)
