package plan

import "errors"

// Sentinel kinds for recommendation lifecycle errors.
var (
	ErrInvalidStatus = errors.New("invalid recommendation status")
)
