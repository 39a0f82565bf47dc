package optimizer

import "errors"

// ErrInvalidInitialPlan is returned by New when the initial plan fails
// validation (spec §4.4, §7).
var ErrInvalidInitialPlan = errors.New("invalid initial plan")
