package strategy

import "errors"

var (
	// ErrInsufficientData means the series is shorter than the minimum the
	// check requires. Distinct from a false verdict: nothing was evaluated.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrMissingIndicator means the series is long enough but a required
	// indicator value did not compute (NaN at the evaluation point).
	ErrMissingIndicator = errors.New("indicator value missing")
)
