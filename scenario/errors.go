package scenario

import "errors"

var (
	// ErrInvalidSuite indicates a scenario file failed validation.
	ErrInvalidSuite = errors.New("invalid scenario suite")
	// ErrScenarioRange indicates a scenario number outside the suite.
	ErrScenarioRange = errors.New("scenario number out of range")
)
