package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Session errors
	ErrNotReady       = fmt.Errorf("session not ready")
	ErrSessionExpired = fmt.Errorf("session expired")
	ErrNoToken        = fmt.Errorf("no session token available")

	// API and catalog errors
	ErrAPIRequest    = fmt.Errorf("API request failed")
	ErrChartNotFound = fmt.Errorf("chart not found")

	// Input validation errors
	ErrValidation      = fmt.Errorf("validation failed")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
