package shared

import "fmt"

var (
	// Configuration errors
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")

	// Authentication errors
	ErrAuthFailed       = fmt.Errorf("authentication failed")
	ErrNotAuthenticated = fmt.Errorf("not authenticated")

	// API errors
	ErrAPIRequest        = fmt.Errorf("API request failed")
	ErrWorkOrderNotFound = fmt.Errorf("work order not found")
	ErrUnexpectedPayload = fmt.Errorf("unexpected payload shape")

	// Storage errors
	ErrNotFound = fmt.Errorf("record not found")

	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrInvalidFlag  = fmt.Errorf("invalid flag value")
)
