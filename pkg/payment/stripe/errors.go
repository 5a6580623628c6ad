package stripe

import "errors"

var (
	// ErrNotConfigured is returned when no secret key is set
	ErrNotConfigured = errors.New("stripe is not configured")

	// ErrInvalidRequest is returned when the request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUnauthorized is returned when the API key is rejected
	ErrUnauthorized = errors.New("unauthorized: invalid API key")

	// ErrGatewayFailure is returned when Stripe reports an error or cannot
	// be reached
	ErrGatewayFailure = errors.New("payment gateway failure")
)
