package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned for every sign-in failure caused by
	// the submitted credentials: unknown login and wrong password map to the
	// same error so that responses cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid login or password")

	// ErrUnauthenticated is returned when a request carries no session,
	// an unknown token, or an expired one. Store failures are never folded
	// into it: a broken session store must not read as "please sign in".
	ErrUnauthenticated = errors.New("authentication required")

	ErrValidationNoTitle        = errors.New("task title is required")
	ErrValidationBadPriority    = errors.New("unknown task priority")
	ErrValidationBadStatus      = errors.New("unknown task status")
	ErrValidationEmptyNote      = errors.New("note body is required")
	ErrValidationNothingToApply = errors.New("update changes nothing")
)
