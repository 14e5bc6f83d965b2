package models

import "errors"

var (
	// ErrSessionUnavailable is returned when no session exists to record an unlock against.
	ErrSessionUnavailable = errors.New("session unavailable")
	// ErrMalformedRequest is returned when a request lacks required fields.
	ErrMalformedRequest = errors.New("malformed request")
)
