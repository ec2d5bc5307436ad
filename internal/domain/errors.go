package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidFrequency is returned when a frequency string is not one of
	// the supported cadences.
	ErrInvalidFrequency = errors.New("invalid frequency")

	// ErrInvalidNotificationType is returned when a notification type string
	// is not one of the known types.
	ErrInvalidNotificationType = errors.New("invalid notification type")

	// ErrInvalidDueDate is returned when a remote task's due date cannot be
	// parsed as either a date or a datetime.
	ErrInvalidDueDate = errors.New("invalid due date")

	// ErrUnauthorized is returned when an operation is not permitted for the
	// requesting user.
	ErrUnauthorized = errors.New("unauthorized operation")
)
