package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors below.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate of
	// a unique entity (e.g., a second rule for the same remote task).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrTemplateNotFound indicates that the requested task template does not exist.
	ErrTemplateNotFound = fmt.Errorf("%w: task template", ErrNotFound)

	// ErrRuleNotFound indicates that the requested auto-complete rule does not exist.
	ErrRuleNotFound = fmt.Errorf("%w: auto-complete rule", ErrNotFound)

	// ErrWatcherNotFound indicates that the requested task watcher does not exist.
	ErrWatcherNotFound = fmt.Errorf("%w: task watcher", ErrNotFound)

	// ErrNotificationNotFound indicates that the requested notification does not exist.
	ErrNotificationNotFound = fmt.Errorf("%w: notification", ErrNotFound)

	// ErrGeneratedTaskNotFound indicates that the requested generated task
	// record does not exist.
	ErrGeneratedTaskNotFound = fmt.Errorf("%w: generated task", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that a user with the given username already exists.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)

	// ErrRuleExists indicates that an auto-complete rule for the given remote
	// task already exists.
	ErrRuleExists = fmt.Errorf("%w: auto-complete rule", ErrDuplicate)

	// ErrWatcherExists indicates that the user is already watching the given
	// remote task.
	ErrWatcherExists = fmt.Errorf("%w: task watcher", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
