package service

import "errors"

// Service construction and use-case errors.
var (
	// ErrNilDependency is returned by service constructors when a required
	// dependency is nil.
	ErrNilDependency = errors.New("required dependency is nil")

	// ErrWatcherNotRemovable is returned when a user who is neither the
	// watcher nor the adder attempts to remove a watcher registration.
	ErrWatcherNotRemovable = errors.New("watcher can only be removed by the watcher or its adder")
)
