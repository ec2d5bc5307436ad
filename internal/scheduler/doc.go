// Package scheduler implements the periodic batch work that keeps local
// state and the remote task service in step: closing overdue remote tasks
// covered by auto-complete rules, and materializing new remote tasks from
// recurring templates whose cadence has elapsed.
//
// The runner is sequential and run-to-completion. Its one hard contract is
// failure isolation: an error while processing one rule or template is
// logged and counted but never aborts the scan of the remaining items. A
// scan only fails as a whole when the initial store listing fails.
package scheduler
