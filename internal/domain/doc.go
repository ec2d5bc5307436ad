// Package domain defines the core business entities of the application:
// users, recurring task templates, auto-complete rules, task watchers,
// notifications, and the audit log of generated tasks.
//
// Entities are plain structs with constructor functions and Validate methods.
// They carry no persistence concerns; the store package defines repository
// interfaces over them and platform/postgres implements those interfaces.
//
// The package also owns the two pieces of pure scheduling logic shared by the
// batch runner and the web layer: cadence arithmetic (Frequency.Offset) and
// template rendering (RenderTemplate).
package domain
