// Package service implements the application's use cases on top of the store
// interfaces and the remote task API: dashboard assembly, manual task
// completion with watcher fan-out, watcher management, notification
// lifecycle, auto-complete rules, and template management.
//
// Services accept their dependencies as interfaces and are constructed with
// explicit nil checks. The API layer is a thin translation over them; the
// batch runner shares the generation code path through the scheduler package.
package service
