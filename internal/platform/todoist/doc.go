// Package todoist provides a thin client for the Todoist REST API v2.
//
// Every call is a synchronous request/response against the remote service,
// authenticated with a bearer token. The client does not retry and sends no
// idempotency key: a retried create can duplicate a remote task. Failures
// surface as *APIError for non-2xx responses and as wrapped transport errors
// otherwise. A low remaining rate-limit quota only produces a warning log.
package todoist
