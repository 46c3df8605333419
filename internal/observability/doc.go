// Package observability provides event logging, metrics calculation, and
// due-date alerting for the to-do manager. Events are persisted as JSON
// Lines and metrics are derived on demand from the event log.
package observability
