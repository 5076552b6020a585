// Package agenda computes read-only views over an already fetched,
// owner-scoped list of tasks: today, upcoming, a selected date, tag and
// status filters, and the dashboard that bundles them.
//
// A due date is a calendar day stored as midnight UTC. The reference time
// (now, or a selected date) is read in its own location.
//
// Every function preserves the input order and never mutates its input.
package agenda
