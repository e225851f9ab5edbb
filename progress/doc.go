// Package progress defines primitives for reporting and aggregating the
// progress of a transfer run.  It abstracts away the delivery mechanism so
// that callers can consume counter updates in a uniform way regardless of
// whether they are observed via callbacks, journals or external collectors.
package progress
