// Package coordinator drives complete transfer runs.  It owns the bounded
// channel, launches exactly one producer and one consumer concurrently, waits
// for both to finish, enforces the acknowledgment barrier and records the
// verified outcome on the run entity.
package coordinator
