// Package channel provides the bounded FIFO handoff primitive shared by the
// producer and consumer units.  A Bounded channel blocks writers while it is
// full and readers while it is empty, and keeps a separate acknowledgment
// counter so that callers can distinguish "removed from the buffer" from
// "fully processed downstream".
package channel
