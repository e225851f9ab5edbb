// Package consumer hosts the unit that drains the bounded channel.  The
// consumer owns the output sequence exclusively while running and records an
// acknowledgment after appending each item, which feeds the drain barrier the
// coordinator waits on.
package consumer
