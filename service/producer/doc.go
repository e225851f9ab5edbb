// Package producer hosts the unit that feeds the bounded channel.  The
// producer owns no shared state besides the channel reference it is handed;
// backpressure is entirely the channel's concern and simply suspends the
// producing goroutine.
package producer
