// Package tracing integrates observability back-ends with the conveyor
// runtime to provide span information for producer and consumer units.  All
// instrumentation is kept in a separate package so that applications which do
// not require tracing can exclude it from their build.
package tracing
