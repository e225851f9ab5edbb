// Package conveyor provides a bounded, in-order transfer kernel built on a
// single producer/consumer pair.
//
// A transfer moves every element of a source slice through a fixed-capacity
// channel and into an output slice, preserving order and never holding more
// than the configured number of in-flight items.  The run only completes once
// the consumer has acknowledged every element it appended, so a finished run
// guarantees the output mirrors the source.
//
// The engine is composed of pluggable service layers:
//
//   - coordinator – owns the channel and drives a run end to end
//   - producer    – feeds source elements into the channel in order
//   - consumer    – drains, appends and acknowledges elements
//   - journal     – structured, per-run event log
//
// Conveyor is designed to be embedded in host applications.  End-users
// typically interact with the engine via the high-level Service façade
// exposed by the root package:
//
//	srv, _ := conveyor.New()
//	rt := srv.Runtime()
//	aScenario, _ := rt.LoadScenario(ctx, "scenario.yaml")
//	aRun, _ := rt.RunDefinition(ctx, aScenario)
//	fmt.Println(aRun.Succeeded())
//
// For more details see the README and individual sub-packages.
package conveyor
