// Package model contains the in-memory representation of transfer scenario
// definitions used by the Conveyor engine.
//
// A scenario is typically loaded from a YAML document into the Scenario
// structure, which captures the source elements, the channel capacity and the
// optional pacing applied to the producing and consuming units.
package model
