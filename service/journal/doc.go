// Package journal provides the structured progress log for transfer runs.
// The journal is an injected, run-scoped resource handed to the producer and
// consumer units – never ambient global state – and it records each
// put/take/acknowledge event for diagnostics.  Its content is not part of the
// correctness contract.
package journal
