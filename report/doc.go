// Package report delivers merge-run events to configurable sinks.
//
// The accumulator emits an Event for each noteworthy step: run start,
// sources processed or skipped, files merged, files written, failures.
// Reporters render those events for humans (ConsoleReporter), forward them
// to structured logs (LogReporter), fan out to several sinks
// (MultiReporter), or discard them (NopReporter).
//
// Reporters must not fail the run: delivery errors are logged and ignored
// by MultiReporter, and the accumulator ignores them entirely.
package report
