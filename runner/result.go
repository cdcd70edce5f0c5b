package runner

import (
	"time"

	"cradle/harness"
)

// StepResult is the outcome of one subject invocation.
type StepResult struct {
	Args   []string
	Result harness.Result
	Passed bool
	// Reason is a human-readable mismatch description for failed steps.
	Reason string
}

// ScenarioResult is the outcome of one scenario.
type ScenarioResult struct {
	Name     string
	Passed   bool
	Steps    []StepResult
	Duration time.Duration
	// Err is set when the harness itself failed (allocation, spawn);
	// subject failures are reported through Steps instead.
	Err error
}

// CompatResult is the outcome of one compatibility-manifest entry.
type CompatResult struct {
	File          string
	ExitCode      int
	ExpectFailure bool
	// OK reports whether the outcome matches the manifest's expectation:
	// a clean pass, or a failure the manifest already expects.
	OK  bool
	Err error
}
