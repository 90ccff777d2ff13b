package model

import (
	"time"
)

// StagePolicy classifies how a stage failure affects the rest of the pipeline.
type StagePolicy string

const (
	// PolicyFatal halts the pipeline when the stage fails.
	PolicyFatal StagePolicy = "fatal"
	// PolicySoft records the failure and lets the pipeline continue.
	PolicySoft StagePolicy = "soft"
)

// ExecutionOutcome captures the result of one stage invocation: a success
// flag plus whatever diagnostic text the underlying command or call produced.
type ExecutionOutcome struct {
	Success bool
	Output  string
}

// VerificationResult is the outcome of a single capability smoke test.
type VerificationResult struct {
	Capability string
	Passed     bool
	Detail     string
	Err        error
}

// StageOutcome pairs a stage's identity and policy with its execution result.
type StageOutcome struct {
	Name     string
	Policy   StagePolicy
	Outcome  ExecutionOutcome
	Duration time.Duration
}

// PipelineReport aggregates everything a provisioning run produced: the
// outcome of each stage that ran, in order, and the full verification
// results when the verifier was reached.
type PipelineReport struct {
	Stages        []StageOutcome
	Verifications []VerificationResult
	Duration      time.Duration
}

// OverallSuccess reports whether every fatal stage that ran succeeded.
// Verification failures never affect it.
func (r *PipelineReport) OverallSuccess() bool {
	for _, st := range r.Stages {
		if st.Policy == PolicyFatal && !st.Outcome.Success {
			return false
		}
	}
	return true
}

// FailedCapabilities returns the verification results that did not pass,
// preserving probe order.
func (r *PipelineReport) FailedCapabilities() []VerificationResult {
	var failed []VerificationResult
	for _, v := range r.Verifications {
		if !v.Passed {
			failed = append(failed, v)
		}
	}
	return failed
}

// ExitCode maps the report to a process exit status: zero when all fatal
// stages passed, one otherwise.
func (r *PipelineReport) ExitCode() int {
	if r.OverallSuccess() {
		return 0
	}
	return 1
}
