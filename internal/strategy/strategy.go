// Package strategy orchestrates rule production and evaluation for one
// granularity: it is handed a Sequence by the Driver and repeatedly
// asks a rule factory for candidates, evaluates each via an Evaluator,
// and keeps whatever remained interesting, persisting every accepted
// improvement through a CommitFunc before moving on.
package strategy

import (
	"context"
	"math/rand/v2"
	"time"

	"minimizer/internal/budget"
	"minimizer/internal/oracle"
	"minimizer/internal/sequence"
	"minimizer/internal/telemetry"
)

// Evaluator is the subset of *oracle.Oracle a Strategy needs. Tests
// substitute a fake that never spawns a subprocess.
type Evaluator interface {
	Evaluate(ctx context.Context, seq *sequence.Sequence, worker int) (oracle.Result, error)
}

// CommitFunc persists a newly-accepted Sequence to the output path.
// Strategies call it synchronously, inside the same step that replaced
// the working Sequence, so a kill at any moment leaves a valid result
// on disk (spec.md §7's recovery policy).
type CommitFunc func(seq *sequence.Sequence) error

// Options bundles everything a Strategy.Run needs besides the Sequence
// and Evaluator, so adding a new knob doesn't change every Run
// signature in the package.
type Options struct {
	Rand     *rand.Rand
	Budget   *budget.Budget
	Deadline time.Time // zero value means "no wall-clock limit"
	Worker   int        // temp-path slot; 0 outside GeneralMulti
	Pass     string     // granularity name, for logging only

	// Logger is optional; a nil Logger simply skips the per-attempt
	// debug event, so tests never need to construct one.
	Logger *telemetry.Logger
}

// Strategy is the common interface General, Pedantic, and GeneralMulti
// all satisfy. Run mutates seq in place (via its Replace method) for
// every accepted improvement and returns once a stop condition fires.
type Strategy interface {
	Run(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error
}

// stopped reports whether any stop condition from spec.md §4.5 fires:
// wall-clock exceeded, budget exhausted, fewer than two elements left,
// or (for length-sensitive checks only) the sequence has shrunk into
// endgame territory.
func stopped(seq *sequence.Sequence, opts Options, checkLength bool) bool {
	if !opts.Deadline.IsZero() && !time.Now().Before(opts.Deadline) {
		return true
	}
	if seq.Len() < 2 {
		return true
	}
	if opts.Budget.Exhausted() {
		return true
	}
	if checkLength && seq.Len() <= 4 {
		return true
	}
	return false
}
