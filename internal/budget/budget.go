// Package budget tracks the oracle-invocation accounting a single pass
// is allowed: a monotonically increasing total, a per-pass used
// counter, and the cap that counter is checked against.
package budget

// Budget is a plain aggregate owned by the Driver and borrowed mutably
// by each pass's Strategy; there is no cross-pass shared mutable state
// besides the output-path file itself.
type Budget struct {
	allIterations         int
	currentIterationCount int
	maxAttempts           int
	resetOnImprovement    bool
}

// New starts a pass with the given cap. resetOnImprovement mirrors the
// CLI's --reset-attempts flag: when true, RecordImprovement resets the
// used counter instead of merely advancing it, per spec.md §9's
// resolution of the reset-attempts ambiguity (re-earn budget within the
// pass cap, never exceed it).
func New(maxAttempts int, resetOnImprovement bool) *Budget {
	return &Budget{maxAttempts: maxAttempts, resetOnImprovement: resetOnImprovement}
}

// RecordAttempt counts one oracle invocation, whether or not the rule
// it backed was accepted.
func (b *Budget) RecordAttempt() {
	b.allIterations++
	b.currentIterationCount++
}

// RecordImprovement is called after RecordAttempt for any attempt that
// was accepted. If reset-on-improvement is enabled it zeroes the
// per-pass used counter, re-earning the pass's budget without ever
// raising maxAttempts itself.
func (b *Budget) RecordImprovement() {
	if b.resetOnImprovement {
		b.currentIterationCount = 0
	}
}

// Available reports the remaining attempts in the current pass. It
// never goes negative.
func (b *Budget) Available() int {
	remaining := b.maxAttempts - b.currentIterationCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Exhausted reports whether the pass has no budget left.
func (b *Budget) Exhausted() bool {
	return b.Available() <= 0
}

// AllIterations reports the monotonically increasing total across the
// whole run, for reporting/logging purposes.
func (b *Budget) AllIterations() int {
	return b.allIterations
}

// NextPass carries the already-used counter and cap forward per
// spec.md §4.6 step 3: "max_attempts monotonically increasing", i.e.
// pass K's remaining budget is maxAttempts[K] minus the counter that
// has been accumulating since the run started. newMax must be >= the
// cap already in effect.
func (b *Budget) NextPass(newMax int) {
	b.maxAttempts = newMax
}
