package strategy

import (
	"context"

	"minimizer/internal/rulefactory"
	"minimizer/internal/sequence"
)

// pedanticEndTrimN is Pedantic's (narrower) end-trim sweep width.
const pedanticEndTrimN = 20

// pedanticExhaustiveThreshold is both the length ceiling and the
// minimum remaining budget required before Pedantic's one-by-one pass
// runs: spec.md §4.5 requires length < 100 *and* available budget > 100.
const pedanticExhaustiveThreshold = 100

// Pedantic behaves like General, but once per pass — guarded by a
// latch — it additionally runs an exhaustive one-by-one removal pass
// once the sequence has shrunk below pedanticExhaustiveThreshold and
// there's enough budget left to afford it.
type Pedantic struct{}

func (Pedantic) Run(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	if err := runWarmUp(ctx, seq, eval, opts, commit, pedanticEndTrimN); err != nil {
		return err
	}

	exhaustiveRan := false

	for {
		if seq.Len() >= 2 && seq.Len() <= 4 {
			return runEndgame(ctx, seq, eval, opts, commit)
		}
		if stopped(seq, opts, false) {
			return nil
		}

		if !exhaustiveRan && seq.Len() < pedanticExhaustiveThreshold && opts.Budget.Available() > pedanticExhaustiveThreshold {
			exhaustiveRan = true
			if err := runExhaustiveOneByOne(ctx, seq, eval, opts, commit); err != nil {
				return err
			}
			continue
		}

		r := mainLoopRule(opts, seq.Len())
		if r == nil {
			continue
		}
		if _, err := attempt(ctx, seq, r, eval, opts, commit); err != nil {
			return err
		}
	}
}

// runExhaustiveOneByOne tries removing each single index, in
// descending order, committing every improvement it finds along the
// way. It runs at most once per pass thanks to the latch in Run.
func runExhaustiveOneByOne(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	for i := seq.Len() - 1; i >= 0; i-- {
		if stopped(seq, opts, true) {
			return nil
		}
		if i >= seq.Len() {
			continue // earlier removals shifted indices out of range
		}
		r := rulefactory.RemoveExact(i, seq.Len())
		if _, err := attempt(ctx, seq, r, eval, opts, commit); err != nil {
			return err
		}
	}
	return nil
}
