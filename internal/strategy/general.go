package strategy

import (
	"context"

	"minimizer/internal/sequence"
)

// General is the default strategy: large-trim warm-up, a weighted
// random main loop, and the small-length endgame. See spec.md §4.5.
type General struct{}

// generalEndTrimN is General's end-trim sweep width during warm-up.
const generalEndTrimN = 35

func (General) Run(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	if err := runWarmUp(ctx, seq, eval, opts, commit, generalEndTrimN); err != nil {
		return err
	}

	for {
		if seq.Len() >= 2 && seq.Len() <= 4 {
			return runEndgame(ctx, seq, eval, opts, commit)
		}
		if stopped(seq, opts, false) {
			return nil
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
