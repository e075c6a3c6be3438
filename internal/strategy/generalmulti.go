package strategy

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"minimizer/internal/rule"
	"minimizer/internal/sequence"
)

// generalMultiEndTrimN matches General's end-trim sweep width.
const generalMultiEndTrimN = 35

// GeneralMulti is identical to General's state machine, except each
// step of the main loop evaluates a whole batch of candidates
// concurrently against the same input snapshot and commits the
// smallest accepted one. See spec.md §4.5/§5.
type GeneralMulti struct{}

func (GeneralMulti) Run(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	if err := runWarmUp(ctx, seq, eval, opts, commit, generalMultiEndTrimN); err != nil {
		return err
	}

	for {
		if seq.Len() >= 2 && seq.Len() <= 4 {
			return runEndgame(ctx, seq, eval, opts, commit)
		}
		// Cooperative stop: checked before dispatching the next batch,
		// the same point spec.md §5 describes peers checking a shared
		// "stopped" flag before starting new work. In-flight workers
		// within an already-dispatched batch are always let finish.
		if stopped(seq, opts, false) {
			return nil
		}

		if err := runBatch(ctx, seq, eval, opts, commit); err != nil {
			return err
		}
	}
}

// batchSize caps a batch at min(available_budget, 2*NumCPU), per
// spec.md §5, and never returns less than 1.
func batchSize(opts Options) int {
	n := 2 * runtime.NumCPU()
	if avail := opts.Budget.Available(); avail < n {
		n = avail
	}
	if n < 1 {
		n = 1
	}
	return n
}

// batchResult is one worker's outcome, kept only when its candidate
// was interesting.
type batchResult struct {
	worker   int
	elements []string
	length   int
}

// runBatch generates up to batchSize(opts) rules from the currently
// committed sequence, evaluates them concurrently — each against an
// immutable snapshot of seq's elements, each on its own temp-path
// worker slot — and commits the smallest accepted candidate. Every
// generated rule counts as one attempt against the budget, whether or
// not it was accepted.
func runBatch(ctx context.Context, seq *sequence.Sequence, eval Evaluator, opts Options, commit CommitFunc) error {
	n := batchSize(opts)
	rules := make([]rule.Rule, 0, n)
	for attempts := 0; len(rules) < n && attempts < n*8; attempts++ {
		r := mainLoopRule(opts, seq.Len())
		if r != nil {
			rules = append(rules, r)
		}
	}
	if len(rules) == 0 {
		return nil
	}

	for range rules {
		opts.Budget.RecordAttempt()
	}

	snapshot := seq.Elements()
	mode := seq.Mode()
	results := make([]*batchResult, len(rules))

	group, groupCtx := errgroup.WithContext(ctx)
	for i, r := range rules {
		i, r := i, r
		worker := i + 1 // worker 0 is reserved for single-threaded strategies
		group.Go(func() error {
			candidateElements := rule.Apply(r, snapshot)
			candidate := sequence.New(mode, candidateElements)

			result, err := eval.Evaluate(groupCtx, candidate, worker)
			if err != nil {
				return err
			}
			if result.Interesting {
				results[i] = &batchResult{worker: worker, elements: candidateElements, length: len(candidateElements)}
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	winner := pickSmallest(results)
	if winner == nil {
		return nil
	}

	seq.Replace(winner.elements)
	if err := commit(seq); err != nil {
		return err
	}
	opts.Budget.RecordImprovement()
	if opts.Logger != nil {
		opts.Logger.RuleAttempted(opts.Pass, "batch", true, winner.length)
	}
	return nil
}

// pickSmallest returns the accepted candidate with the smallest
// resulting length; ties go to the lowest worker index, since results
// is walked in ascending worker order and only a strictly smaller
// candidate replaces the current winner.
func pickSmallest(results []*batchResult) *batchResult {
	var winner *batchResult
	for _, r := range results {
		if r == nil {
			continue
		}
		if winner == nil || r.length < winner.length {
			winner = r
		}
	}
	return winner
}
